package i18n

import (
	"testing"

	"github.com/matryer/is"
)

func TestGet(t *testing.T) {
	is := is.New(t)
	c, err := New()
	is.NoErr(err)

	is.Equal(c.Get("en", "issue.assignee"), "Assignee")
	is.Equal(c.Get("ko", "issue.assignee"), "담당자")

	// Regional locales fall back to the base language.
	is.Equal(c.Get("ko-KR", "issue.state"), "상태")
	is.Equal(c.Get("ko_KR", "issue.state"), "상태")

	// Unknown locales fall back to English.
	is.Equal(c.Get("fr", "pullRequest.from"), "From")

	// Unknown ids come back verbatim.
	is.Equal(c.Get("en", "no.such.message"), "no.such.message")
}

func TestLocalizer(t *testing.T) {
	is := is.New(t)
	c, err := New()
	is.NoErr(err)

	msg := c.Localizer("en")
	is.Equal(msg("notification.type.new.issue"), "created a new issue")
	is.Equal(msg("notification.type.new.pullrequest"), "opened a new pull request")
}

func TestLocales(t *testing.T) {
	is := is.New(t)
	c, err := New()
	is.NoErr(err)
	is.Equal(c.Locales(), []string{"en", "ko"})
}
