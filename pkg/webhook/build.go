package webhook

import (
	"errors"
	"fmt"

	"github.com/drydockhq/drydock/pkg/i18n"
)

// timestampLayout is the wire format for commit times. Times are
// rendered in UTC.
const timestampLayout = "2006-01-02T15:04:05-0700"

// ErrNoCommits is returned when a push event carries no commits. The
// push document has a head_commit and cannot be built without one.
var ErrNoCommits = errors.New("push event has no commits")

// BuildPush renders a push event into its wire document.
func BuildPush(ev PushEvent) (PushDocument, error) {
	if len(ev.Commits) == 0 {
		return PushDocument{}, ErrNoCommits
	}

	siteURL := ev.Project.URL()
	commits := make([]CommitDocument, len(ev.Commits))
	for i, c := range ev.Commits {
		commits[i] = CommitDocument{
			ID:        c.ID,
			Message:   c.Message,
			Timestamp: c.Committer.When.UTC().Format(timestampLayout),
			URL:       siteURL + "/commit/" + c.ID,
			Author: SignatureDocument{
				Name:  c.Author.Name,
				Email: c.Author.Email,
			},
			Committer: SignatureDocument{
				Name:  c.Committer.Name,
				Email: c.Committer.Email,
			},
		}
	}

	return PushDocument{
		Ref:        ev.Refs,
		Commits:    commits,
		HeadCommit: commits[0],
		Sender:     senderDocument(ev),
		Pusher: PusherDocument{
			Name:  ev.Sender.Name(),
			Email: ev.Sender.Email(),
		},
		Repository: repositoryDocument(ev),
	}, nil
}

// BuildIssue renders an issue event into its wire document.
func BuildIssue(ev IssueEvent, msg i18n.Localizer) MessageDocument {
	var phrase string
	switch ev.Action {
	case IssueStateChanged:
		phrase = msg("notification.type.issue.state.changed")
	default:
		phrase = msg("notification.type.new.issue")
	}

	url := fmt.Sprintf("%s/issue/%d", ev.Project.URL(), ev.Issue.ID)
	return MessageDocument{
		Text: messageText(ev.Common, phrase, url, ev.Issue.ID, ev.Issue.Title),
		Attachments: []Attachment{
			{
				Text: ev.Issue.Body,
				Fields: []Field{
					{Title: msg("issue.assignee"), Value: ev.Issue.Assignee},
					{Title: msg("issue.state"), Value: string(ev.Issue.State)},
				},
			},
		},
	}
}

// BuildPullRequest renders a pull request event into its wire document.
func BuildPullRequest(ev PullRequestEvent, msg i18n.Localizer) MessageDocument {
	phrase := msg("notification.type.new.pullrequest")
	url := fmt.Sprintf("%s/pullRequest/%d", ev.Project.URL(), ev.PullRequest.ID)
	return MessageDocument{
		Text: messageText(ev.Common, phrase, url, ev.PullRequest.ID, ev.PullRequest.Title),
		Attachments: []Attachment{
			{
				Text: ev.PullRequest.Body,
				Fields: []Field{
					{Title: msg("pullRequest.sender"), Value: ev.PullRequest.Contributor},
					{Title: msg("pullRequest.from"), Value: ev.PullRequest.FromBranch},
					{Title: msg("pullRequest.to"), Value: ev.PullRequest.ToBranch},
				},
			},
		},
	}
}

// BuildDocument renders any event into its wire document.
func BuildDocument(payload EventPayload, msg i18n.Localizer) (interface{}, error) {
	switch ev := payload.(type) {
	case PushEvent:
		return BuildPush(ev)
	case IssueEvent:
		return BuildIssue(ev, msg), nil
	case PullRequestEvent:
		return BuildPullRequest(ev, msg), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidEvent, payload)
	}
}

// messageText renders the one-line notification message. The format is
// contractual, including the <url|label> link syntax.
func messageText(c Common, phrase, url string, id int64, title string) string {
	return fmt.Sprintf("[%s] %s %s <%s|#%d: %s>",
		c.Project.Name(), c.Sender.Name(), phrase, url, id, title)
}

func senderDocument(ev PushEvent) SenderDocument {
	return SenderDocument{
		Login:     ev.Sender.Login(),
		ID:        ev.Sender.ID(),
		AvatarURL: ev.Sender.AvatarURL(),
		Type:      "User",
		SiteAdmin: ev.Sender.IsAdmin(),
	}
}

func repositoryDocument(ev PushEvent) RepositoryDocument {
	return RepositoryDocument{
		ID:       ev.Project.ID(),
		Name:     ev.Project.Name(),
		Owner:    ev.Project.Owner(),
		HTMLURL:  ev.Project.URL(),
		Overview: ev.Project.Overview(),
		Private:  ev.Project.IsPrivate(),
	}
}
