// Package webhook implements event notifications for project webhooks.
//
// Events describe something that happened in a project. The dispatcher
// renders each event into its wire document once and posts it to every
// eligible subscription.
package webhook

import (
	"encoding"
	"errors"

	"github.com/drydockhq/drydock/pkg/proto"
)

// Event is a webhook event type.
type Event int

const (
	// EventPush is a repository push event.
	EventPush Event = 1

	// EventIssue is an issue event.
	EventIssue Event = 2

	// EventPullRequest is a pull request event.
	EventPullRequest Event = 3
)

// Events return all events.
func Events() []Event {
	return []Event{
		EventPush,
		EventIssue,
		EventPullRequest,
	}
}

var eventStrings = map[Event]string{
	EventPush:        "push",
	EventIssue:       "issue",
	EventPullRequest: "pull_request",
}

// String returns the string representation of the event.
func (e Event) String() string {
	return eventStrings[e]
}

var stringEvent = map[string]Event{
	"push":         EventPush,
	"issue":        EventIssue,
	"pull_request": EventPullRequest,
}

// ErrInvalidEvent is returned when the event is invalid.
var ErrInvalidEvent = errors.New("invalid event")

// ParseEvent parses an event string and returns the event.
func ParseEvent(s string) (Event, error) {
	e, ok := stringEvent[s]
	if !ok {
		return -1, ErrInvalidEvent
	}

	return e, nil
}

var _ encoding.TextMarshaler = Event(0)
var _ encoding.TextUnmarshaler = (*Event)(nil)

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Event) UnmarshalText(text []byte) error {
	ev, err := ParseEvent(string(text))
	if err != nil {
		return err
	}

	*e = ev
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Event) MarshalText() (text []byte, err error) {
	ev := e.String()
	if ev == "" {
		return nil, ErrInvalidEvent
	}

	return []byte(ev), nil
}

// EventPayload is a webhook event payload.
type EventPayload interface {
	// Event returns the event type.
	Event() Event
	// ProjectID returns the ID of the project the event happened in.
	ProjectID() int64
}

// Common carries the fields shared by all events.
type Common struct {
	// EventType is the event type.
	EventType Event
	// Project is the project the event happened in.
	Project proto.Project
	// Sender is the user who triggered the event.
	Sender proto.User
}

// Event returns the event type.
// Implements EventPayload.
func (c Common) Event() Event {
	return c.EventType
}

// ProjectID returns the project ID.
// Implements EventPayload.
func (c Common) ProjectID() int64 {
	return c.Project.ID()
}

// PushEvent is a push to one or more refs.
type PushEvent struct {
	Common

	// Labels classify the push for notification surfaces that group
	// events by kind. They are not part of the wire document.
	Labels []string
	// Refs are the updated ref names.
	Refs []string
	// Commits are the pushed commits, newest first.
	Commits []proto.Commit
	// Title is a short human description of the push, carried for
	// notification surfaces. It is not part of the wire document.
	Title string
}

// NewPushEvent returns a push event for the given refs and commits. Bare
// branch names are expanded into full ref names.
func NewPushEvent(sender proto.User, project proto.Project, refs []string, commits []proto.Commit, title string) PushEvent {
	normalized := make([]string, len(refs))
	for i, ref := range refs {
		normalized[i] = NormalizeRef(ref)
	}

	return PushEvent{
		Common: Common{
			EventType: EventPush,
			Project:   project,
			Sender:    sender,
		},
		Labels:  []string{EventPush.String()},
		Refs:    normalized,
		Commits: commits,
		Title:   title,
	}
}

// IssueAction is an issue event action.
type IssueAction string

const (
	// IssueOpened is a newly registered issue.
	IssueOpened IssueAction = "opened"
	// IssueStateChanged is an issue state transition.
	IssueStateChanged IssueAction = "state_changed"
)

// IssueEvent is an issue event.
type IssueEvent struct {
	Common

	// Action is the issue event action.
	Action IssueAction
	// Issue is the issue the event is about.
	Issue proto.Issue
}

// NewIssueEvent returns an issue event.
func NewIssueEvent(sender proto.User, project proto.Project, action IssueAction, issue proto.Issue) IssueEvent {
	return IssueEvent{
		Common: Common{
			EventType: EventIssue,
			Project:   project,
			Sender:    sender,
		},
		Action: action,
		Issue:  issue,
	}
}

// PullRequestAction is a pull request event action.
type PullRequestAction string

// PullRequestOpened is a newly opened pull request.
const PullRequestOpened PullRequestAction = "opened"

// PullRequestEvent is a pull request event.
type PullRequestEvent struct {
	Common

	// Action is the pull request event action.
	Action PullRequestAction
	// PullRequest is the pull request the event is about.
	PullRequest proto.PullRequest
}

// NewPullRequestEvent returns a pull request event.
func NewPullRequestEvent(sender proto.User, project proto.Project, action PullRequestAction, pr proto.PullRequest) PullRequestEvent {
	return PullRequestEvent{
		Common: Common{
			EventType: EventPullRequest,
			Project:   project,
			Sender:    sender,
		},
		Action:      action,
		PullRequest: pr,
	}
}
