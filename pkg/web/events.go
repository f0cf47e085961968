package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/drydockhq/drydock/pkg/backend"
	"github.com/drydockhq/drydock/pkg/proto"
	"github.com/drydockhq/drydock/pkg/webhook"
	"github.com/gorilla/mux"
)

// EventController registers the event intake route. Producers post project
// events here and the dispatcher fans them out to subscriptions.
func EventController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/api/v1/projects/{owner}/{name}/events", postEvent).Methods(http.MethodPost)
}

// eventRequest is the JSON body accepted by the intake route. Exactly one of
// the event-specific sections is expected, selected by the event field.
type eventRequest struct {
	Event  string `json:"event"`
	Sender string `json:"sender"`

	// push
	Refs    []string      `json:"refs,omitempty"`
	Commits []eventCommit `json:"commits,omitempty"`
	Title   string        `json:"title,omitempty"`

	// issue
	Action string      `json:"action,omitempty"`
	Issue  *eventIssue `json:"issue,omitempty"`

	// pull request
	PullRequest *eventPullRequest `json:"pull_request,omitempty"`
}

type eventSignature struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	When  time.Time `json:"when"`
}

type eventCommit struct {
	ID        string         `json:"id"`
	Message   string         `json:"message"`
	Author    eventSignature `json:"author"`
	Committer eventSignature `json:"committer"`
}

type eventIssue struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Assignee string `json:"assignee"`
	State    string `json:"state"`
}

type eventPullRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Contributor string `json:"contributor"`
	FromBranch  string `json:"from_branch"`
	ToBranch    string `json:"to_branch"`
}

func (s eventSignature) toProto() proto.Signature {
	return proto.Signature{
		Name:  s.Name,
		Email: s.Email,
		When:  s.When,
	}
}

func (c eventCommit) toProto() proto.Commit {
	return proto.Commit{
		ID:        c.ID,
		Message:   c.Message,
		Author:    c.Author.toProto(),
		Committer: c.Committer.toProto(),
	}
}

func (i eventIssue) toProto() (proto.Issue, error) {
	state := proto.IssueState(i.State)
	if state == "" {
		state = proto.IssueStateOpen
	}
	if state != proto.IssueStateOpen && state != proto.IssueStateClosed {
		return proto.Issue{}, fmt.Errorf("unknown issue state %q", i.State)
	}

	return proto.Issue{
		ID:       i.ID,
		Title:    i.Title,
		Body:     i.Body,
		Assignee: i.Assignee,
		State:    state,
	}, nil
}

func (p eventPullRequest) toProto() proto.PullRequest {
	return proto.PullRequest{
		ID:          p.ID,
		Title:       p.Title,
		Body:        p.Body,
		Contributor: p.Contributor,
		FromBranch:  p.FromBranch,
		ToBranch:    p.ToBranch,
	}
}

func postEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	dispatcher := webhook.FromContext(ctx)
	params := mux.Vars(r)

	if dispatcher == nil {
		renderError(w, http.StatusServiceUnavailable, "dispatcher is not running")
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := webhook.ParseEvent(req.Event)
	if err != nil {
		renderError(w, http.StatusBadRequest, fmt.Sprintf("unknown event %q", req.Event))
		return
	}

	project, err := be.Project(ctx, params["owner"], params["name"])
	if err != nil {
		renderWebhookError(w, r, err)
		return
	}

	sender, err := be.UserByLogin(ctx, req.Sender)
	if err != nil {
		if errors.Is(err, proto.ErrUserNotFound) {
			renderError(w, http.StatusBadRequest, fmt.Sprintf("unknown sender %q", req.Sender))
			return
		}
		renderWebhookError(w, r, err)
		return
	}

	payload, err := buildEventPayload(req, event, sender, project)
	if err != nil {
		if errors.Is(err, webhook.ErrNoCommits) {
			renderError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := dispatcher.Dispatch(ctx, payload); err != nil {
		renderDispatchError(w, r, err)
		return
	}

	renderStatus(http.StatusAccepted)(w, nil)
}

// buildEventPayload assembles the dispatcher payload for the requested event
// type, validating the event-specific sections.
func buildEventPayload(req eventRequest, event webhook.Event, sender proto.User, project proto.Project) (webhook.EventPayload, error) {
	switch event {
	case webhook.EventPush:
		if len(req.Commits) == 0 {
			return nil, webhook.ErrNoCommits
		}
		commits := make([]proto.Commit, 0, len(req.Commits))
		for _, c := range req.Commits {
			commits = append(commits, c.toProto())
		}
		return webhook.NewPushEvent(sender, project, req.Refs, commits, req.Title), nil
	case webhook.EventIssue:
		if req.Issue == nil {
			return nil, errors.New("missing issue")
		}
		action := webhook.IssueAction(req.Action)
		if action == "" {
			action = webhook.IssueOpened
		}
		if action != webhook.IssueOpened && action != webhook.IssueStateChanged {
			return nil, fmt.Errorf("unknown issue action %q", req.Action)
		}
		issue, err := req.Issue.toProto()
		if err != nil {
			return nil, err
		}
		return webhook.NewIssueEvent(sender, project, action, issue), nil
	case webhook.EventPullRequest:
		if req.PullRequest == nil {
			return nil, errors.New("missing pull_request")
		}
		action := webhook.PullRequestAction(req.Action)
		if action == "" {
			action = webhook.PullRequestOpened
		}
		if action != webhook.PullRequestOpened {
			return nil, fmt.Errorf("unknown pull request action %q", req.Action)
		}
		return webhook.NewPullRequestEvent(sender, project, action, req.PullRequest.toProto()), nil
	default:
		return nil, fmt.Errorf("unknown event %q", req.Event)
	}
}

func renderDispatchError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, webhook.ErrNoCommits):
		renderError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, webhook.ErrDispatcherClosed):
		renderError(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.FromContext(r.Context()).Error("event dispatch error", "err", err)
		renderError(w, http.StatusInternalServerError, "")
	}
}
