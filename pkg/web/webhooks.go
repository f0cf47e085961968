package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/drydockhq/drydock/pkg/backend"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/models"
	"github.com/drydockhq/drydock/pkg/proto"
	"github.com/drydockhq/drydock/pkg/webhook"
	"github.com/gorilla/mux"
)

// WebhookController registers the subscription management routes.
func WebhookController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/api/v1/projects/{owner}/{name}/webhooks", listWebhooks).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/projects/{owner}/{name}/webhooks", createWebhook).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/projects/{owner}/{name}/webhooks/{id}", deleteWebhook).Methods(http.MethodDelete)
}

// webhookResponse is the JSON shape of a subscription. The secret is
// write-only and never echoed back.
type webhookResponse struct {
	ID        int64         `json:"id"`
	ProjectID int64         `json:"project_id"`
	URL       string        `json:"url"`
	Scope     webhook.Scope `json:"scope"`
	CreatedAt time.Time     `json:"created_at"`
}

func toWebhookResponse(m models.Webhook) webhookResponse {
	return webhookResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		URL:       m.URL,
		Scope:     webhook.Scope(m.Scope),
		CreatedAt: m.CreatedAt,
	}
}

// createWebhookRequest is the JSON body accepted when registering a
// subscription. Scope defaults to "all_events" when omitted.
type createWebhookRequest struct {
	URL    string `json:"url"`
	Secret string `json:"secret"`
	Scope  string `json:"scope"`
}

func listWebhooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	params := mux.Vars(r)

	project, err := be.Project(ctx, params["owner"], params["name"])
	if err != nil {
		renderWebhookError(w, r, err)
		return
	}

	hooks, err := be.Webhooks(ctx, project)
	if err != nil {
		renderWebhookError(w, r, err)
		return
	}

	resp := make([]webhookResponse, 0, len(hooks))
	for _, h := range hooks {
		resp = append(resp, toWebhookResponse(h))
	}

	renderJSON(w, http.StatusOK, resp)
}

func createWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	params := mux.Vars(r)

	var req createWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scope := webhook.ScopeAllEvents
	if req.Scope != "" {
		var err error
		scope, err = webhook.ParseScope(req.Scope)
		if err != nil {
			renderWebhookError(w, r, err)
			return
		}
	}

	project, err := be.Project(ctx, params["owner"], params["name"])
	if err != nil {
		renderWebhookError(w, r, err)
		return
	}

	hook, err := be.CreateWebhook(ctx, project, req.URL, req.Secret, scope)
	if err != nil {
		renderWebhookError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, toWebhookResponse(hook))
}

func deleteWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	params := mux.Vars(r)

	id, err := strconv.ParseInt(params["id"], 10, 64)
	if err != nil {
		renderError(w, http.StatusNotFound, "unknown webhook")
		return
	}

	project, err := be.Project(ctx, params["owner"], params["name"])
	if err != nil {
		renderWebhookError(w, r, err)
		return
	}

	if err := be.DeleteWebhook(ctx, project, id); err != nil {
		renderWebhookError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// renderWebhookError maps backend errors to API status codes. Validation
// failures are reported back verbatim, everything unexpected is a 500.
func renderWebhookError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, proto.ErrProjectNotFound),
		errors.Is(err, db.ErrRecordNotFound):
		renderError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, db.ErrDuplicateKey):
		renderError(w, http.StatusConflict, "webhook already exists for this payload URL")
	case errors.Is(err, webhook.ErrInvalidPayloadURL),
		errors.Is(err, webhook.ErrPayloadURLTooLong),
		errors.Is(err, webhook.ErrSecretTooLong),
		errors.Is(err, webhook.ErrInvalidScheme),
		errors.Is(err, webhook.ErrInvalidScope):
		renderError(w, http.StatusBadRequest, err.Error())
	default:
		log.FromContext(r.Context()).Error("webhook api error", "err", err)
		renderError(w, http.StatusInternalServerError, "")
	}
}
