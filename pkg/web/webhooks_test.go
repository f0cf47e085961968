package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/drydockhq/drydock/pkg/backend"
	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/migrate"
	"github.com/drydockhq/drydock/pkg/i18n"
	"github.com/drydockhq/drydock/pkg/proto"
	"github.com/drydockhq/drydock/pkg/store/database"
	"github.com/drydockhq/drydock/pkg/webhook"
	"github.com/matryer/is"
)

type webEnv struct {
	ctx        context.Context
	cfg        *config.Config
	db         *db.DB
	backend    *backend.Backend
	dispatcher *webhook.Dispatcher
	router     http.Handler
}

func setupWeb(t *testing.T) *webEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.PublicURL = "https://drydock.dev"
	cfg.Webhook.AllowInternal = true

	ctx := config.WithContext(context.TODO(), cfg)

	dbx, err := db.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "test.db?_pragma=foreign_keys(1)"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		dbx.Close() //nolint:errcheck
	})
	if err := migrate.Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}

	st := database.New(ctx, dbx)
	be := backend.New(ctx, cfg, dbx, st)

	catalog, err := i18n.New()
	if err != nil {
		t.Fatal(err)
	}

	client := webhook.NewClient(cfg, log.New(io.Discard))
	dispatcher := webhook.NewDispatcher(ctx, cfg, dbx, st, client, catalog.Localizer("en"))
	t.Cleanup(func() {
		if err := dispatcher.Close(); err != nil {
			t.Error(err)
		}
	})

	ctx = db.WithContext(ctx, dbx)
	ctx = backend.WithContext(ctx, be)
	ctx = webhook.WithContext(ctx, dispatcher)

	return &webEnv{
		ctx:        ctx,
		cfg:        cfg,
		db:         dbx,
		backend:    be,
		dispatcher: dispatcher,
		router:     NewRouter(ctx),
	}
}

func seedWebProject(t *testing.T, env *webEnv) proto.Project {
	t.Helper()
	u, err := env.backend.CreateUser(env.ctx, "bob", "Bob Doe", "bob@drydock.dev", false)
	if err != nil {
		t.Fatal(err)
	}
	p, err := env.backend.CreateProject(env.ctx, u, "gitea", "issue tracker", false)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func (env *webEnv) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestWebhookAPICreateAndList(t *testing.T) {
	is := is.New(t)
	env := setupWeb(t)
	project := seedWebProject(t, env)

	rec := env.request(t, http.MethodPost, "/api/v1/projects/bob/gitea/webhooks", map[string]string{
		"url":    "https://hooks.example.com/a",
		"secret": "hunter2",
		"scope":  "push_only",
	})
	is.Equal(rec.Code, http.StatusCreated)

	var created webhookResponse
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &created))
	is.True(created.ID > 0)
	is.Equal(created.ProjectID, project.ID())
	is.Equal(created.URL, "https://hooks.example.com/a")
	is.Equal(created.Scope, webhook.ScopePushOnly)

	// The secret is write-only.
	if strings.Contains(rec.Body.String(), "hunter2") || strings.Contains(rec.Body.String(), "secret") {
		t.Errorf("create response leaks the secret: %s", rec.Body.String())
	}

	// Scope defaults to all_events when omitted.
	rec = env.request(t, http.MethodPost, "/api/v1/projects/bob/gitea/webhooks", map[string]string{
		"url": "https://hooks.example.com/b",
	})
	is.Equal(rec.Code, http.StatusCreated)

	var second webhookResponse
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &second))
	is.Equal(second.Scope, webhook.ScopeAllEvents)

	rec = env.request(t, http.MethodGet, "/api/v1/projects/bob/gitea/webhooks", nil)
	is.Equal(rec.Code, http.StatusOK)

	var listed []webhookResponse
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &listed))
	is.Equal(len(listed), 2)
	is.Equal(listed[0].ID, created.ID)
	is.Equal(listed[1].ID, second.ID)
}

func TestWebhookAPIListEmpty(t *testing.T) {
	is := is.New(t)
	env := setupWeb(t)
	seedWebProject(t, env)

	rec := env.request(t, http.MethodGet, "/api/v1/projects/bob/gitea/webhooks", nil)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(strings.TrimSpace(rec.Body.String()), "[]")
}

func TestWebhookAPICreateErrors(t *testing.T) {
	env := setupWeb(t)
	seedWebProject(t, env)

	cases := []struct {
		name string
		path string
		body interface{}
		want int
	}{
		{
			name: "unknown project",
			path: "/api/v1/projects/bob/nope/webhooks",
			body: map[string]string{"url": "https://hooks.example.com/x"},
			want: http.StatusNotFound,
		},
		{
			name: "empty url",
			path: "/api/v1/projects/bob/gitea/webhooks",
			body: map[string]string{"url": ""},
			want: http.StatusBadRequest,
		},
		{
			name: "bad scheme",
			path: "/api/v1/projects/bob/gitea/webhooks",
			body: map[string]string{"url": "ftp://hooks.example.com/x"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad scope",
			path: "/api/v1/projects/bob/gitea/webhooks",
			body: map[string]string{"url": "https://hooks.example.com/x", "scope": "sometimes"},
			want: http.StatusBadRequest,
		},
		{
			name: "overlong url",
			path: "/api/v1/projects/bob/gitea/webhooks",
			body: map[string]string{"url": "https://hooks.example.com/" + strings.Repeat("x", webhook.MaxPayloadURLLength)},
			want: http.StatusBadRequest,
		},
		{
			name: "overlong secret",
			path: "/api/v1/projects/bob/gitea/webhooks",
			body: map[string]string{
				"url":    "https://hooks.example.com/x",
				"secret": strings.Repeat("s", webhook.MaxSecretLength+1),
			},
			want: http.StatusBadRequest,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.request(t, http.MethodPost, tc.path, tc.body)
			if rec.Code != tc.want {
				t.Errorf("POST %s = %d, want %d (body %s)", tc.path, rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestWebhookAPICreateMalformedBody(t *testing.T) {
	is := is.New(t)
	env := setupWeb(t)
	seedWebProject(t, env)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/bob/gitea/webhooks", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	is.Equal(rec.Code, http.StatusBadRequest)
}

func TestWebhookAPICreateDuplicate(t *testing.T) {
	is := is.New(t)
	env := setupWeb(t)
	seedWebProject(t, env)

	body := map[string]string{"url": "https://hooks.example.com/dup"}
	rec := env.request(t, http.MethodPost, "/api/v1/projects/bob/gitea/webhooks", body)
	is.Equal(rec.Code, http.StatusCreated)

	rec = env.request(t, http.MethodPost, "/api/v1/projects/bob/gitea/webhooks", body)
	is.Equal(rec.Code, http.StatusConflict)
}

func TestWebhookAPIDelete(t *testing.T) {
	is := is.New(t)
	env := setupWeb(t)
	seedWebProject(t, env)

	rec := env.request(t, http.MethodPost, "/api/v1/projects/bob/gitea/webhooks", map[string]string{
		"url": "https://hooks.example.com/a",
	})
	is.Equal(rec.Code, http.StatusCreated)

	var created webhookResponse
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &created))

	path := fmt.Sprintf("/api/v1/projects/bob/gitea/webhooks/%d", created.ID)
	rec = env.request(t, http.MethodDelete, path, nil)
	is.Equal(rec.Code, http.StatusNoContent)

	rec = env.request(t, http.MethodGet, "/api/v1/projects/bob/gitea/webhooks", nil)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(strings.TrimSpace(rec.Body.String()), "[]")

	// Deleting twice, deleting garbage ids, and deleting through the wrong
	// project all report not found.
	rec = env.request(t, http.MethodDelete, path, nil)
	is.Equal(rec.Code, http.StatusNotFound)

	rec = env.request(t, http.MethodDelete, "/api/v1/projects/bob/gitea/webhooks/abc", nil)
	is.Equal(rec.Code, http.StatusNotFound)
}

func TestWebhookAPIDeleteWrongProject(t *testing.T) {
	is := is.New(t)
	env := setupWeb(t)
	seedWebProject(t, env)

	u, err := env.backend.UserByLogin(env.ctx, "bob")
	is.NoErr(err)
	_, err = env.backend.CreateProject(env.ctx, u, "other", "", false)
	is.NoErr(err)

	rec := env.request(t, http.MethodPost, "/api/v1/projects/bob/gitea/webhooks", map[string]string{
		"url": "https://hooks.example.com/a",
	})
	is.Equal(rec.Code, http.StatusCreated)

	var created webhookResponse
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &created))

	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/projects/bob/other/webhooks/%d", created.ID), nil)
	is.Equal(rec.Code, http.StatusNotFound)

	// The webhook survives the misdirected delete.
	rec = env.request(t, http.MethodGet, "/api/v1/projects/bob/gitea/webhooks", nil)
	is.Equal(rec.Code, http.StatusOK)

	var listed []webhookResponse
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &listed))
	is.Equal(len(listed), 1)
}
