package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/drydockhq/drydock/pkg/backend"
	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/webhook"
)

// NewContextHandler returns a new context middleware.
// This middleware adds the config, backend, database, dispatcher, and logger
// to the request context.
func NewContextHandler(ctx context.Context) func(http.Handler) http.Handler {
	cfg := config.FromContext(ctx)
	be := backend.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("http")
	dbx := db.FromContext(ctx)
	dispatcher := webhook.FromContext(ctx)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = config.WithContext(ctx, cfg)
			ctx = backend.WithContext(ctx, be)
			ctx = log.WithContext(ctx, logger.With(
				"method", r.Method,
				"path", r.URL,
				"addr", r.RemoteAddr,
			))
			ctx = db.WithContext(ctx, dbx)
			if dispatcher != nil {
				ctx = webhook.WithContext(ctx, dispatcher)
			}
			r = r.WithContext(ctx)

			next.ServeHTTP(w, r)
		})
	}
}
