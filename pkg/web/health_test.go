package web

import (
	"net/http"
	"testing"

	"github.com/matryer/is"
)

func TestHealthEndpoints(t *testing.T) {
	is := is.New(t)
	env := setupWeb(t)

	rec := env.request(t, http.MethodGet, "/livez", nil)
	is.Equal(rec.Code, http.StatusOK)

	rec = env.request(t, http.MethodGet, "/readyz", nil)
	is.Equal(rec.Code, http.StatusOK)
}

func TestReadinessReportsDatabaseLoss(t *testing.T) {
	is := is.New(t)
	env := setupWeb(t)

	is.NoErr(env.dispatcher.Close())
	is.NoErr(env.db.Close())

	rec := env.request(t, http.MethodGet, "/readyz", nil)
	is.Equal(rec.Code, http.StatusServiceUnavailable)

	// Liveness only says the process is up.
	rec = env.request(t, http.MethodGet, "/livez", nil)
	is.Equal(rec.Code, http.StatusOK)
}

func TestUnknownRouteIs404(t *testing.T) {
	is := is.New(t)
	env := setupWeb(t)

	rec := env.request(t, http.MethodGet, "/api/v1/nope", nil)
	is.Equal(rec.Code, http.StatusNotFound)
}
