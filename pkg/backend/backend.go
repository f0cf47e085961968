// Package backend implements user, project, and webhook subscription
// management on top of the store.
package backend

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/store"
)

// Backend handles user, project, and webhook management and operations.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	logger *log.Logger
	cache  *cache
}

// New returns a new Drydock backend.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	b := &Backend{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		store:  st,
		logger: logger,
	}

	b.cache = newCache(b, 1000)

	return b
}
