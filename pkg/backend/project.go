package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/models"
	"github.com/drydockhq/drydock/pkg/proto"
)

// project wraps a project row and its owner into proto.Project.
type project struct {
	project models.Project
	owner   models.User
	cfg     *config.Config
}

var _ proto.Project = (*project)(nil)

// ID implements proto.Project.
func (p *project) ID() int64 {
	return p.project.ID
}

// Name implements proto.Project.
func (p *project) Name() string {
	return p.project.Name
}

// Owner implements proto.Project.
func (p *project) Owner() string {
	return p.owner.Login
}

// Overview implements proto.Project.
func (p *project) Overview() string {
	return p.project.Overview
}

// IsPrivate implements proto.Project.
func (p *project) IsPrivate() bool {
	return p.project.Private
}

// URL implements proto.Project. Webhook payloads derive commit, issue,
// and pull request links from it.
func (p *project) URL() string {
	return fmt.Sprintf("%s/%s/%s", p.cfg.PublicURL, p.owner.Login, p.project.Name)
}

// Project returns the named project.
func (b *Backend) Project(ctx context.Context, owner, name string) (proto.Project, error) {
	m, err := b.store.FindProjectByName(ctx, b.db, owner, name)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrProjectNotFound
		}
		return nil, db.WrapError(err)
	}

	return b.wrapProject(ctx, m)
}

// ProjectByID returns the project with the given id.
func (b *Backend) ProjectByID(ctx context.Context, id int64) (proto.Project, error) {
	m, err := b.store.FindProjectByID(ctx, b.db, id)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrProjectNotFound
		}
		return nil, db.WrapError(err)
	}

	return b.wrapProject(ctx, m)
}

// CreateProject creates a project owned by the given user.
func (b *Backend) CreateProject(ctx context.Context, owner proto.User, name, overview string, private bool) (proto.Project, error) {
	var m models.Project
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		id, err := b.store.CreateProject(ctx, tx, name, owner.ID(), overview, private)
		if err != nil {
			return err
		}

		m, err = b.store.FindProjectByID(ctx, tx, id)
		return err
	}); err != nil {
		return nil, db.WrapError(err)
	}

	b.logger.Info("project created", "owner", owner.Login(), "name", name)
	return b.wrapProject(ctx, m)
}

func (b *Backend) wrapProject(ctx context.Context, m models.Project) (proto.Project, error) {
	owner, err := b.store.FindUserByID(ctx, b.db, m.UserID)
	if err != nil {
		return nil, db.WrapError(err)
	}

	return &project{project: m, owner: owner, cfg: b.cfg}, nil
}
