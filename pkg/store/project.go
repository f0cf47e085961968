package store

import (
	"context"

	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/models"
)

// ProjectStore is an interface for managing projects.
type ProjectStore interface {
	CreateProject(ctx context.Context, h db.Handler, name string, userID int64, overview string, isPrivate bool) (int64, error)
	FindProjectByID(ctx context.Context, h db.Handler, id int64) (models.Project, error)
	FindProjectByName(ctx context.Context, h db.Handler, ownerLogin string, name string) (models.Project, error)
	DeleteProjectByID(ctx context.Context, h db.Handler, id int64) error
	AllProjects(ctx context.Context, h db.Handler) ([]models.Project, error)
}
