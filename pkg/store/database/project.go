package database

import (
	"context"
	"strings"

	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/models"
	"github.com/drydockhq/drydock/pkg/store"
)

type projectStore struct{}

var _ store.ProjectStore = (*projectStore)(nil)

// CreateProject implements store.ProjectStore.
func (*projectStore) CreateProject(ctx context.Context, tx db.Handler, name string, userID int64, overview string, isPrivate bool) (int64, error) {
	query := tx.Rebind(`INSERT INTO projects (name, user_id, overview, private, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var projectID int64
	if err := tx.GetContext(ctx, &projectID, query, name, userID, overview, isPrivate); err != nil {
		return 0, db.WrapError(err)
	}

	return projectID, nil
}

// FindProjectByID implements store.ProjectStore.
func (*projectStore) FindProjectByID(ctx context.Context, tx db.Handler, id int64) (models.Project, error) {
	var project models.Project
	query := tx.Rebind(`SELECT * FROM projects WHERE id = ?;`)
	err := tx.GetContext(ctx, &project, query, id)
	return project, db.WrapError(err)
}

// FindProjectByName implements store.ProjectStore.
func (*projectStore) FindProjectByName(ctx context.Context, tx db.Handler, ownerLogin string, name string) (models.Project, error) {
	var project models.Project
	ownerLogin = strings.ToLower(ownerLogin)
	query := tx.Rebind(`SELECT projects.*
			FROM projects
			INNER JOIN users ON users.id = projects.user_id
			WHERE users.login = ? AND projects.name = ?;`)
	err := tx.GetContext(ctx, &project, query, ownerLogin, name)
	return project, db.WrapError(err)
}

// DeleteProjectByID implements store.ProjectStore.
func (*projectStore) DeleteProjectByID(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`DELETE FROM projects WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return db.WrapError(err)
}

// AllProjects implements store.ProjectStore.
func (*projectStore) AllProjects(ctx context.Context, tx db.Handler) ([]models.Project, error) {
	var projects []models.Project
	query := tx.Rebind(`SELECT * FROM projects ORDER BY id;`)
	err := tx.SelectContext(ctx, &projects, query)
	return projects, db.WrapError(err)
}
