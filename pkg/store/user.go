package store

import (
	"context"

	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/models"
)

// UserStore is an interface for managing users.
type UserStore interface {
	CreateUser(ctx context.Context, h db.Handler, login string, name string, email string, isAdmin bool) (int64, error)
	FindUserByID(ctx context.Context, h db.Handler, id int64) (models.User, error)
	FindUserByLogin(ctx context.Context, h db.Handler, login string) (models.User, error)
}
