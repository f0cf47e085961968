package database

import (
	"context"
	"strings"

	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/models"
	"github.com/drydockhq/drydock/pkg/store"
)

type userStore struct{}

var _ store.UserStore = (*userStore)(nil)

// CreateUser implements store.UserStore.
func (*userStore) CreateUser(ctx context.Context, tx db.Handler, login string, name string, email string, isAdmin bool) (int64, error) {
	login = strings.ToLower(login)
	query := tx.Rebind(`INSERT INTO users (login, name, email, admin, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var userID int64
	if err := tx.GetContext(ctx, &userID, query, login, name, email, isAdmin); err != nil {
		return 0, db.WrapError(err)
	}

	return userID, nil
}

// FindUserByID implements store.UserStore.
func (*userStore) FindUserByID(ctx context.Context, tx db.Handler, id int64) (models.User, error) {
	var user models.User
	query := tx.Rebind(`SELECT * FROM users WHERE id = ?;`)
	err := tx.GetContext(ctx, &user, query, id)
	return user, db.WrapError(err)
}

// FindUserByLogin implements store.UserStore.
func (*userStore) FindUserByLogin(ctx context.Context, tx db.Handler, login string) (models.User, error) {
	var user models.User
	login = strings.ToLower(login)
	query := tx.Rebind(`SELECT * FROM users WHERE login = ?;`)
	err := tx.GetContext(ctx, &user, query, login)
	return user, db.WrapError(err)
}
