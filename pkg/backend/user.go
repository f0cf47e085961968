package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/models"
	"github.com/drydockhq/drydock/pkg/proto"
)

// user wraps a user row into proto.User.
type user struct {
	user models.User
	cfg  *config.Config
}

var _ proto.User = (*user)(nil)

// ID implements proto.User.
func (u *user) ID() int64 {
	return u.user.ID
}

// Login implements proto.User.
func (u *user) Login() string {
	return u.user.Login
}

// Name implements proto.User.
func (u *user) Name() string {
	return u.user.DisplayName()
}

// Email implements proto.User.
func (u *user) Email() string {
	return u.user.Email
}

// AvatarURL implements proto.User.
func (u *user) AvatarURL() string {
	return u.cfg.PublicURL + "/avatar/" + u.user.Login
}

// IsAdmin implements proto.User.
func (u *user) IsAdmin() bool {
	return u.user.Admin
}

// UserByLogin returns the user with the given login.
func (b *Backend) UserByLogin(ctx context.Context, login string) (proto.User, error) {
	m, err := b.store.FindUserByLogin(ctx, b.db, login)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrUserNotFound
		}
		return nil, db.WrapError(err)
	}

	return &user{user: m, cfg: b.cfg}, nil
}

// CreateUser registers a new user.
func (b *Backend) CreateUser(ctx context.Context, login, name, email string, isAdmin bool) (proto.User, error) {
	login = strings.ToLower(login)

	var m models.User
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		id, err := b.store.CreateUser(ctx, tx, login, name, email, isAdmin)
		if err != nil {
			return err
		}

		m, err = b.store.FindUserByID(ctx, tx, id)
		return err
	}); err != nil {
		return nil, db.WrapError(err)
	}

	b.logger.Info("user created", "login", login)
	return &user{user: m, cfg: b.cfg}, nil
}
