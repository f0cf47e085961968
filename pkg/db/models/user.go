// Package models defines the database models for Drydock.
package models

import "time"

// User is a database model for a site user.
type User struct {
	ID        int64     `db:"id"`
	Login     string    `db:"login"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Admin     bool      `db:"admin"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DisplayName returns the user's name, falling back to the login.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}
