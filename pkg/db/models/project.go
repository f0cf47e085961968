package models

import "time"

// Project is a database model for a hosted project.
type Project struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	UserID    int64     `db:"user_id"`
	Overview  string    `db:"overview"`
	Private   bool      `db:"private"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
