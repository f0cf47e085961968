package models

import "time"

// Webhook is a project webhook subscription.
// Secret is stored for operators that provision shared secrets out of
// band; it is never sent with deliveries.
type Webhook struct {
	ID        int64     `db:"id"`
	ProjectID int64     `db:"project_id"`
	URL       string    `db:"url"`
	Secret    string    `db:"secret"`
	Scope     int       `db:"scope"`
	CreatedAt time.Time `db:"created_at"`
}
