package store

// Store is an aggregate store for all Drydock models.
type Store interface {
	UserStore
	ProjectStore
	WebhookStore
}
