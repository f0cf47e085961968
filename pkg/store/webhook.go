package store

import (
	"context"

	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/models"
)

// WebhookStore is an interface for managing webhook subscriptions.
type WebhookStore interface {
	// CreateWebhook attaches a new webhook to a project and returns its id.
	CreateWebhook(ctx context.Context, h db.Handler, projectID int64, url string, secret string, scope int) (int64, error)
	FindWebhookByID(ctx context.Context, h db.Handler, id int64) (models.Webhook, error)
	// FindWebhooksByProjectID returns a project's webhooks ordered by id.
	FindWebhooksByProjectID(ctx context.Context, h db.Handler, projectID int64) ([]models.Webhook, error)
	// DeleteWebhookForProject deletes a webhook only if it belongs to the
	// given project. Returns db.ErrRecordNotFound otherwise.
	DeleteWebhookForProject(ctx context.Context, h db.Handler, projectID int64, webhookID int64) error
	// DeleteOrphanedWebhooks removes webhooks whose project no longer
	// exists and reports how many rows went away.
	DeleteOrphanedWebhooks(ctx context.Context, h db.Handler) (int64, error)
}
