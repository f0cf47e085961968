package database

import (
	"context"

	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/models"
	"github.com/drydockhq/drydock/pkg/store"
)

type webhookStore struct{}

var _ store.WebhookStore = (*webhookStore)(nil)

// CreateWebhook implements store.WebhookStore.
func (*webhookStore) CreateWebhook(ctx context.Context, tx db.Handler, projectID int64, url string, secret string, scope int) (int64, error) {
	query := tx.Rebind(`INSERT INTO webhooks (project_id, url, secret, scope)
			VALUES (?, ?, ?, ?) RETURNING id;`)

	var webhookID int64
	if err := tx.GetContext(ctx, &webhookID, query, projectID, url, secret, scope); err != nil {
		return 0, db.WrapError(err)
	}

	return webhookID, nil
}

// FindWebhookByID implements store.WebhookStore.
func (*webhookStore) FindWebhookByID(ctx context.Context, tx db.Handler, id int64) (models.Webhook, error) {
	var webhook models.Webhook
	query := tx.Rebind(`SELECT * FROM webhooks WHERE id = ?;`)
	err := tx.GetContext(ctx, &webhook, query, id)
	return webhook, db.WrapError(err)
}

// FindWebhooksByProjectID implements store.WebhookStore.
func (*webhookStore) FindWebhooksByProjectID(ctx context.Context, tx db.Handler, projectID int64) ([]models.Webhook, error) {
	var webhooks []models.Webhook
	query := tx.Rebind(`SELECT * FROM webhooks WHERE project_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &webhooks, query, projectID)
	return webhooks, db.WrapError(err)
}

// DeleteWebhookForProject implements store.WebhookStore.
func (*webhookStore) DeleteWebhookForProject(ctx context.Context, tx db.Handler, projectID int64, webhookID int64) error {
	query := tx.Rebind(`DELETE FROM webhooks WHERE id = ? AND project_id = ?;`)
	result, err := tx.ExecContext(ctx, query, webhookID, projectID)
	if err != nil {
		return db.WrapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return db.WrapError(err)
	}

	if rows == 0 {
		return db.ErrRecordNotFound
	}

	return nil
}

// DeleteOrphanedWebhooks implements store.WebhookStore.
func (*webhookStore) DeleteOrphanedWebhooks(ctx context.Context, tx db.Handler) (int64, error) {
	query := tx.Rebind(`DELETE FROM webhooks
			WHERE NOT EXISTS (
				SELECT 1 FROM projects WHERE projects.id = webhooks.project_id
			);`)
	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		return 0, db.WrapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, db.WrapError(err)
	}

	return rows, nil
}
