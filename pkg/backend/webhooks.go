package backend

import (
	"context"

	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/models"
	"github.com/drydockhq/drydock/pkg/proto"
	"github.com/drydockhq/drydock/pkg/webhook"
)

// CreateWebhook attaches a webhook subscription to a project. An empty
// or malformed payload URL is an error, never a silent no-op.
func (b *Backend) CreateWebhook(ctx context.Context, project proto.Project, url, secret string, scope webhook.Scope) (models.Webhook, error) {
	if err := webhook.ValidatePayloadURL(url); err != nil {
		return models.Webhook{}, err
	}
	if err := webhook.ValidateSecret(secret); err != nil {
		return models.Webhook{}, err
	}

	var m models.Webhook
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		id, err := b.store.CreateWebhook(ctx, tx, project.ID(), url, secret, int(scope))
		if err != nil {
			return err
		}

		m, err = b.store.FindWebhookByID(ctx, tx, id)
		return err
	}); err != nil {
		return models.Webhook{}, db.WrapError(err)
	}

	b.cache.Delete(project.ID())
	b.logger.Info("webhook created", "project", project.Name(), "webhook", m.ID)
	return m, nil
}

// Webhooks lists a project's webhook subscriptions ordered by id.
func (b *Backend) Webhooks(ctx context.Context, project proto.Project) ([]models.Webhook, error) {
	if subs, ok := b.cache.Get(project.ID()); ok {
		return subs, nil
	}

	subs, err := b.store.FindWebhooksByProjectID(ctx, b.db, project.ID())
	if err != nil {
		return nil, db.WrapError(err)
	}

	b.cache.Set(project.ID(), subs)
	return subs, nil
}

// DeleteWebhook removes a webhook subscription from a project. It
// returns db.ErrRecordNotFound when the webhook does not exist or
// belongs to another project.
func (b *Backend) DeleteWebhook(ctx context.Context, project proto.Project, id int64) error {
	if err := b.store.DeleteWebhookForProject(ctx, b.db, project.ID(), id); err != nil {
		return db.WrapError(err)
	}

	b.cache.Delete(project.ID())
	b.logger.Info("webhook deleted", "project", project.Name(), "webhook", id)
	return nil
}
