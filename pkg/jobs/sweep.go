package jobs

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/store"
)

func init() {
	Register("sweep-orphaned-webhooks", sweepOrphanedWebhooks{})
}

// sweepOrphanedWebhooks deletes webhook subscriptions whose project no
// longer exists. Foreign keys normally cascade these away, the sweep
// catches rows left behind by out-of-band project removal.
type sweepOrphanedWebhooks struct{}

var _ Runner = sweepOrphanedWebhooks{}

// Spec returns the job schedule from the configuration.
func (sweepOrphanedWebhooks) Spec(ctx context.Context) string {
	return config.FromContext(ctx).Jobs.SweepOrphans
}

// Func returns the job function.
func (sweepOrphanedWebhooks) Func(ctx context.Context) func() {
	dbx := db.FromContext(ctx)
	datastore := store.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("jobs.sweep")
	return func() {
		n, err := datastore.DeleteOrphanedWebhooks(ctx, dbx)
		if err != nil {
			logger.Error("error sweeping orphaned webhooks", "err", err)
			return
		}
		if n > 0 {
			logger.Info("swept orphaned webhooks", "count", n)
		}
	}
}
