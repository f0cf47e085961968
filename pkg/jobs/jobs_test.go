package jobs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/migrate"
	"github.com/drydockhq/drydock/pkg/store"
	"github.com/drydockhq/drydock/pkg/store/database"
)

func TestSweepRegistered(t *testing.T) {
	if _, ok := List()["sweep-orphaned-webhooks"]; !ok {
		t.Fatal("sweep-orphaned-webhooks is not registered")
	}
}

func TestSweepSpecFollowsConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Jobs.SweepOrphans = "@hourly"
	ctx := config.WithContext(context.TODO(), cfg)

	if got := (sweepOrphanedWebhooks{}).Spec(ctx); got != "@hourly" {
		t.Errorf("Spec() = %q, want %q", got, "@hourly")
	}

	cfg.Jobs.SweepOrphans = ""
	if got := (sweepOrphanedWebhooks{}).Spec(ctx); got != "" {
		t.Errorf("Spec() = %q, want empty to disable the job", got)
	}
}

func TestSweepRemovesOrphans(t *testing.T) {
	cfg := config.DefaultConfig()
	ctx := config.WithContext(context.TODO(), cfg)

	// No foreign key pragma here so orphaned rows can be seeded.
	dbx, err := db.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		dbx.Close() //nolint:errcheck
	})
	if err := migrate.Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}

	st := database.New(ctx, dbx)
	ctx = db.WithContext(ctx, dbx)
	ctx = store.WithContext(ctx, st)

	userID, err := st.CreateUser(ctx, dbx, "bob", "Bob", "bob@drydock.dev", false)
	if err != nil {
		t.Fatal(err)
	}
	projectID, err := st.CreateProject(ctx, dbx, "gitea", userID, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.CreateWebhook(ctx, dbx, projectID, "https://hooks.example.com/live", "", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := st.CreateWebhook(ctx, dbx, projectID+999, "https://hooks.example.com/orphan", "", 0); err != nil {
		t.Fatal(err)
	}

	fn := (sweepOrphanedWebhooks{}).Func(ctx)
	fn()

	subs, err := st.FindWebhooksByProjectID(ctx, dbx, projectID)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 {
		t.Fatalf("live project has %d webhooks after sweep, want 1", len(subs))
	}

	orphans, err := st.FindWebhooksByProjectID(ctx, dbx, projectID+999)
	if err != nil {
		t.Fatal(err)
	}
	if len(orphans) != 0 {
		t.Fatalf("orphaned webhooks survived the sweep: %d", len(orphans))
	}
}
