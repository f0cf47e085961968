package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/migrate"
	"github.com/matryer/is"
)

func TestWebhookStore(t *testing.T) {
	is := is.New(t)
	ctx, dbx, s := setupStore(t)

	uid, err := s.CreateUser(ctx, dbx, "bob", "", "", false)
	is.NoErr(err)
	pid, err := s.CreateProject(ctx, dbx, "gitea", uid, "", false)
	is.NoErr(err)

	first, err := s.CreateWebhook(ctx, dbx, pid, "https://hooks.example.com/a", "", 0)
	is.NoErr(err)
	second, err := s.CreateWebhook(ctx, dbx, pid, "https://hooks.example.com/b", "s3cret", 1)
	is.NoErr(err)
	is.True(second > first)

	hooks, err := s.FindWebhooksByProjectID(ctx, dbx, pid)
	is.NoErr(err)
	is.Equal(len(hooks), 2)
	is.Equal(hooks[0].ID, first)
	is.Equal(hooks[1].ID, second)
	is.Equal(hooks[1].Secret, "s3cret")
	is.Equal(hooks[1].Scope, 1)

	hook, err := s.FindWebhookByID(ctx, dbx, first)
	is.NoErr(err)
	is.Equal(hook.ProjectID, pid)
	is.Equal(hook.URL, "https://hooks.example.com/a")
}

func TestWebhookDuplicateURL(t *testing.T) {
	is := is.New(t)
	ctx, dbx, s := setupStore(t)

	uid, err := s.CreateUser(ctx, dbx, "bob", "", "", false)
	is.NoErr(err)
	pid, err := s.CreateProject(ctx, dbx, "gitea", uid, "", false)
	is.NoErr(err)
	other, err := s.CreateProject(ctx, dbx, "gogs", uid, "", false)
	is.NoErr(err)

	_, err = s.CreateWebhook(ctx, dbx, pid, "https://hooks.example.com/a", "", 0)
	is.NoErr(err)

	// Same URL on the same project is rejected.
	_, err = s.CreateWebhook(ctx, dbx, pid, "https://hooks.example.com/a", "", 0)
	is.True(errors.Is(err, db.ErrDuplicateKey))

	// The same URL on another project is fine.
	_, err = s.CreateWebhook(ctx, dbx, other, "https://hooks.example.com/a", "", 0)
	is.NoErr(err)
}

func TestDeleteWebhookForProject(t *testing.T) {
	ctx, dbx, s := setupStore(t)

	uid, err := s.CreateUser(ctx, dbx, "bob", "", "", false)
	if err != nil {
		t.Fatal(err)
	}
	pid, err := s.CreateProject(ctx, dbx, "gitea", uid, "", false)
	if err != nil {
		t.Fatal(err)
	}
	other, err := s.CreateProject(ctx, dbx, "gogs", uid, "", false)
	if err != nil {
		t.Fatal(err)
	}
	id, err := s.CreateWebhook(ctx, dbx, pid, "https://hooks.example.com/a", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	// Deleting through the wrong project must not touch the row.
	if err := s.DeleteWebhookForProject(ctx, dbx, other, id); !errors.Is(err, db.ErrRecordNotFound) {
		t.Errorf("DeleteWebhookForProject(other) => %v, want ErrRecordNotFound", err)
	}
	if _, err := s.FindWebhookByID(ctx, dbx, id); err != nil {
		t.Errorf("webhook is gone after mismatched delete: %v", err)
	}

	if err := s.DeleteWebhookForProject(ctx, dbx, pid, id); err != nil {
		t.Errorf("DeleteWebhookForProject() => %v, want nil error", err)
	}
	if _, err := s.FindWebhookByID(ctx, dbx, id); !errors.Is(err, db.ErrRecordNotFound) {
		t.Errorf("FindWebhookByID() => %v, want ErrRecordNotFound after delete", err)
	}
}

func TestWebhookCascade(t *testing.T) {
	ctx, dbx, s := setupStore(t)

	uid, err := s.CreateUser(ctx, dbx, "bob", "", "", false)
	if err != nil {
		t.Fatal(err)
	}
	pid, err := s.CreateProject(ctx, dbx, "gitea", uid, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateWebhook(ctx, dbx, pid, "https://hooks.example.com/a", "", 0); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteProjectByID(ctx, dbx, pid); err != nil {
		t.Fatal(err)
	}

	hooks, err := s.FindWebhooksByProjectID(ctx, dbx, pid)
	if err != nil {
		t.Fatal(err)
	}
	if len(hooks) != 0 {
		t.Errorf("got %d webhooks after project delete, want 0", len(hooks))
	}
}

// Orphan sweeping matters when foreign keys are not enforced, so this
// test opens the database without the foreign_keys pragma.
func TestDeleteOrphanedWebhooks(t *testing.T) {
	ctx := config.WithContext(context.TODO(), config.DefaultConfig())
	dbx, err := db.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			t.Error(err)
		}
	})
	if err := migrate.Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}
	s := New(ctx, dbx)

	uid, err := s.CreateUser(ctx, dbx, "bob", "", "", false)
	if err != nil {
		t.Fatal(err)
	}
	pid, err := s.CreateProject(ctx, dbx, "gitea", uid, "", false)
	if err != nil {
		t.Fatal(err)
	}
	keep, err := s.CreateProject(ctx, dbx, "gogs", uid, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateWebhook(ctx, dbx, pid, "https://hooks.example.com/a", "", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateWebhook(ctx, dbx, pid, "https://hooks.example.com/b", "", 0); err != nil {
		t.Fatal(err)
	}
	kept, err := s.CreateWebhook(ctx, dbx, keep, "https://hooks.example.com/c", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	// Without enforcement the project delete leaves the webhooks behind.
	if err := s.DeleteProjectByID(ctx, dbx, pid); err != nil {
		t.Fatal(err)
	}

	n, err := s.DeleteOrphanedWebhooks(ctx, dbx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("DeleteOrphanedWebhooks() => %d, want 2", n)
	}

	if _, err := s.FindWebhookByID(ctx, dbx, kept); err != nil {
		t.Errorf("sweep removed a webhook whose project still exists: %v", err)
	}

	n, err = s.DeleteOrphanedWebhooks(ctx, dbx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("second sweep => %d, want 0", n)
	}
}
