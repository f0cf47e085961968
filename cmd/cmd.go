// Package cmd provides shared helpers for Drydock commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/drydockhq/drydock/pkg/backend"
	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/store"
	"github.com/drydockhq/drydock/pkg/store/database"
	"github.com/spf13/cobra"
)

// InitBackendContext opens the database and attaches the datastore and the
// backend to the command context.
func InitBackendContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if _, err := os.Stat(cfg.DataPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(cfg.DataPath, os.ModePerm); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	ctx = db.WithContext(ctx, dbx)
	dbstore := database.New(ctx, dbx)
	ctx = store.WithContext(ctx, dbstore)
	be := backend.New(ctx, cfg, dbx, dbstore)
	ctx = backend.WithContext(ctx, be)

	cmd.SetContext(ctx)

	return nil
}

// CloseDBContext closes the database attached to the command context.
func CloseDBContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dbx := db.FromContext(ctx)
	if dbx != nil {
		if err := dbx.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}
