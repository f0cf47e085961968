package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/drydockhq/drydock/cmd/drydock/admin"
	"github.com/drydockhq/drydock/cmd/drydock/serve"
	webhookcmd "github.com/drydockhq/drydock/cmd/drydock/webhook"
	"github.com/drydockhq/drydock/pkg/config"
	logutil "github.com/drydockhq/drydock/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	rootCmd = &cobra.Command{
		Use:          "drydock",
		Short:        "A webhook notification dispatcher for hosted projects",
		Long:         "Drydock posts project event notifications to registered webhook endpoints.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.AddCommand(
		serve.Command,
		admin.Command,
		webhookcmd.Command,
		manCmd,
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
}

func main() {
	ctx := context.Background()

	cfg := config.DefaultConfig()
	if cfg.Exist() {
		if err := cfg.ParseFile(); err != nil {
			log.Fatalf("parse config file: %v", err)
		}
	}
	if err := cfg.ParseEnv(); err != nil {
		log.Fatalf("parse environment variables: %v", err)
	}

	ctx = config.WithContext(ctx, cfg)

	logger, f, err := logutil.NewLogger(cfg)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	if f != nil {
		defer f.Close() // nolint: errcheck
	}

	// Set global logger
	log.SetDefault(logger)

	// Set the max number of processes to the number of CPUs
	// This is useful when running drydock in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	ctx = log.WithContext(ctx, logger)

	if rootCmd.ExecuteContext(ctx) != nil {
		os.Exit(1)
	}
}
