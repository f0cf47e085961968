// Package webhook provides webhook management commands.
package webhook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/tablewriter"
	"github.com/drydockhq/drydock/cmd"
	"github.com/drydockhq/drydock/pkg/backend"
	"github.com/drydockhq/drydock/pkg/db/models"
	webhooks "github.com/drydockhq/drydock/pkg/webhook"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	// Command is the webhook command.
	Command = &cobra.Command{
		Use:   "webhook",
		Short: "Manage project webhooks",
	}

	listCmd = &cobra.Command{
		Use:                "list PROJECT",
		Aliases:            []string{"ls"},
		Short:              "List the webhooks of a project",
		Args:               cobra.ExactArgs(1),
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)

			owner, name, err := splitProject(args[0])
			if err != nil {
				return err
			}

			project, err := be.Project(ctx, owner, name)
			if err != nil {
				return err
			}

			hooks, err := be.Webhooks(ctx, project)
			if err != nil {
				return err
			}

			if len(hooks) == 0 {
				c.Println("No webhooks found")
				return nil
			}

			return tablewriter.Render(
				c.OutOrStdout(),
				hooks,
				[]string{"ID", "URL", "Scope", "Created At"},
				func(h models.Webhook) ([]string, error) {
					return []string{
						strconv.FormatInt(h.ID, 10),
						h.URL,
						webhooks.Scope(h.Scope).String(),
						humanize.Time(h.CreatedAt),
					}, nil
				},
			)
		},
	}

	createSecret string
	createScope  string

	createCmd = &cobra.Command{
		Use:                "create PROJECT URL",
		Short:              "Register a webhook for a project",
		Args:               cobra.ExactArgs(2),
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)

			owner, name, err := splitProject(args[0])
			if err != nil {
				return err
			}

			scope, err := webhooks.ParseScope(createScope)
			if err != nil {
				return fmt.Errorf("invalid scope %q: %w", createScope, err)
			}

			project, err := be.Project(ctx, owner, name)
			if err != nil {
				return err
			}

			hook, err := be.CreateWebhook(ctx, project, args[1], createSecret, scope)
			if err != nil {
				return err
			}

			c.Printf("Webhook %d created\n", hook.ID)
			return nil
		},
	}

	deleteCmd = &cobra.Command{
		Use:                "delete PROJECT ID",
		Aliases:            []string{"rm"},
		Short:              "Delete a webhook from a project",
		Args:               cobra.ExactArgs(2),
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)

			owner, name, err := splitProject(args[0])
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid webhook id %q", args[1])
			}

			project, err := be.Project(ctx, owner, name)
			if err != nil {
				return err
			}

			if err := be.DeleteWebhook(ctx, project, id); err != nil {
				return err
			}

			c.Printf("Webhook %d deleted\n", id)
			return nil
		},
	}
)

func init() {
	createCmd.Flags().StringVar(&createSecret, "secret", "", "shared secret stored with the webhook")
	createCmd.Flags().StringVar(&createScope, "scope", webhooks.ScopeAllEvents.String(), "event scope (all_events or push_only)")

	Command.AddCommand(
		listCmd,
		createCmd,
		deleteCmd,
	)
}

// splitProject splits an OWNER/NAME project reference.
func splitProject(s string) (string, string, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid project %q, expected OWNER/NAME", s)
	}

	return owner, name, nil
}
