package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"slipflow/internal/config"
	"slipflow/internal/docstore"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change stored settings",
	}

	settingsCmd.AddCommand(newEmailTestingCommand(ctx))

	return settingsCmd
}

func newEmailTestingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "email-testing {on|off|status}",
		Short:     "Control the email test-mode toggle",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(cfg *config.Config, store *docstore.Store, logger *slog.Logger) error {
				out := cmd.OutOrStdout()
				switch args[0] {
				case "on":
					if err := store.SetEmailTesting(cmd.Context(), true); err != nil {
						return err
					}
					fmt.Fprintf(out, "Email testing mode enabled; all mail goes to %s\n", cfg.Notify.TestRecipient)
				case "off":
					if err := store.SetEmailTesting(cmd.Context(), false); err != nil {
						return err
					}
					fmt.Fprintln(out, "Email testing mode disabled; mail goes to real recipients")
				case "status":
					enabled, err := store.EmailTestingEnabled(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Email testing mode: %s\n", onOff(enabled))
				default:
					return fmt.Errorf("unknown argument %q (expected on, off, or status)", args[0])
				}
				return nil
			})
		},
	}
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}
