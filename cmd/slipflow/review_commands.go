package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"slipflow/internal/config"
	"slipflow/internal/docstore"
	"slipflow/internal/slip"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect and approve dispatches awaiting review",
	}

	reviewCmd.AddCommand(newReviewListCommand(ctx))
	reviewCmd.AddCommand(newReviewApproveCommand(ctx))

	return reviewCmd
}

func newReviewListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dispatch slips pending admin review",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(cfg *config.Config, store *docstore.Store, logger *slog.Logger) error {
				engine, err := buildEngine(cfg, store, logger)
				if err != nil {
					return err
				}
				pending, err := engine.PendingReviews(cmd.Context())
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No dispatches pending review")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderSlipTable(pending))
				return nil
			})
		},
	}
}

func newReviewApproveCommand(ctx *commandContext) *cobra.Command {
	var (
		reviewerName  string
		reviewerEmail string
		comments      string
	)

	cmd := &cobra.Command{
		Use:   "approve <slip-id>",
		Short: "Approve a pending dispatch and back-fill its QC slip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(cfg *config.Config, store *docstore.Store, logger *slog.Logger) error {
				engine, err := buildEngine(cfg, store, logger)
				if err != nil {
					return err
				}
				reviewer := slip.Identity{Name: reviewerName, Email: reviewerEmail}
				result, err := engine.ReviewDispatch(cmd.Context(), args[0], reviewer, comments)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Approved %s; now %s\n", result.Dispatch.SlipID, result.Dispatch.Status)
				fmt.Fprintf(out, "Retroactive QC slip %s created for order %s\n",
					result.RetroactiveQC.SlipID, result.RetroactiveQC.OrderNumber)
				if result.NotifyErr != nil {
					fmt.Fprintf(out, "Warning: notification failed: %v\n", result.NotifyErr)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&reviewerName, "name", "", "Reviewing admin's display name")
	cmd.Flags().StringVar(&reviewerEmail, "email", "", "Reviewing admin's email address")
	cmd.Flags().StringVar(&comments, "comments", "", "Review comments recorded on both slips")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
