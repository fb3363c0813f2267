package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"slipflow/internal/config"
	"slipflow/internal/docstore"
	"slipflow/internal/refsource"
)

func newPartsCommand(ctx *commandContext) *cobra.Command {
	partsCmd := &cobra.Command{
		Use:   "parts",
		Short: "Look up synced reference parts",
	}

	partsCmd.AddCommand(&cobra.Command{
		Use:   "show <stock-code>",
		Short: "Show one part from the document store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(cfg *config.Config, store *docstore.Store, logger *slog.Logger) error {
				part, err := store.PartByStockCode(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if part == nil {
					return fmt.Errorf("no part with stock code %q; has a sync run yet?", args[0])
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Stock code:  %s\n", part.StockCode)
				fmt.Fprintf(out, "Description: %s\n", part.Description)
				return nil
			})
		},
	})

	return partsCmd
}

func newOrdersCommand(ctx *commandContext) *cobra.Command {
	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "Look up customer orders in the reference system",
	}

	ordersCmd.AddCommand(&cobra.Command{
		Use:   "lines <order-number>",
		Short: "List the line items of one customer order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, err := refsource.Open(cfg)
			if err != nil {
				return err
			}
			defer source.Close()

			lines, err := source.OrderLines(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				return fmt.Errorf("order %q has no lines", args[0])
			}

			rows := make([][]string, 0, len(lines))
			for _, line := range lines {
				rows = append(rows, []string{
					line.LineNumber,
					line.PartID,
					line.PartDescription,
					strconv.FormatFloat(line.OrderQty, 'f', -1, 64),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Line", "Part", "Description", "Qty"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	})

	return ordersCmd
}
