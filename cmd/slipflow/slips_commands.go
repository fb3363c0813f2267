package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"slipflow/internal/config"
	"slipflow/internal/docstore"
	"slipflow/internal/refsource"
	"slipflow/internal/slip"
	"slipflow/internal/workflow"
)

func newSlipsCommand(ctx *commandContext) *cobra.Command {
	slipsCmd := &cobra.Command{
		Use:   "slips",
		Short: "Create and list slips",
	}

	slipsCmd.AddCommand(newSlipsListCommand(ctx))
	slipsCmd.AddCommand(newCreateQCCommand(ctx))
	slipsCmd.AddCommand(newCreateIRCommand(ctx))
	slipsCmd.AddCommand(newCreateCCCommand(ctx))
	slipsCmd.AddCommand(newCreateDispatchCommand(ctx))

	return slipsCmd
}

func newSlipsListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "list <type>",
		Short: "List slips of one type, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slipType, ok := slip.ParseType(args[0])
			if !ok {
				return fmt.Errorf("unknown slip type %q (expected qc, ir, cc, or dispatch)", args[0])
			}
			status := slip.Status(strings.TrimSpace(statusFlag))
			if status != "" && !slip.ValidStatus(slipType, status) {
				return fmt.Errorf("status %q is not valid for %s slips", statusFlag, slipType.Label())
			}

			return ctx.withStore(cmd.Context(), func(cfg *config.Config, store *docstore.Store, logger *slog.Logger) error {
				slips, err := store.SlipsByType(cmd.Context(), slipType, status)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderSlipTable(slips))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status")
	return cmd
}

func renderSlipTable(slips []*slip.Slip) string {
	rows := make([][]string, 0, len(slips))
	for _, doc := range slips {
		rows = append(rows, []string{
			doc.SlipID,
			doc.OrderNumber,
			string(doc.Status),
			doc.CreatedAt.Format("2006-01-02 15:04"),
			doc.CreatedBy.Email,
		})
	}
	return renderTable(
		[]string{"Slip", "Order", "Status", "Created", "By"},
		rows,
		nil,
	)
}

func identityFlags(cmd *cobra.Command, name, email *string) {
	cmd.Flags().StringVar(name, "name", "", "Submitting user's display name")
	cmd.Flags().StringVar(email, "email", "", "Submitting user's email address")
	_ = cmd.MarkFlagRequired("email")
}

func printCreated(cmd *cobra.Command, result workflow.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s (%s) for order %s\n",
		result.Slip.SlipID, result.Slip.Status, result.Slip.OrderNumber)
	if result.NotifyErr != nil {
		fmt.Fprintf(out, "Warning: notification failed: %v\n", result.NotifyErr)
	}
}

func newCreateQCCommand(ctx *commandContext) *cobra.Command {
	var (
		orderNumber  string
		coaNumber    string
		qcType       string
		prodManager  string
		dispManager  string
		lineFlags    []string
		creatorName  string
		creatorEmail string
	)

	cmd := &cobra.Command{
		Use:   "create-qc",
		Short: "Create a quality-control slip actioning order lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(cfg *config.Config, store *docstore.Store, logger *slog.Logger) error {
				lines, err := resolveActionedLines(cmd, cfg, orderNumber, lineFlags)
				if err != nil {
					return err
				}

				engine, err := buildEngine(cfg, store, logger)
				if err != nil {
					return err
				}
				result, err := engine.CreateQC(cmd.Context(), workflow.NewQCSlip{
					OrderNumber:            orderNumber,
					COANumber:              coaNumber,
					QCType:                 qcType,
					ProductionManagerEmail: prodManager,
					DispatchManagerEmail:   dispManager,
					ActionedLines:          lines,
					CreatedBy:              slip.Identity{Name: creatorName, Email: creatorEmail},
				})
				if err != nil {
					return err
				}
				printCreated(cmd, result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&orderNumber, "order", "", "Customer order number")
	cmd.Flags().StringVar(&coaNumber, "coa", "", "Certificate of analysis number")
	cmd.Flags().StringVar(&qcType, "qc-type", "", "QC check type")
	cmd.Flags().StringVar(&prodManager, "production-manager", "", "Production manager email")
	cmd.Flags().StringVar(&dispManager, "dispatch-manager", "", "Dispatch manager email")
	cmd.Flags().StringArrayVar(&lineFlags, "line", nil, "Actioned line as LINE_NO:QTY (repeatable)")
	identityFlags(cmd, &creatorName, &creatorEmail)
	_ = cmd.MarkFlagRequired("order")
	_ = cmd.MarkFlagRequired("line")
	return cmd
}

// resolveActionedLines turns LINE_NO:QTY flags into actioned lines enriched
// from the order's reference rows.
func resolveActionedLines(cmd *cobra.Command, cfg *config.Config, orderNumber string, lineFlags []string) ([]slip.ActionedLine, error) {
	source, err := refsource.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	orderLines, err := source.OrderLines(cmd.Context(), strings.TrimSpace(orderNumber))
	if err != nil {
		return nil, err
	}
	byLine := make(map[string]refsource.OrderLine, len(orderLines))
	for _, line := range orderLines {
		byLine[line.LineNumber] = line
	}

	actioned := make([]slip.ActionedLine, 0, len(lineFlags))
	for _, flag := range lineFlags {
		lineNo, qty, err := parseLineFlag(flag)
		if err != nil {
			return nil, err
		}
		orderLine, ok := byLine[lineNo]
		if !ok {
			return nil, fmt.Errorf("order %s has no line %s", orderNumber, lineNo)
		}
		actioned = append(actioned, slip.ActionedLine{
			LineNumber:      orderLine.LineNumber,
			PartID:          orderLine.PartID,
			PartDescription: orderLine.PartDescription,
			MiscReference:   orderLine.MiscReference,
			OrderQty:        orderLine.OrderQty,
			ActionQty:       qty,
		})
	}
	return actioned, nil
}

func parseLineFlag(value string) (string, float64, error) {
	lineNo, qtyText, found := strings.Cut(value, ":")
	lineNo = strings.TrimSpace(lineNo)
	if !found || lineNo == "" {
		return "", 0, fmt.Errorf("line flag %q must be LINE_NO:QTY", value)
	}
	qty, err := strconv.ParseFloat(strings.TrimSpace(qtyText), 64)
	if err != nil {
		return "", 0, fmt.Errorf("line flag %q has a bad quantity: %w", value, err)
	}
	return lineNo, qty, nil
}

func newCreateIRCommand(ctx *commandContext) *cobra.Command {
	var (
		orderNumber  string
		nature       string
		corrective   string
		creatorName  string
		creatorEmail string
	)

	cmd := &cobra.Command{
		Use:   "create-ir",
		Short: "Create an incident report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(cfg *config.Config, store *docstore.Store, logger *slog.Logger) error {
				engine, err := buildEngine(cfg, store, logger)
				if err != nil {
					return err
				}
				result, err := engine.CreateIR(cmd.Context(), workflow.NewIRSlip{
					OrderNumber:       orderNumber,
					NatureOfComplaint: nature,
					CorrectiveAction:  corrective,
					CreatedBy:         slip.Identity{Name: creatorName, Email: creatorEmail},
				})
				if err != nil {
					return err
				}
				printCreated(cmd, result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&orderNumber, "order", "", "Customer order number")
	cmd.Flags().StringVar(&nature, "nature", "", "Nature of the complaint")
	cmd.Flags().StringVar(&corrective, "corrective-action", "", "Corrective action taken")
	identityFlags(cmd, &creatorName, &creatorEmail)
	_ = cmd.MarkFlagRequired("order")
	return cmd
}

func newCreateCCCommand(ctx *commandContext) *cobra.Command {
	var (
		orderNumber  string
		details      string
		creatorName  string
		creatorEmail string
	)

	cmd := &cobra.Command{
		Use:   "create-cc",
		Short: "Create a customer complaint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(cfg *config.Config, store *docstore.Store, logger *slog.Logger) error {
				engine, err := buildEngine(cfg, store, logger)
				if err != nil {
					return err
				}
				result, err := engine.CreateCC(cmd.Context(), workflow.NewCCSlip{
					OrderNumber:      orderNumber,
					ComplaintDetails: details,
					CreatedBy:        slip.Identity{Name: creatorName, Email: creatorEmail},
				})
				if err != nil {
					return err
				}
				printCreated(cmd, result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&orderNumber, "order", "", "Customer order number")
	cmd.Flags().StringVar(&details, "details", "", "Complaint details")
	identityFlags(cmd, &creatorName, &creatorEmail)
	_ = cmd.MarkFlagRequired("order")
	return cmd
}

func newCreateDispatchCommand(ctx *commandContext) *cobra.Command {
	var (
		orderNumber  string
		attachments  []string
		creatorName  string
		creatorEmail string
	)

	cmd := &cobra.Command{
		Use:   "create-dispatch",
		Short: "Create a dispatch slip; completes automatically when QC is done",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(cfg *config.Config, store *docstore.Store, logger *slog.Logger) error {
				engine, err := buildEngine(cfg, store, logger)
				if err != nil {
					return err
				}
				result, err := engine.CreateDispatch(cmd.Context(), workflow.NewDispatch{
					OrderNumber: orderNumber,
					Attachments: attachments,
					CreatedBy:   slip.Identity{Name: creatorName, Email: creatorEmail},
				})
				if err != nil {
					return err
				}
				printCreated(cmd, result)
				if result.Slip.Status == slip.StatusPendingReview {
					fmt.Fprintln(cmd.OutOrStdout(), "No complete QC slip for this order; an admin must approve it (see `slipflow review`)")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&orderNumber, "order", "", "Customer order number")
	cmd.Flags().StringArrayVar(&attachments, "attachment", nil, "Attachment path to record (repeatable)")
	identityFlags(cmd, &creatorName, &creatorEmail)
	_ = cmd.MarkFlagRequired("order")
	return cmd
}
