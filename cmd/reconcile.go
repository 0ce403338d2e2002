package cmd

import (
	"context"
	"fmt"
	"strconv"

	"delivery-reconciler/feature/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var archiveReport bool

// reconcileCmd is the parent command for reconciliation runs.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile deliveries against the external ledgers",
	Long: `Reconcile deliveries against the stores' external supplier ledgers.

A delivery is reconciled when its invoice reference exists in the store's
ledger table and the row's supplier matches the delivery's supplier.`,
}

// deliveryReconcileCmd reconciles a single delivery by id.
var deliveryReconcileCmd = &cobra.Command{
	Use:   "delivery <id>",
	Short: "Reconcile a single delivery",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeliveryReconcile,
}

// pendingReconcileCmd reconciles every unreconciled delivery.
var pendingReconcileCmd = &cobra.Command{
	Use:   "pending",
	Short: "Reconcile all pending deliveries",
	Long: `Reconcile every delivery not yet reconciled and print a summary.

Examples:
  # Run the batch and print the report
  reconcile pending

  # Also upload the report to object storage (needs ARCHIVE_ENABLED=true)
  reconcile pending --archive`,
	RunE: runPendingReconcile,
}

func init() {
	reconcileCmd.AddCommand(deliveryReconcileCmd)
	reconcileCmd.AddCommand(pendingReconcileCmd)

	pendingReconcileCmd.Flags().BoolVar(&archiveReport, "archive", false, "Upload the batch report to object storage")

	RootCmd.AddCommand(reconcileCmd)
}

func runDeliveryReconcile(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("delivery id must be a positive integer, got %q", args[0])
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	outcome, err := rt.service.Reconcile(context.Background(), uint(id))
	if err != nil {
		rt.logger.Error("Reconciliation failed",
			zap.Uint64("delivery_id", id),
			zap.Error(err))
		return err
	}

	rt.logger.Info("Reconciliation finished",
		zap.Uint64("delivery_id", id),
		zap.String("outcome", string(outcome)))
	fmt.Printf("delivery %d: %s\n", id, outcome)
	return nil
}

func runPendingReconcile(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	ctx := context.Background()

	var report *reconcile.Report
	var object string
	if archiveReport {
		report, object, err = rt.service.ReconcilePendingAndArchive(ctx)
	} else {
		report, err = rt.service.ReconcilePending(ctx)
	}
	if err != nil {
		return fmt.Errorf("batch reconciliation failed: %w", err)
	}

	fmt.Printf("total: %d  reconciled: %d  not reconciled: %d  failed: %d\n",
		report.Summary.Total,
		report.Summary.Reconciled,
		report.Summary.NotReconciled,
		report.Summary.Failed)

	for _, r := range report.Results {
		if r.Outcome == reconcile.OutcomeFailed {
			fmt.Printf("delivery %d failed: %s\n", r.DeliveryID, r.Error)
		}
	}

	if object != "" {
		fmt.Printf("report archived as %s\n", object)
	}
	return nil
}
