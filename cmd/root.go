package cmd

import (
	"fmt"
	"os"

	"delivery-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "delivery-reconciler",
	Short: "Delivery Reconciliation Service",
	Long: `Delivery Reconciler verifies store deliveries against external supplier
ledgers and tracks their reconciliation status. It caches verification
results with asymmetric TTLs to keep ledger traffic low.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// CLI errors go through the console encoder so they stay readable
		// on a terminal, with a plain-print fallback.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
