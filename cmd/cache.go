package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// cacheCmd is the parent command for cache administration.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Administer the verification cache",
	Long: `Administer the verification cache: flush cached results or purge
expired entries.

Flushing matters after ledger corrections: a cached not-found sticks until
its TTL passes unless the affected scope is invalidated.`,
}

// cacheFlushCmd invalidates cached verifications at the chosen scope.
var cacheFlushCmd = &cobra.Command{
	Use:   "flush [store] [invoiceRef]",
	Short: "Flush cached verification results",
	Long: `Flush cached verification results.

Examples:
  # Drop every cached result
  cache flush

  # Drop cached results for one store
  cache flush Houdemont

  # Drop cached results for one invoice reference within a store
  cache flush Houdemont F5162713`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCacheFlush,
}

// cacheSweepCmd purges expired entries immediately.
var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Purge expired cache entries now",
	RunE:  runCacheSweep,
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
	cacheCmd.AddCommand(cacheSweepCmd)
	RootCmd.AddCommand(cacheCmd)
}

func runCacheFlush(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	ctx := context.Background()

	switch len(args) {
	case 0:
		if err := rt.cache.InvalidateAll(ctx); err != nil {
			return fmt.Errorf("failed to flush cache: %w", err)
		}
		fmt.Println("cache flushed")
	case 1:
		if err := rt.cache.InvalidateStore(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to flush cache for store %q: %w", args[0], err)
		}
		fmt.Printf("cache flushed for store %s\n", args[0])
	case 2:
		if err := rt.cache.InvalidateInvoiceRef(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to flush cache for invoice %q in store %q: %w", args[1], args[0], err)
		}
		fmt.Printf("cache flushed for invoice %s in store %s\n", args[1], args[0])
	}
	return nil
}

func runCacheSweep(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	purged, err := rt.cache.PurgeExpired(context.Background())
	if err != nil {
		return fmt.Errorf("failed to sweep cache: %w", err)
	}

	fmt.Printf("purged %d expired entries\n", purged)
	return nil
}
