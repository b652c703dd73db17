package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dcv-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	validateAll       bool
	validateBatchSize int
	validateDelay     time.Duration
	validateOutput    string
	validateLimit     int
)

// validateCmd bulk-triggers validation for domains from a workbook, or for
// every pending domain of the account with --all.
var validateCmd = &cobra.Command{
	Use:   "validate [input.xlsx]",
	Short: "Bulk-trigger domain validations",
	Long: `Trigger validation for domains whose DNS TXT challenges are already
published. Domains come from the input workbook, or with --all from the
API's own listing of pending domains. Per-domain outcomes are written to
the output workbook.

Examples:
  # Validate the domains of a workbook
  dcv-manager validate domains.xlsx

  # Validate everything the account still has pending
  dcv-manager validate --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "Validate every pending domain of the account instead of reading a workbook")
	validateCmd.Flags().IntVar(&validateBatchSize, "batch-size", 50, "Domains per validate request")
	validateCmd.Flags().DurationVar(&validateDelay, "delay", time.Second, "Pause between batch requests (0 disables pacing)")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "validation_results.xlsx", "Output workbook for per-domain results")
	validateCmd.Flags().IntVar(&validateLimit, "limit", 0, "Process at most this many rows (0 = all)")

	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateAll == (len(args) == 1) {
		return fmt.Errorf("provide either an input workbook or --all")
	}

	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var items []reconcile.Item
	if validateAll {
		items, err = rt.api.FetchPending(ctx)
		if err != nil {
			return err
		}
		if validateLimit > 0 && len(items) > validateLimit {
			rt.log.Info("limiting pending domains", zap.Int("limit", validateLimit), zap.Int("total", len(items)))
			items = items[:validateLimit]
		}
	} else {
		items, err = rt.loadItems(args[0], validateLimit)
		if err != nil {
			return err
		}
	}
	if len(items) == 0 {
		rt.log.Warn("nothing to validate")
		return nil
	}

	rt.log.Info("Starting bulk validation",
		zap.Int("domains", len(items)),
		zap.Int("batch_size", validateBatchSize),
	)

	return rt.runReconciliation(ctx, rt.api.SubmitValidate, items, validateBatchSize, validateDelay, validateOutput)
}
