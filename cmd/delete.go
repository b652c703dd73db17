package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dcv-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	deleteBatchSize int
	deleteDelay     time.Duration
	deleteOutput    string
	deleteLimit     int
	deleteYes       bool
)

// deleteCmd bulk-deletes validation records for the domains of a workbook.
var deleteCmd = &cobra.Command{
	Use:   "delete [input.xlsx]",
	Short: "Bulk-delete validation records",
	Long: `Delete the validation records of every domain listed in the input
workbook. Domains are submitted in fixed-size batches; when the API rejects
a batch, the domains it names are recorded as invalid and the rest are
resubmitted once. Per-domain outcomes are written to the output workbook.

Examples:
  # Delete with interactive confirmation
  dcv-manager delete domains.xlsx

  # Non-interactive, smaller batches, slower pacing
  dcv-manager delete domains.xlsx --yes --batch-size 25 --delay 2s`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().IntVar(&deleteBatchSize, "batch-size", reconcile.DefaultBatchSize, "Domains per delete request")
	deleteCmd.Flags().DurationVar(&deleteDelay, "delay", time.Second, "Pause between batch requests (0 disables pacing)")
	deleteCmd.Flags().StringVarP(&deleteOutput, "output", "o", "delete_results.xlsx", "Output workbook for per-domain results")
	deleteCmd.Flags().IntVar(&deleteLimit, "limit", 0, "Process at most this many rows (0 = all)")
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "Auto-confirm deletion (non-interactive)")

	RootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	items, err := rt.loadItems(args[0], deleteLimit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		rt.log.Warn("no domains found in input workbook", zap.String("input", args[0]))
		return nil
	}

	rt.log.Info("Starting bulk delete",
		zap.Int("domains", len(items)),
		zap.Int("batch_size", deleteBatchSize),
	)

	if !confirmDeletion(len(items)) {
		rt.log.Info("Deletion not confirmed, aborting")
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rt.runReconciliation(ctx, rt.api.SubmitDelete, items, deleteBatchSize, deleteDelay, deleteOutput)
}

// confirmDeletion prompts the user for confirmation or uses the --yes flag.
func confirmDeletion(count int) bool {
	if deleteYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  About to delete validation records for %d domains. Type 'yes' to confirm: ", count)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
