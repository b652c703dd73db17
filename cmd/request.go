package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dcv-manager/core/pacing"
	"dcv-manager/core/sheet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	requestOutput string
	requestDelay  time.Duration
	requestLimit  int
)

// requestCmd creates a validation request per domain and records the DNS TXT
// challenge each one must publish.
var requestCmd = &cobra.Command{
	Use:   "request [input.xlsx]",
	Short: "Request validation challenges for domains",
	Long: `Create a validation request for every domain listed in the input
workbook and record its DNS TXT challenge (record name and token) in the
output workbook. Domains that already have a validation record fall back to
fetching the existing challenge; already-validated domains are marked as
such. One domain failing never stops the run.

Example:
  dcv-manager request domains.xlsx -o tokens.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runRequest,
}

func init() {
	requestCmd.Flags().StringVarP(&requestOutput, "output", "o", "tokens.xlsx", "Output workbook for DNS TXT challenges")
	requestCmd.Flags().DurationVar(&requestDelay, "delay", 500*time.Millisecond, "Pause between requests (0 disables pacing)")
	requestCmd.Flags().IntVar(&requestLimit, "limit", 0, "Process at most this many rows (0 = all)")

	RootCmd.AddCommand(requestCmd)
}

func runRequest(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	items, err := rt.loadItems(args[0], requestLimit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		rt.log.Warn("no domains found in input workbook", zap.String("input", args[0]))
		return nil
	}

	rt.log.Info("Requesting validation challenges", zap.Int("domains", len(items)))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pacer := pacing.NewFixed(requestDelay)

	rows := make([]sheet.TokenRow, 0, len(items))
	interrupted := false
	for i, item := range items {
		if ctx.Err() != nil {
			interrupted = true
			break
		}
		if i > 0 && pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				interrupted = true
				break
			}
		}

		ch := rt.api.CreateValidation(ctx, item)
		rows = append(rows, sheet.TokenRow{
			Domain: item.Domain,
			Name:   ch.Name,
			Token:  ch.Token,
		})
		rt.log.Info("challenge recorded",
			zap.String("domain", item.Domain),
			zap.String("name", ch.Name),
		)
	}

	if interrupted {
		rt.log.Warn("run interrupted, writing partial results",
			zap.Int("processed", len(rows)),
			zap.Int("total", len(items)),
		)
	}

	if err := sheet.WriteTokens(requestOutput, rows); err != nil {
		return fmt.Errorf("failed to write tokens workbook: %w", err)
	}
	rt.log.Info("challenges written",
		zap.String("output", requestOutput),
		zap.Int("rows", len(rows)),
	)

	rt.archiveResults(requestOutput)
	return nil
}
