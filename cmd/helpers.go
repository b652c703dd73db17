package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dcv-manager/core/config"
	"dcv-manager/core/logger"
	"dcv-manager/core/pacing"
	"dcv-manager/core/reconcile"
	"dcv-manager/core/session"
	"dcv-manager/core/sheet"
	"dcv-manager/core/storage"
	"dcv-manager/feature/dcv"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// runtime bundles what every subcommand needs after bootstrap: loaded
// configuration, a run-scoped logger, and a signed API client.
type runtime struct {
	cfg   *config.Config
	log   *zap.Logger
	runID string
	api   *dcv.Client
}

func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	runID := uuid.NewString()
	l = logger.WithRunID(l, runID)
	zap.ReplaceGlobals(l)

	httpClient, err := session.New(cfg.Edgerc)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API session: %w", err)
	}

	return &runtime{
		cfg:   cfg,
		log:   l,
		runID: runID,
		api:   dcv.NewClient(httpClient, l),
	}, nil
}

func (rt *runtime) close() {
	_ = rt.log.Sync()
}

// loadItems reads work items from a workbook and applies the optional row
// limit. limit <= 0 means no limit.
func (rt *runtime) loadItems(path string, limit int) ([]reconcile.Item, error) {
	items, err := sheet.ReadItems(path, rt.log)
	if err != nil {
		return nil, fmt.Errorf("failed to read input workbook: %w", err)
	}
	if limit > 0 && len(items) > limit {
		rt.log.Info("limiting input rows", zap.Int("limit", limit), zap.Int("total", len(items)))
		items = items[:limit]
	}
	return items, nil
}

// runReconciliation drives a bulk operation end to end: split, submit,
// settle, then write the ledger workbook. The workbook is written even when
// the run is interrupted, from whatever the driver settled so far.
func (rt *runtime) runReconciliation(ctx context.Context, submit reconcile.SubmitterFunc, items []reconcile.Item, batchSize int, delay time.Duration, output string) error {
	var pacer reconcile.Pacer
	if delay > 0 {
		pacer = pacing.NewFixed(delay)
	}

	driver, err := reconcile.NewDriver(reconcile.Config{
		Submitter:  submit,
		BatchSize:  batchSize,
		MaxRetries: rt.cfg.Batch.MaxRetries,
		Pacer:      pacer,
		Logger:     rt.log,
	})
	if err != nil {
		return err
	}

	results, runErr := driver.Run(ctx, items)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		rt.log.Warn("run interrupted, writing partial results",
			zap.Int("settled", len(results)),
			zap.Int("total", len(items)),
		)
	}

	if err := sheet.WriteResults(output, results); err != nil {
		return fmt.Errorf("failed to write results workbook: %w", err)
	}
	rt.log.Info("results written", zap.String("output", output))

	reportLedger(rt.log, results)
	rt.archiveResults(output)
	return nil
}

// reportLedger logs the per-outcome counts of a finished run.
func reportLedger(l *zap.Logger, results []reconcile.Result) {
	var success, invalid, failed int
	for _, r := range results {
		switch r.Outcome {
		case reconcile.OutcomeSuccess:
			success++
		case reconcile.OutcomeInvalid:
			invalid++
		case reconcile.OutcomeFailed:
			failed++
		}
	}
	l.Info("Run summary",
		zap.Int("total", len(results)),
		zap.Int("success", success),
		zap.Int("invalid", invalid),
		zap.Int("failed", failed),
	)
}

// archiveResults uploads the workbook to the archive sink when enabled.
// Upload failures are logged, never fatal: the local workbook is the
// primary record.
func (rt *runtime) archiveResults(path string) {
	if !rt.cfg.Archive.Enabled {
		return
	}

	client, err := storage.NewClient(rt.cfg.Archive)
	if err != nil {
		rt.log.Warn("failed to connect to archive storage", zap.Error(err))
		return
	}

	// Uploads run on their own context so an interrupted run still
	// archives its partial workbook.
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(rt.cfg.Archive.TimeoutSeconds)*time.Second)
	defer cancel()

	key, err := storage.Upload(ctx, client, rt.cfg.Archive, rt.runID, path)
	if err != nil {
		rt.log.Warn("failed to archive results workbook", zap.Error(err))
		return
	}
	rt.log.Info("results archived",
		zap.String("bucket", rt.cfg.Archive.Bucket),
		zap.String("key", key),
	)
}
