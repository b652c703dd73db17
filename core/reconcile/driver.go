package reconcile

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// DefaultBatchSize is the chunk size used when the config leaves it unset.
const DefaultBatchSize = 100

// DefaultMaxRetries is the number of resubmission cycles allowed per chunk
// lineage. One cycle bounds worst-case work at twice the initial batch count.
const DefaultMaxRetries = 1

// Pacer blocks until it is safe to send the next outbound request.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Config bundles the collaborators and tuning for a Driver.
type Config struct {
	// Submitter performs the bulk operation for one chunk.
	Submitter Submitter

	// BatchSize is the maximum chunk size. Zero means DefaultBatchSize;
	// a negative value is rejected.
	BatchSize int

	// MaxRetries is the resubmission budget per chunk lineage. Zero means
	// DefaultMaxRetries; a negative value disables resubmission entirely.
	MaxRetries int

	// Pacer optionally paces successive outbound requests. Nil disables
	// pacing.
	Pacer Pacer

	// Logger receives progress and anomaly logs. Nil means no logging.
	Logger *zap.Logger
}

// Driver runs the reconciliation loop. It owns the result ledger; every
// other component is a pure function of its inputs.
type Driver struct {
	submitter  Submitter
	batchSize  int
	maxRetries int
	pacer      Pacer
	log        *zap.Logger

	mu     sync.Mutex
	ledger []Result
}

// NewDriver validates the config and builds a Driver.
func NewDriver(cfg Config) (*Driver, error) {
	if cfg.Submitter == nil {
		return nil, fmt.Errorf("submitter is required")
	}
	if cfg.BatchSize < 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}

	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	} else if maxRetries < 0 {
		maxRetries = 0
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Driver{
		submitter:  cfg.Submitter,
		batchSize:  batchSize,
		maxRetries: maxRetries,
		pacer:      cfg.Pacer,
		log:        log,
	}, nil
}

// lineage is a queued chunk together with how many resubmission cycles its
// ancestry has already consumed.
type lineage struct {
	items   []Item
	attempt int
}

// Run reconciles every item to a terminal outcome and returns the completed
// ledger. Failures are captured as ledger data and never abort the run; the
// only errors returned are caller contract violations (detected before any
// request is sent) and context cancellation, in which case the ledger built
// so far is returned alongside the error.
func (d *Driver) Run(ctx context.Context, items []Item) ([]Result, error) {
	chunks, err := Split(items, d.batchSize)
	if err != nil {
		return nil, err
	}

	queue := make([]lineage, 0, len(chunks))
	for _, chunk := range chunks {
		queue = append(queue, lineage{items: chunk})
	}

	d.log.Info("starting reconciliation",
		zap.Int("items", len(items)),
		zap.Int("chunks", len(chunks)),
		zap.Int("batch_size", d.batchSize),
	)

	first := true
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			d.log.Warn("reconciliation cancelled", zap.Int("recorded", len(d.Snapshot())))
			return d.Snapshot(), err
		}

		current := queue[0]
		queue = queue[1:]

		if d.pacer != nil && !first {
			if err := d.pacer.Wait(ctx); err != nil {
				return d.Snapshot(), err
			}
		}
		first = false

		d.log.Debug("submitting chunk",
			zap.Int("size", len(current.items)),
			zap.Int("attempt", current.attempt),
		)
		queue = d.settle(current, d.submitter.Submit(ctx, current.items), queue)
	}

	return d.Snapshot(), nil
}

// settle records outcomes for one submitted chunk and returns the queue with
// any resubmission appended at the back.
func (d *Driver) settle(current lineage, res SubmitResult, queue []lineage) []lineage {
	switch res.Status {
	case AllAccepted:
		for _, item := range current.items {
			detail := res.Detail
			if override, ok := res.ItemDetail[item.Domain]; ok {
				detail = override
			}
			d.record(Result{
				Item:       item,
				Outcome:    OutcomeSuccess,
				StatusCode: res.StatusCode,
				Detail:     detail,
			})
		}

	case PartiallyRejected:
		resolution := Resolve(current.items, res.Faults)
		for _, orphan := range resolution.Orphans {
			d.log.Warn("fault cites a domain not present in the chunk",
				zap.String("domain", orphan.Domain),
				zap.String("title", orphan.Title),
			)
		}
		for _, inv := range resolution.Invalid {
			d.record(Result{
				Item:       inv.Item,
				Outcome:    OutcomeInvalid,
				StatusCode: res.StatusCode,
				Title:      inv.Fault.Title,
				Detail:     inv.Fault.Detail,
			})
		}
		if len(resolution.Retry) == 0 {
			break
		}
		if current.attempt >= d.maxRetries {
			d.log.Warn("retry budget exhausted",
				zap.Int("items", len(resolution.Retry)),
				zap.Int("attempt", current.attempt),
			)
			for _, item := range resolution.Retry {
				d.record(Result{
					Item:       item,
					Outcome:    OutcomeFailed,
					StatusCode: res.StatusCode,
					Detail:     ReasonRetryLimit,
				})
			}
			break
		}
		d.log.Info("resubmitting innocent bystanders",
			zap.Int("items", len(resolution.Retry)),
			zap.Int("attempt", current.attempt+1),
		)
		queue = append(queue, lineage{items: resolution.Retry, attempt: current.attempt + 1})

	case TransportFailure:
		d.log.Warn("chunk failed without a partitionable response",
			zap.Int("items", len(current.items)),
			zap.String("reason", res.Reason),
		)
		for _, item := range current.items {
			d.record(Result{
				Item:       item,
				Outcome:    OutcomeFailed,
				StatusCode: res.StatusCode,
				Detail:     res.Reason,
			})
		}
	}

	return queue
}

func (d *Driver) record(r Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ledger = append(d.ledger, r)
}

// Snapshot returns a copy of the ledger as recorded so far. It is safe to
// call from an interruption handler while Run is in flight; entries are only
// ever appended whole, so the copy is always consistent.
func (d *Driver) Snapshot() []Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Result, len(d.ledger))
	copy(out, d.ledger)
	return out
}
