// Package deliver groups filtered records into batches and submits them to
// the transport, collecting per-item outcomes.
package deliver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/seanstash/seanstash-cli/internal/filter"
	"github.com/seanstash/seanstash-cli/internal/transport"
)

// Transport submits a single record to the remote endpoint. A
// *transport.RejectedError is a soft per-item failure; any other error is a
// transport-level failure that aborts the run.
type Transport interface {
	Send(ctx context.Context, record filter.Record) error
}

// ItemFailure records one rejected item for the outcome report.
type ItemFailure struct {
	Record filter.Record
	Err    error
}

// Outcome summarizes a delivery run. Failures are recorded for observability
// only; they do not roll back other items.
type Outcome struct {
	Attempted int
	Succeeded int
	Failures  []ItemFailure
}

// Batcher submits records to a transport in fixed-size batches, one item at
// a time, in sequence order.
type Batcher struct {
	batchSize int
	dryRun    bool
	logger    *zap.Logger

	// Progress, when set, is called after each item attempt with the error
	// that item produced (nil on success). CLI output hangs off this.
	Progress func(record filter.Record, err error)
}

// NewBatcher creates a Batcher. A non-positive batchSize falls back to 1.
// In dry-run mode no transport calls are made and every item is reported as
// succeeded.
func NewBatcher(batchSize int, dryRun bool, logger *zap.Logger) *Batcher {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Batcher{
		batchSize: batchSize,
		dryRun:    dryRun,
		logger:    logger,
	}
}

// Deliver submits all records and reports the outcome. A transport-level
// error aborts the whole run and is returned along with the partial outcome;
// per-item rejections are recorded and do not stop remaining items.
func (b *Batcher) Deliver(ctx context.Context, records []filter.Record, t Transport) (Outcome, error) {
	outcome := Outcome{}

	for start := 0; start < len(records); start += b.batchSize {
		end := min(start+b.batchSize, len(records))
		batch := records[start:end]

		if b.dryRun {
			b.logger.Info("dry run, skipping delivery", zap.Int("batch_size", len(batch)))
			for _, record := range batch {
				outcome.Attempted++
				outcome.Succeeded++
				b.report(record, nil)
			}
			continue
		}

		for _, record := range batch {
			outcome.Attempted++
			err := t.Send(ctx, record)
			if err == nil {
				outcome.Succeeded++
				b.report(record, nil)
				continue
			}

			var rejected *transport.RejectedError
			if errors.As(err, &rejected) {
				outcome.Failures = append(outcome.Failures, ItemFailure{Record: record, Err: err})
				b.logger.Warn("snippet rejected",
					zap.Int("status", rejected.Status),
					zap.String("hash", record.Hash))
				b.report(record, err)
				continue
			}

			// Connection-level failure: abort the run.
			b.logger.Error("delivery failed", zap.Error(err))
			return outcome, fmt.Errorf("error sending batch: %w", err)
		}
	}

	return outcome, nil
}

func (b *Batcher) report(record filter.Record, err error) {
	if b.Progress != nil {
		b.Progress(record, err)
	}
}
