package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aljonuschka/reservation-ingest/pkg/logger"
)

// Poller runs ingestion on a fixed interval until its context is
// canceled. Runs execute on a single goroutine, so one scan always
// completes (or fails) before the next begins and the mailbox is never
// accessed concurrently.
type Poller struct {
	ingestor *Ingestor
	interval time.Duration
}

// NewPoller creates a Poller around ing. interval must be positive.
func NewPoller(ing *Ingestor, interval time.Duration) *Poller {
	return &Poller{ingestor: ing, interval: interval}
}

// Run performs an immediate scan, then one per interval. A failed run
// is logged and retried on the next tick; it never stops the loop.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

// runOnce executes a single ingestion run tagged with a fresh run id.
func (p *Poller) runOnce(ctx context.Context) {
	ctx = logger.WithRunID(ctx, uuid.New().String())
	start := time.Now()

	stats, err := p.ingestor.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion run failed", "error", err, "elapsed", time.Since(start).String())
		return
	}

	logger.InfoContext(ctx, "ingestion run complete",
		"scanned", stats.Scanned,
		"inserted", stats.Inserted,
		"skipped", stats.Skipped,
		"elapsed", time.Since(start).String(),
	)
}
