package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aljonuschka/reservation-ingest/internal/mailbox"
	"github.com/aljonuschka/reservation-ingest/internal/parse"
	"github.com/aljonuschka/reservation-ingest/internal/store"
	"github.com/aljonuschka/reservation-ingest/pkg/logger"
)

// Session is the slice of a mailbox connection one ingestion run uses.
// SearchSubject must return UIDs newest first.
type Session interface {
	SearchSubject(ctx context.Context, subject string) ([]int64, error)
	Fetch(ctx context.Context, uid int64) (*mailbox.Message, error)
	Close() error
}

// Dialer opens a mailbox session. Each run dials exactly once and
// closes the session on every exit path.
type Dialer interface {
	Dial(ctx context.Context) (Session, error)
}

// DialerFunc adapts a dial function to the Dialer interface.
type DialerFunc func(ctx context.Context) (Session, error)

func (f DialerFunc) Dial(ctx context.Context) (Session, error) {
	return f(ctx)
}

// Stats summarizes one ingestion run.
type Stats struct {
	// Scanned counts candidate messages newer than the cursor.
	Scanned int

	// Inserted counts reservations durably persisted this run.
	Inserted int

	// Skipped counts messages passed over: validation failures (which
	// retry on the next run because the cursor never advances past
	// them), fetch failures, and already-persisted duplicates.
	Skipped int
}

// Ingestor performs one full mailbox scan per Run call: candidate
// messages matching the subject filter are walked newest first, built
// into reservations, and inserted keyed by their mailbox UID. The walk
// stops at the highest already-persisted UID, so the cursor advances
// only by virtue of durable inserts.
type Ingestor struct {
	dialer  Dialer
	store   store.ReservationStore
	builder *parse.Builder
	subject string

	// now is stubbed in tests for the received-at fallback.
	now func() time.Time
}

// New creates an Ingestor. subject is the literal subject filter for
// candidate messages.
func New(dialer Dialer, st store.ReservationStore, builder *parse.Builder, subject string) *Ingestor {
	return &Ingestor{
		dialer:  dialer,
		store:   st,
		builder: builder,
		subject: subject,
		now:     time.Now,
	}
}

// Run executes one scan to completion. Run-level failures (mailbox or
// storage unreachable) abort with an error and no state advanced;
// per-message failures are logged and skipped so the message is
// retried on a later run.
func (ing *Ingestor) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	cursor, err := ing.store.HighestPersistedID(ctx)
	if err != nil {
		return stats, fmt.Errorf("reading cursor: %w", err)
	}

	sess, err := ing.dialer.Dial(ctx)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logger.DebugContext(ctx, "closing mailbox session", "error", cerr)
		}
	}()

	uids, err := sess.SearchSubject(ctx, ing.subject)
	if err != nil {
		return stats, err
	}

	for _, uid := range uids {
		if uid <= cursor {
			// Mailbox UIDs increase with arrival order, so everything
			// from here on is already persisted.
			logger.DebugContext(ctx, "cursor reached, stopping scan", "uid", uid, "cursor", cursor)
			break
		}
		stats.Scanned++

		msg, err := sess.Fetch(ctx, uid)
		if err != nil {
			stats.Skipped++
			logger.ErrorContext(ctx, "fetching message", "uid", uid, "error", err)
			continue
		}

		r, err := ing.builder.Build(msg.Body)
		if err != nil {
			stats.Skipped++
			logger.WarnContext(ctx, "skipping unparsable message", "uid", uid, "error", err)
			continue
		}

		r.ExternalID = uid
		r.ReceivedAt = msg.Date
		if r.ReceivedAt.IsZero() {
			r.ReceivedAt = ing.now()
		}

		if err := ing.store.Insert(ctx, r); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				stats.Skipped++
				logger.DebugContext(ctx, "reservation already persisted", "uid", uid)
				continue
			}
			return stats, fmt.Errorf("persisting reservation %d: %w", uid, err)
		}
		stats.Inserted++

		logger.InfoContext(ctx, "reservation ingested",
			"uid", uid,
			"name", r.FirstName+" "+r.LastName,
			"date", r.DateString(),
			"time", r.TimeString(),
			"guests", r.Guests,
		)
	}

	return stats, nil
}
