package store

import (
	"context"
	"errors"

	"github.com/aljonuschka/reservation-ingest/internal/model"
)

// ErrDuplicate is returned by Insert when a reservation with the same
// external id is already persisted. Callers treat it as
// success-equivalent: the message is durable either way.
var ErrDuplicate = errors.New("reservation already persisted")

// ReservationStore is the persistence contract the ingestion pipeline
// depends on. The resumption cursor is the maximum stored external id,
// derived from the data table itself rather than a separate cursor
// record, so cursor state and data state can never disagree.
type ReservationStore interface {
	// Insert persists a reservation keyed by its external id, failing
	// with ErrDuplicate when that id already exists. Rows are never
	// updated or deleted by the pipeline.
	Insert(ctx context.Context, r model.Reservation) error

	// HighestPersistedID returns the maximum stored external id, or 0
	// when no reservations exist.
	HighestPersistedID(ctx context.Context) (int64, error)
}
