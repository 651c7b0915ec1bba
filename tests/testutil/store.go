package testutil

import (
	"testing"

	"github.com/aljonuschka/reservation-ingest/internal/store"
)

// NewReservationStore creates an in-memory SQLStore with all migrations
// applied. It automatically closes the store when the test completes.
func NewReservationStore(t *testing.T) *store.SQLStore {
	t.Helper()

	s, err := store.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
