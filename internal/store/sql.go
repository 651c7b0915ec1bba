package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/aljonuschka/reservation-ingest/internal/model"
)

// SQLStore implements ReservationStore on top of sqlx. The daemon runs
// it against Postgres ("postgres" driver); tests run it against an
// in-memory SQLite database ("sqlite" driver). Queries use ?
// placeholders and are rebound per driver.
type SQLStore struct {
	db *sqlx.DB
}

// Open connects with the given driver and DSN, verifies connectivity,
// and applies any pending schema migrations.
func Open(driver, dsn string) (*SQLStore, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", driver, err)
	}

	// An in-memory SQLite database exists per connection, so the pool
	// must not exceed one.
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	s := &SQLStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLStore) runMigrations() error {
	if _, err := s.db.Exec(
		"CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)",
	); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var currentVersion int
	err := s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

const insertReservation = `
	INSERT INTO reservation_emails (
		id, first_name, last_name, phone, email,
		reservation_date, reservation_time, guests,
		special_requests, received_at, status
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Insert persists a reservation row. A primary-key collision on the
// external id surfaces as ErrDuplicate.
func (s *SQLStore) Insert(ctx context.Context, r model.Reservation) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(insertReservation),
		r.ExternalID, r.FirstName, r.LastName, r.Phone, r.Email,
		r.Date.Format("2006-01-02"), r.Time.Format("15:04:05"), r.Guests,
		r.SpecialRequests, r.ReceivedAt.UTC(), string(r.Status),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting reservation %d: %w", r.ExternalID, err)
	}

	return nil
}

// HighestPersistedID returns the maximum stored external id, 0 when the
// table is empty.
func (s *SQLStore) HighestPersistedID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, "SELECT COALESCE(MAX(id), 0) FROM reservation_emails")
	if err != nil {
		return 0, fmt.Errorf("reading highest persisted id: %w", err)
	}
	return id, nil
}

// Count returns the number of persisted reservations.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM reservation_emails")
	if err != nil {
		return 0, fmt.Errorf("counting reservations: %w", err)
	}
	return n, nil
}

// isDuplicateKey reports whether err is a primary-key violation from
// either supported driver.
func isDuplicateKey(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
