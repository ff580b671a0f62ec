// Package db provides booking storage implementations.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/jadwal/internal/schedule"
)

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ schedule.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// List returns all bookings in insertion order.
func (s *SQLite) List(ctx context.Context) ([]schedule.Booking, error) {
	query := `
		SELECT id, day, start_min, end_min, room, lecturer, label
		FROM bookings
		ORDER BY seq
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bookings []schedule.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}

	return bookings, nil
}

// Get retrieves a booking by ID.
func (s *SQLite) Get(ctx context.Context, id string) (schedule.Booking, error) {
	query := `
		SELECT id, day, start_min, end_min, room, lecturer, label
		FROM bookings
		WHERE id = ?
	`

	b, err := scanBooking(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.Booking{}, fmt.Errorf("%w: %s", schedule.ErrBookingNotFound, id)
	}
	return b, err
}

// Create stores a new booking.
// Returns schedule.ErrDuplicateID if a booking with the same ID exists.
func (s *SQLite) Create(ctx context.Context, b schedule.Booking) error {
	query := `
		INSERT INTO bookings (id, day, start_min, end_min, room, lecturer, label, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		b.ID,
		b.Day,
		b.Range.Start(),
		b.Range.End(),
		b.Room,
		b.Lecturer,
		b.Label,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", schedule.ErrDuplicateID, b.ID)
		}
		return fmt.Errorf("inserting booking: %w", err)
	}

	return nil
}

// Replace updates the booking with the same ID in place.
func (s *SQLite) Replace(ctx context.Context, b schedule.Booking) error {
	query := `
		UPDATE bookings
		SET day = ?, start_min = ?, end_min = ?, room = ?, lecturer = ?, label = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		b.Day, b.Range.Start(), b.Range.End(), b.Room, b.Lecturer, b.Label, b.ID)
	if err != nil {
		return fmt.Errorf("updating booking: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", schedule.ErrBookingNotFound, b.ID)
	}

	return nil
}

// Delete removes a booking by ID.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting booking: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", schedule.ErrBookingNotFound, id)
	}

	return nil
}

// AppendLog adds an entry to the audit log.
func (s *SQLite) AppendLog(ctx context.Context, e schedule.LogEntry) error {
	conflicts := e.Conflicts
	if conflicts == nil {
		conflicts = []schedule.LoggedConflict{}
	}
	data, err := json.Marshal(conflicts)
	if err != nil {
		return fmt.Errorf("encoding log conflicts: %w", err)
	}

	query := `
		INSERT INTO audit_log (id, booking_id, status, conflicts, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		e.ID,
		e.BookingID,
		string(e.Status),
		string(data),
		e.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting log entry: %w", err)
	}

	return nil
}

// ListLogs returns the audit log, oldest first.
func (s *SQLite) ListLogs(ctx context.Context) ([]schedule.LogEntry, error) {
	query := `
		SELECT id, booking_id, status, conflicts, created_at
		FROM audit_log
		ORDER BY seq
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []schedule.LogEntry
	for rows.Next() {
		var (
			e         schedule.LogEntry
			status    string
			conflicts string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.BookingID, &status, &conflicts, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning log entry: %w", err)
		}

		e.Status = schedule.LogStatus(status)
		e.Timestamp, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing log timestamp: %w", err)
		}
		if err := json.Unmarshal([]byte(conflicts), &e.Conflicts); err != nil {
			return nil, fmt.Errorf("decoding log conflicts: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit log: %w", err)
	}

	return entries, nil
}

// ClearLogs removes every audit log entry.
func (s *SQLite) ClearLogs(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM audit_log`); err != nil {
		return fmt.Errorf("clearing audit log: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (schedule.Booking, error) {
	var (
		id, day, room, lecturer, label string
		start, end                     int
	)

	if err := row.Scan(&id, &day, &start, &end, &room, &lecturer, &label); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schedule.Booking{}, err
		}
		return schedule.Booking{}, fmt.Errorf("scanning booking: %w", err)
	}

	r, err := schedule.NewTimeRange(start, end)
	if err != nil {
		return schedule.Booking{}, fmt.Errorf("booking %s: %w", id, err)
	}

	return schedule.Booking{
		ID:       id,
		Day:      day,
		Range:    r,
		Room:     room,
		Lecturer: lecturer,
		Label:    label,
	}, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
