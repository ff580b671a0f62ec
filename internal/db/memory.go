package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/javiermolinar/jadwal/internal/schedule"
)

// Memory implements schedule.Repository in process memory.
// Reads return copies, so callers always work on a consistent snapshot.
type Memory struct {
	mu       sync.RWMutex
	bookings []schedule.Booking
	logs     []schedule.LogEntry
}

var _ schedule.Repository = (*Memory)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{}
}

// List returns a copy of all bookings in insertion order.
func (m *Memory) List(_ context.Context) ([]schedule.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]schedule.Booking, len(m.bookings))
	copy(out, m.bookings)
	return out, nil
}

// Get retrieves a booking by ID.
func (m *Memory) Get(_ context.Context, id string) (schedule.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := schedule.IndexOf(m.bookings, id); i >= 0 {
		return m.bookings[i], nil
	}
	return schedule.Booking{}, fmt.Errorf("%w: %s", schedule.ErrBookingNotFound, id)
}

// Create stores a new booking.
func (m *Memory) Create(_ context.Context, b schedule.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if schedule.IndexOf(m.bookings, b.ID) >= 0 {
		return fmt.Errorf("%w: %s", schedule.ErrDuplicateID, b.ID)
	}
	m.bookings = append(m.bookings, b)
	return nil
}

// Replace swaps the booking with the same ID, keeping its position.
func (m *Memory) Replace(_ context.Context, b schedule.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := schedule.IndexOf(m.bookings, b.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", schedule.ErrBookingNotFound, b.ID)
	}
	m.bookings[i] = b
	return nil
}

// Delete removes a booking by ID.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := schedule.IndexOf(m.bookings, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", schedule.ErrBookingNotFound, id)
	}
	m.bookings = append(m.bookings[:i:i], m.bookings[i+1:]...)
	return nil
}

// AppendLog adds an entry to the audit log.
func (m *Memory) AppendLog(_ context.Context, e schedule.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logs = append(m.logs, e)
	return nil
}

// ListLogs returns a copy of the audit log.
func (m *Memory) ListLogs(_ context.Context) ([]schedule.LogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]schedule.LogEntry, len(m.logs))
	copy(out, m.logs)
	return out, nil
}

// ClearLogs removes every audit log entry.
func (m *Memory) ClearLogs(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logs = nil
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
