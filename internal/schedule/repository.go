package schedule

import "context"

// Repository defines the storage interface for bookings and the audit log.
type Repository interface {
	// List returns all bookings in insertion order.
	List(ctx context.Context) ([]Booking, error)

	// Get retrieves a booking by ID. Returns ErrBookingNotFound if missing.
	Get(ctx context.Context, id string) (Booking, error)

	// Create stores a new booking. Returns ErrDuplicateID if the ID is taken.
	Create(ctx context.Context, b Booking) error

	// Replace swaps the stored booking with the same ID, keeping its position.
	// Returns ErrBookingNotFound if no booking has that ID.
	Replace(ctx context.Context, b Booking) error

	// Delete removes a booking by ID. Returns ErrBookingNotFound if missing.
	Delete(ctx context.Context, id string) error

	// AppendLog adds an entry to the audit log.
	AppendLog(ctx context.Context, e LogEntry) error

	// ListLogs returns the audit log, oldest first.
	ListLogs(ctx context.Context) ([]LogEntry, error)

	// ClearLogs removes every audit log entry.
	ClearLogs(ctx context.Context) error

	// Close releases any resources held by the repository.
	Close() error
}
