// Package schedule defines the booking domain types for jadwal.
package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidDay   = errors.New("day must be a weekday name")
)

// Store errors.
var (
	ErrDuplicateID     = errors.New("booking id already exists")
	ErrBookingNotFound = errors.New("booking not found")
)

// Weekday names accepted as Booking.Day. Matching is case-sensitive and the
// two languages are not folded together: "Senin" and "Monday" are different days.
var weekdays = []string{
	"Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu", "Minggu",
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Weekdays returns the accepted day names.
func Weekdays() []string {
	out := make([]string, len(weekdays))
	copy(out, weekdays)
	return out
}

// IsWeekday reports whether day is an accepted day name.
func IsWeekday(day string) bool {
	for _, d := range weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Booking is one scheduled occupation of a room by a lecturer.
// Bookings are values: an update replaces a booking with another of the same ID.
type Booking struct {
	ID       string
	Day      string
	Range    TimeRange
	Room     string
	Lecturer string
	Label    string // optional course name
}

// NewBooking creates a validated Booking.
func NewBooking(id, day string, r TimeRange, room, lecturer, label string) (Booking, error) {
	b := Booking{
		ID:       strings.TrimSpace(id),
		Day:      strings.TrimSpace(day),
		Range:    r,
		Room:     strings.TrimSpace(room),
		Lecturer: strings.TrimSpace(lecturer),
		Label:    strings.TrimSpace(label),
	}
	if err := b.Validate(); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// ParseBooking creates a Booking from textual fields with "HH:MM" times.
func ParseBooking(id, day, start, end, room, lecturer, label string) (Booking, error) {
	if strings.TrimSpace(start) == "" {
		return Booking{}, fmt.Errorf("%w: start", ErrMissingField)
	}
	if strings.TrimSpace(end) == "" {
		return Booking{}, fmt.Errorf("%w: end", ErrMissingField)
	}
	r, err := ParseTimeRange(start, end)
	if err != nil {
		return Booking{}, err
	}
	return NewBooking(id, day, r, room, lecturer, label)
}

// Validate checks required fields and the day name.
func (b Booking) Validate() error {
	switch {
	case b.ID == "":
		return fmt.Errorf("%w: id", ErrMissingField)
	case b.Day == "":
		return fmt.Errorf("%w: day", ErrMissingField)
	case b.Range.IsZero():
		return fmt.Errorf("%w: range", ErrMissingField)
	case b.Room == "":
		return fmt.Errorf("%w: room", ErrMissingField)
	case b.Lecturer == "":
		return fmt.Errorf("%w: lecturer", ErrMissingField)
	}
	if !IsWeekday(b.Day) {
		return fmt.Errorf("%w, got %q", ErrInvalidDay, b.Day)
	}
	return nil
}

// SameAs reports whether b and other are the same entity. Identity is by ID alone.
func (b Booking) SameAs(other Booking) bool {
	return b.ID == other.ID
}

// DisplayLabel returns the label or "Unknown" when none was given.
func (b Booking) DisplayLabel() string {
	if b.Label == "" {
		return "Unknown"
	}
	return b.Label
}

// String renders a one-line description of the booking.
func (b Booking) String() string {
	return fmt.Sprintf("%s %s %s %s %s (%s)", b.ID, b.Day, b.Range, b.Room, b.Lecturer, b.DisplayLabel())
}

// IndexOf returns the position of the booking with the given id, or -1.
func IndexOf(bookings []Booking, id string) int {
	for i, b := range bookings {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// CheckUnique returns ErrDuplicateID for the first id that appears twice.
func CheckUnique(bookings []Booking) error {
	seen := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}
