package schedule

import (
	"errors"
	"fmt"
)

// MinutesPerDay is the exclusive upper bound of a start time and the
// inclusive upper bound of an end time.
const MinutesPerDay = 24 * 60

// Time range errors.
var (
	ErrInvalidRange      = errors.New("invalid time range")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
)

// TimeRange is a half-open interval [start, end) of minutes since midnight.
type TimeRange struct {
	start int
	end   int
}

// NewTimeRange creates a range from minute values.
// start must be in [0, 1440) and end in (start, 1440].
func NewTimeRange(start, end int) (TimeRange, error) {
	if start < 0 || start >= MinutesPerDay {
		return TimeRange{}, fmt.Errorf("%w: start %d out of bounds", ErrInvalidRange, start)
	}
	if end <= 0 || end > MinutesPerDay {
		return TimeRange{}, fmt.Errorf("%w: end %d out of bounds", ErrInvalidRange, end)
	}
	if start >= end {
		return TimeRange{}, fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidRange, FormatClock(start), FormatClock(end))
	}
	return TimeRange{start: start, end: end}, nil
}

// ParseTimeRange creates a range from two "HH:MM" strings.
func ParseTimeRange(start, end string) (TimeRange, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeRange{}, fmt.Errorf("start time: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeRange{}, fmt.Errorf("end time: %w", err)
	}
	return NewTimeRange(s, e)
}

// MustTimeRange is like ParseTimeRange but panics on error.
// Intended for fixtures and tests.
func MustTimeRange(start, end string) TimeRange {
	r, err := ParseTimeRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Start returns the start in minutes since midnight.
func (r TimeRange) Start() int { return r.start }

// End returns the end in minutes since midnight.
func (r TimeRange) End() int { return r.end }

// IsZero reports whether r is the zero value (never a valid range).
func (r TimeRange) IsZero() bool { return r.start == 0 && r.end == 0 }

// Minutes returns the length of the range.
func (r TimeRange) Minutes() int { return r.end - r.start }

// StartClock returns the start as "HH:MM".
func (r TimeRange) StartClock() string { return FormatClock(r.start) }

// EndClock returns the end as "HH:MM".
func (r TimeRange) EndClock() string { return FormatClock(r.end) }

// String renders the range as "HH:MM-HH:MM".
func (r TimeRange) String() string {
	return r.StartClock() + "-" + r.EndClock()
}

// Overlaps reports whether r and other share at least one minute.
// Ranges that only touch at a boundary do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return Overlaps(r, other)
}

// OverlapMinutes returns how many minutes r and other share.
func (r TimeRange) OverlapMinutes(other TimeRange) int {
	lo := max(r.start, other.start)
	hi := min(r.end, other.end)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// Overlaps returns true if a.start < b.end AND b.start < a.end.
func Overlaps(a, b TimeRange) bool {
	return a.start < b.end && b.start < a.end
}

// ParseClock converts "HH:MM" to minutes since midnight.
// "24:00" is accepted and denotes the end of the day.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidTimeFormat, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w, got %q", ErrInvalidTimeFormat, s)
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	if mins > 59 || hours > 24 || (hours == 24 && mins != 0) {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidTimeFormat, s)
	}
	return hours*60 + mins, nil
}

// FormatClock converts minutes since midnight to "HH:MM".
// Values are clamped to [0, 1440].
func FormatClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m > MinutesPerDay {
		m = MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
