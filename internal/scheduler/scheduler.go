// Package scheduler finds free teaching slots around existing bookings.
package scheduler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/javiermolinar/jadwal/internal/schedule"
)

// Step is the grid, in minutes, that suggested slots start on.
const Step = 15

// Scheduler knows the teaching window: which days are taught and between
// which hours.
type Scheduler struct {
	days     []string
	dayStart int // minutes since midnight
	dayEnd   int
}

// New creates a Scheduler for the given teaching days and "HH:MM" window.
func New(days []string, dayStart, dayEnd string) (*Scheduler, error) {
	start, err := schedule.ParseClock(dayStart)
	if err != nil {
		return nil, fmt.Errorf("day start: %w", err)
	}
	end, err := schedule.ParseClock(dayEnd)
	if err != nil {
		return nil, fmt.Errorf("day end: %w", err)
	}
	if start >= end {
		return nil, errors.New("day start must be before day end")
	}
	for _, d := range days {
		if !schedule.IsWeekday(d) {
			return nil, fmt.Errorf("%w: %q", schedule.ErrInvalidDay, d)
		}
	}

	ds := make([]string, len(days))
	copy(ds, days)
	return &Scheduler{days: ds, dayStart: start, dayEnd: end}, nil
}

// Slot is a free range on a given day.
type Slot struct {
	Day   string
	Range schedule.TimeRange
}

// String renders the slot as "Day HH:MM-HH:MM".
func (s Slot) String() string {
	return s.Day + " " + s.Range.String()
}

// Days returns the configured teaching days in order.
func (s *Scheduler) Days() []string {
	out := make([]string, len(s.days))
	copy(out, s.days)
	return out
}

// DayStart returns the window start as "HH:MM".
func (s *Scheduler) DayStart() string {
	return schedule.FormatClock(s.dayStart)
}

// DayEnd returns the window end as "HH:MM".
func (s *Scheduler) DayEnd() string {
	return schedule.FormatClock(s.dayEnd)
}

// IsTeachingDay returns true if day is one of the configured teaching days.
func (s *Scheduler) IsTeachingDay(day string) bool {
	for _, d := range s.days {
		if d == day {
			return true
		}
	}
	return false
}

// ValidateSlot checks that r on day lies inside the teaching window.
// Returns an error message if invalid, empty string if valid.
func (s *Scheduler) ValidateSlot(day string, r schedule.TimeRange) string {
	if !s.IsTeachingDay(day) {
		return "not a teaching day"
	}
	if r.Start() < s.dayStart {
		return "start time is before the teaching day starts"
	}
	if r.End() > s.dayEnd {
		return "end time is after the teaching day ends"
	}
	return ""
}

// FreeSlots returns non-overlapping slots of the given length on day during
// which neither room nor lecturer is booked. An empty room or lecturer is not
// checked. Slots start on the Step grid, earliest first.
func (s *Scheduler) FreeSlots(bookings []schedule.Booking, day, room, lecturer string, minutes int) []Slot {
	return s.freeSlots(bookings, day, room, lecturer, "", minutes, 0)
}

// Alternatives suggests up to limit slots where candidate could move without
// clashing on its room or lecturer. The candidate's own day is searched first,
// then the remaining teaching days in order. Bookings sharing the candidate's
// ID are ignored so an update can reuse its old slot. A limit <= 0 means no limit.
func (s *Scheduler) Alternatives(bookings []schedule.Booking, candidate schedule.Booking, limit int) []Slot {
	minutes := candidate.Range.Minutes()

	days := make([]string, 0, len(s.days)+1)
	days = append(days, candidate.Day)
	for _, d := range s.days {
		if d != candidate.Day {
			days = append(days, d)
		}
	}

	var out []Slot
	for _, day := range days {
		remaining := 0
		if limit > 0 {
			remaining = limit - len(out)
			if remaining <= 0 {
				break
			}
		}
		out = append(out, s.freeSlots(bookings, day, candidate.Room, candidate.Lecturer, candidate.ID, minutes, remaining)...)
	}
	return out
}

func (s *Scheduler) freeSlots(bookings []schedule.Booking, day, room, lecturer, skipID string, minutes, limit int) []Slot {
	if minutes <= 0 {
		return nil
	}

	busy := busyRanges(bookings, day, room, lecturer, skipID)

	var out []Slot
	cursor := s.dayStart
	for _, b := range append(busy, interval{start: s.dayEnd, end: s.dayEnd}) {
		gapEnd := min(b.start, s.dayEnd)
		for start := roundUp(cursor); start+minutes <= gapEnd; start = roundUp(start + minutes) {
			r, err := schedule.NewTimeRange(start, start+minutes)
			if err != nil {
				break
			}
			out = append(out, Slot{Day: day, Range: r})
			if limit > 0 && len(out) == limit {
				return out
			}
		}
		cursor = max(cursor, b.end)
	}
	return out
}

type interval struct {
	start, end int
}

// busyRanges returns the merged, sorted ranges on day that block room or lecturer.
func busyRanges(bookings []schedule.Booking, day, room, lecturer, skipID string) []interval {
	var busy []interval
	for _, b := range bookings {
		if b.Day != day || (skipID != "" && b.ID == skipID) {
			continue
		}
		if (room != "" && b.Room == room) || (lecturer != "" && b.Lecturer == lecturer) {
			busy = append(busy, interval{start: b.Range.Start(), end: b.Range.End()})
		}
	}

	sort.Slice(busy, func(i, j int) bool { return busy[i].start < busy[j].start })

	merged := busy[:0]
	for _, iv := range busy {
		if n := len(merged); n > 0 && iv.start <= merged[n-1].end {
			merged[n-1].end = max(merged[n-1].end, iv.end)
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// roundUp rounds minutes up to the next Step boundary.
func roundUp(m int) int {
	if r := m % Step; r != 0 {
		return m + Step - r
	}
	return m
}
