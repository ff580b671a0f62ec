// Package dateutil resolves calendar input to timetable day names.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/jadwal/internal/schedule"
)

// ErrInvalidDay is returned for input that names no day.
var ErrInvalidDay = errors.New("day must be a weekday name, today, tomorrow or YYYY-MM-DD")

// Lang selects the day-name vocabulary.
type Lang string

const (
	Indonesian Lang = "id"
	English    Lang = "en"
)

// dayNames maps time.Weekday (Sunday = 0) to display names per language.
var dayNames = map[Lang][7]string{
	Indonesian: {"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"},
	English:    {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
}

// DayName returns the name of weekday in lang. Unknown languages fall back
// to Indonesian.
func DayName(weekday time.Weekday, lang Lang) string {
	names, ok := dayNames[lang]
	if !ok {
		names = dayNames[Indonesian]
	}
	return names[weekday]
}

// ResolveDay turns user input into a day name.
//
// Supported inputs:
//   - "" or "today": the weekday of now
//   - "tomorrow": the weekday after now
//   - "YYYY-MM-DD": the weekday of that date
//   - an accepted weekday name, returned unchanged
//
// Relative and dated input is case-insensitive; weekday names are not.
func ResolveDay(s string, now time.Time, lang Lang) (string, error) {
	input := strings.TrimSpace(s)
	if schedule.IsWeekday(input) {
		return input, nil
	}

	switch strings.ToLower(input) {
	case "", "today":
		return DayName(now.Weekday(), lang), nil
	case "tomorrow":
		return DayName(now.AddDate(0, 0, 1).Weekday(), lang), nil
	}

	date, err := time.Parse("2006-01-02", input)
	if err != nil {
		return "", fmt.Errorf("%w, got %q", ErrInvalidDay, s)
	}
	return DayName(date.Weekday(), lang), nil
}
