package schedule

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "9am", input: "09:00", want: 540},
		{name: "noon", input: "12:00", want: 720},
		{name: "with minutes", input: "09:30", want: 570},
		{name: "11:59pm", input: "23:59", want: 1439},
		{name: "end of day", input: "24:00", want: 1440},
		{name: "short", input: "9:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "minute 60", input: "09:60", wantErr: true},
		{name: "hour 25", input: "25:00", wantErr: true},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "wrong separator", input: "09.00", wantErr: true},
		{name: "letters", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeFormat) {
					t.Fatalf("ParseClock(%q) error = %v, want ErrInvalidTimeFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestClockRoundTrip(t *testing.T) {
	for m := 0; m <= MinutesPerDay; m++ {
		s := FormatClock(m)
		got, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(FormatClock(%d)=%q) error: %v", m, s, err)
		}
		if got != m {
			t.Fatalf("round trip %d -> %q -> %d", m, s, got)
		}
	}
}

func TestFormatClockClamps(t *testing.T) {
	if got := FormatClock(-10); got != "00:00" {
		t.Errorf("FormatClock(-10) = %q, want 00:00", got)
	}
	if got := FormatClock(1500); got != "24:00" {
		t.Errorf("FormatClock(1500) = %q, want 24:00", got)
	}
}

func TestNewTimeRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		wantErr    bool
	}{
		{name: "valid", start: 600, end: 720},
		{name: "one minute", start: 0, end: 1},
		{name: "whole day", start: 0, end: 1440},
		{name: "zero length", start: 600, end: 600, wantErr: true},
		{name: "reversed", start: 720, end: 600, wantErr: true},
		{name: "negative start", start: -1, end: 60, wantErr: true},
		{name: "start at end of day", start: 1440, end: 1441, wantErr: true},
		{name: "end past day", start: 600, end: 1441, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewTimeRange(tt.start, tt.end)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Fatalf("NewTimeRange(%d, %d) error = %v, want ErrInvalidRange", tt.start, tt.end, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Start() != tt.start || r.End() != tt.end {
				t.Errorf("got [%d, %d), want [%d, %d)", r.Start(), r.End(), tt.start, tt.end)
			}
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	r, err := ParseTimeRange("10:00", "12:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.String() != "10:00-12:00" {
		t.Errorf("String() = %q, want 10:00-12:00", r.String())
	}
	if r.Minutes() != 120 {
		t.Errorf("Minutes() = %d, want 120", r.Minutes())
	}

	if _, err := ParseTimeRange("12:00", "10:00"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed range error = %v, want ErrInvalidRange", err)
	}
	if _, err := ParseTimeRange("1200", "13:00"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("bad format error = %v, want ErrInvalidTimeFormat", err)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		a, b   TimeRange
		want   bool
		shared int
	}{
		{name: "touching is not overlap", a: MustTimeRange("10:00", "12:00"), b: MustTimeRange("12:00", "14:00"), want: false},
		{name: "disjoint", a: MustTimeRange("10:00", "12:00"), b: MustTimeRange("13:00", "15:00"), want: false},
		{name: "partial", a: MustTimeRange("10:00", "12:00"), b: MustTimeRange("11:00", "13:00"), want: true, shared: 60},
		{name: "contained", a: MustTimeRange("08:00", "18:00"), b: MustTimeRange("09:30", "10:00"), want: true, shared: 30},
		{name: "identical", a: MustTimeRange("08:00", "10:00"), b: MustTimeRange("08:00", "10:00"), want: true, shared: 120},
		{name: "one minute", a: MustTimeRange("08:00", "09:01"), b: MustTimeRange("09:00", "10:00"), want: true, shared: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %s, %s", tt.a, tt.b)
			}
			if got := tt.a.OverlapMinutes(tt.b); got != tt.shared {
				t.Errorf("OverlapMinutes = %d, want %d", got, tt.shared)
			}
		})
	}
}
