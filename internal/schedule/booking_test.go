package schedule

import (
	"errors"
	"testing"
)

func TestParseBooking(t *testing.T) {
	tests := []struct {
		name                                       string
		id, day, start, end, room, lecturer, label string
		wantErr                                    error
	}{
		{name: "valid", id: "SCH001", day: "Senin", start: "10:00", end: "12:00", room: "Lab301", lecturer: "Dr.Ahmad", label: "Algoritma"},
		{name: "english day", id: "A1", day: "Monday", start: "10:00", end: "12:00", room: "R1", lecturer: "L1"},
		{name: "missing id", id: " ", day: "Senin", start: "10:00", end: "12:00", room: "Lab301", lecturer: "Dr.Ahmad", wantErr: ErrMissingField},
		{name: "missing day", id: "X", day: "", start: "10:00", end: "12:00", room: "Lab301", lecturer: "Dr.Ahmad", wantErr: ErrMissingField},
		{name: "missing room", id: "X", day: "Senin", start: "10:00", end: "12:00", room: "", lecturer: "Dr.Ahmad", wantErr: ErrMissingField},
		{name: "missing lecturer", id: "X", day: "Senin", start: "10:00", end: "12:00", room: "Lab301", lecturer: "", wantErr: ErrMissingField},
		{name: "missing start", id: "X", day: "Senin", start: "", end: "12:00", room: "Lab301", lecturer: "Dr.Ahmad", wantErr: ErrMissingField},
		{name: "zero length", id: "X", day: "Senin", start: "12:00", end: "12:00", room: "Lab301", lecturer: "Dr.Ahmad", wantErr: ErrInvalidRange},
		{name: "bad time", id: "X", day: "Senin", start: "noon", end: "13:00", room: "Lab301", lecturer: "Dr.Ahmad", wantErr: ErrInvalidTimeFormat},
		{name: "lowercase day", id: "X", day: "senin", start: "10:00", end: "12:00", room: "Lab301", lecturer: "Dr.Ahmad", wantErr: ErrInvalidDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBooking(tt.id, tt.day, tt.start, tt.end, tt.room, tt.lecturer, tt.label)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.ID != tt.id || b.Day != tt.day {
				t.Errorf("got %+v", b)
			}
		})
	}
}

func TestBookingIdentity(t *testing.T) {
	a, _ := ParseBooking("SCH001", "Senin", "10:00", "12:00", "Lab301", "Dr.Ahmad", "")
	b, _ := ParseBooking("SCH001", "Selasa", "13:00", "14:00", "Lab202", "Ibu Siti", "Basis Data")
	c, _ := ParseBooking("SCH002", "Senin", "10:00", "12:00", "Lab301", "Dr.Ahmad", "")

	if !a.SameAs(b) {
		t.Error("bookings with the same id should be the same entity")
	}
	if a.SameAs(c) {
		t.Error("bookings with different ids should differ")
	}
	if a.DisplayLabel() != "Unknown" {
		t.Errorf("DisplayLabel() = %q, want Unknown", a.DisplayLabel())
	}
}

func TestCheckUnique(t *testing.T) {
	a, _ := ParseBooking("A", "Senin", "10:00", "12:00", "R", "L", "")
	b, _ := ParseBooking("B", "Senin", "10:00", "12:00", "R", "L", "")

	if err := CheckUnique([]Booking{a, b}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckUnique([]Booking{a, b, a}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("error = %v, want ErrDuplicateID", err)
	}
	if IndexOf([]Booking{a, b}, "B") != 1 {
		t.Error("IndexOf(B) should be 1")
	}
	if IndexOf([]Booking{a, b}, "C") != -1 {
		t.Error("IndexOf(C) should be -1")
	}
}
