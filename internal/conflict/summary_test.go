package conflict

import (
	"reflect"
	"strings"
	"testing"

	"github.com/javiermolinar/jadwal/internal/schedule"
)

func TestSummarize(t *testing.T) {
	bookings := []schedule.Booking{
		mustBooking(t, "A", "Senin", "08:00", "10:00", "Lab301", "Dr.Ahmad"),
		mustBooking(t, "B", "Senin", "09:00", "11:00", "Lab301", "Dr.Ahmad"),
		mustBooking(t, "C", "Senin", "09:30", "10:30", "Lab301", "Ibu Siti"),
		mustBooking(t, "D", "Selasa", "09:00", "10:00", "Lab202", "Ibu Siti"),
		mustBooking(t, "E", "Selasa", "09:30", "10:30", "Lab100", "Ibu Siti"),
	}

	got := Summarize(Detect(bookings))
	want := Summary{
		Total:             5,
		RoomConflicts:     3,
		LecturerConflicts: 2,
		AffectedRooms:     []string{"Lab301"},
		AffectedLecturers: []string{"Dr.Ahmad", "Ibu Siti"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
	if !got.HasConflicts() {
		t.Error("HasConflicts() should be true")
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	if got.Total != 0 || got.HasConflicts() {
		t.Errorf("unexpected summary %+v", got)
	}
	if got.AffectedRooms == nil || got.AffectedLecturers == nil {
		t.Error("affected lists should be empty, not nil")
	}
}

func TestHints(t *testing.T) {
	bookings := []schedule.Booking{
		mustBooking(t, "A", "Senin", "08:00", "10:00", "Lab301", "Dr.Ahmad"),
		mustBooking(t, "B", "Senin", "09:00", "11:00", "Lab301", "Dr.Ahmad"),
	}
	conflicts := Detect(bookings)
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(conflicts))
	}

	for _, c := range conflicts {
		hints := Hints(c)
		if len(hints) != 5 {
			t.Errorf("%s: got %d hints, want 5", c.Kind, len(hints))
		}
		joined := strings.Join(hints, "\n")
		if !strings.Contains(joined, "Course A") {
			t.Errorf("%s hints should mention the course, got %q", c.Kind, joined)
		}
	}
	if !strings.Contains(strings.Join(Hints(conflicts[0]), " "), "Lab301") {
		t.Error("room hints should mention the room")
	}
	if Hints(Conflict{Kind: "other"}) != nil {
		t.Error("unknown kind should have no hints")
	}
}
