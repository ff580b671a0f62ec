package report

import (
	"strings"
	"testing"

	"github.com/javiermolinar/jadwal/internal/conflict"
	"github.com/javiermolinar/jadwal/internal/schedule"
)

func booking(t *testing.T, id, day, start, end, room, lecturer, label string) schedule.Booking {
	t.Helper()
	b, err := schedule.ParseBooking(id, day, start, end, room, lecturer, label)
	if err != nil {
		t.Fatalf("creating booking %s: %v", id, err)
	}
	return b
}

func TestFormat_Empty(t *testing.T) {
	if got := Format(nil); got != NoConflicts {
		t.Errorf("Format(nil) = %q, want %q", got, NoConflicts)
	}
}

func TestFormat_GroupsAndSummary(t *testing.T) {
	bookings := []schedule.Booking{
		booking(t, "SCH007", "Kamis", "08:00", "10:00", "Lab301", "Dr.Ahmad", "Algoritma"),
		booking(t, "SCH008", "Kamis", "09:00", "11:00", "Lab301", "Ibu Siti", "Basis Data"),
		booking(t, "SCH009", "Kamis", "09:30", "11:30", "Lab202", "Dr.Ahmad", ""),
	}
	out := Format(conflict.Detect(bookings))

	wants := []string{
		"2 conflict(s) found",
		"ROOM CONFLICTS (1):",
		"1. Kamis - Room Lab301",
		"Schedule 1: Algoritma (08:00-10:00)",
		"Schedule 2: Basis Data (09:00-11:00)",
		"IDs: SCH007 <-> SCH008",
		"LECTURER CONFLICTS (1):",
		"1. Kamis - Lecturer Dr.Ahmad",
		"Schedule 2: Unknown in Lab202 (09:30-11:30)",
		"IDs: SCH007 <-> SCH009",
		"SUMMARY:",
		"Total Conflicts: 2",
		"Affected Rooms: Lab301",
		"Affected Lecturers: Dr.Ahmad",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}

	if strings.Index(out, "ROOM CONFLICTS") > strings.Index(out, "LECTURER CONFLICTS") {
		t.Error("room group should come before lecturer group")
	}
	if strings.Index(out, "LECTURER CONFLICTS") > strings.Index(out, "SUMMARY:") {
		t.Error("summary should be last")
	}
}

func TestFormatSummary_None(t *testing.T) {
	out := FormatSummary(conflict.Summarize(nil))
	if !strings.Contains(out, "Affected Rooms: None") || !strings.Contains(out, "Affected Lecturers: None") {
		t.Errorf("expected None placeholders, got:\n%s", out)
	}
}
