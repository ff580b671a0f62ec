package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/jadwal/internal/schedule"
	"github.com/javiermolinar/jadwal/internal/tui/commands"
)

func testBookings(t *testing.T) []schedule.Booking {
	t.Helper()
	var out []schedule.Booking
	for _, f := range [][]string{
		{"SCH003", "Selasa", "08:00", "10:00", "Lab100", "Pak Budi"},
		{"SCH002", "Senin", "09:00", "11:00", "Lab301", "Ibu Siti"},
		{"SCH001", "Senin", "08:00", "10:00", "Lab301", "Dr.Ahmad"},
	} {
		b, err := schedule.ParseBooking(f[0], f[1], f[2], f[3], f[4], f[5], "Course "+f[0])
		if err != nil {
			t.Fatalf("creating booking: %v", err)
		}
		out = append(out, b)
	}
	return out
}

func sourceOf(bookings []schedule.Booking) commands.Source {
	return func(context.Context) ([]schedule.Booking, error) { return bookings, nil }
}

// loadedModel returns a model that has processed its initial load.
func loadedModel(t *testing.T, bookings []schedule.Booking, opts ...ModelOption) Model {
	t.Helper()
	m := New(sourceOf(bookings), "plain", opts...)
	updated, _ := m.Update(m.Init()())
	return updated.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(key(k))
		m = updated.(Model)
	}
	return m, cmd
}

func TestLoad_SortsAndMarksConflicts(t *testing.T) {
	m := loadedModel(t, testBookings(t))

	if m.loading {
		t.Fatal("model should not be loading after LoadedMsg")
	}
	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	wantIDs := []string{"SCH001", "SCH002", "SCH003"}
	wantMarkers := []string{"!", "!", ""}
	for i, row := range rows {
		if row[1] != wantIDs[i] {
			t.Errorf("row %d ID = %q, want %q", i, row[1], wantIDs[i])
		}
		if row[0] != wantMarkers[i] {
			t.Errorf("row %d marker = %q, want %q", i, row[0], wantMarkers[i])
		}
	}
	if len(m.conflicts) != 1 {
		t.Errorf("expected 1 conflict, got %d", len(m.conflicts))
	}
}

func TestSortedByDay_EnglishNames(t *testing.T) {
	a, _ := schedule.ParseBooking("A", "Tuesday", "08:00", "09:00", "R", "L", "")
	b, _ := schedule.ParseBooking("B", "Monday", "10:00", "11:00", "R", "L", "")
	c, _ := schedule.ParseBooking("C", "Senin", "09:00", "10:00", "R", "L", "")

	got := sortedByDay([]schedule.Booking{a, b, c})
	if got[0].ID != "C" || got[1].ID != "B" || got[2].ID != "A" {
		t.Errorf("unexpected order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestTabSwitchesFocus(t *testing.T) {
	m := loadedModel(t, testBookings(t))

	m, _ = press(t, m, "tab")
	if m.focus != PaneConflicts || m.table.Focused() {
		t.Errorf("after tab: focus = %v, table focused = %v", m.focus, m.table.Focused())
	}

	m, _ = press(t, m, "tab")
	if m.focus != PaneBookings || !m.table.Focused() {
		t.Errorf("after second tab: focus = %v, table focused = %v", m.focus, m.table.Focused())
	}
}

func TestNavigation(t *testing.T) {
	bookings := append(testBookings(t),
		mustParse(t, "SCH004", "Senin", "09:30", "10:30", "Lab200", "Dr.Ahmad"),
	)
	m := loadedModel(t, bookings)
	if len(m.conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(m.conflicts))
	}

	m, _ = press(t, m, "down")
	if m.table.Cursor() != 1 {
		t.Errorf("table cursor = %d, want 1", m.table.Cursor())
	}
	if m.cursor != 0 {
		t.Error("conflict cursor should not move while the table is focused")
	}

	m, _ = press(t, m, "tab", "down", "down", "down")
	if m.cursor != 1 {
		t.Errorf("conflict cursor = %d, want 1 (clamped)", m.cursor)
	}
	m, _ = press(t, m, "up", "up")
	if m.cursor != 0 {
		t.Errorf("conflict cursor = %d, want 0", m.cursor)
	}
}

func mustParse(t *testing.T, id, day, start, end, room, lecturer string) schedule.Booking {
	t.Helper()
	b, err := schedule.ParseBooking(id, day, start, end, room, lecturer, "")
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}
	return b
}

func TestCopyReport(t *testing.T) {
	var copied string
	m := loadedModel(t, testBookings(t), WithClipboard(func(s string) error {
		copied = s
		return nil
	}))

	m, cmd := press(t, m, "y")
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if !strings.Contains(copied, "CONFLICT DETECTION REPORT") {
		t.Errorf("unexpected clipboard content:\n%s", copied)
	}
	if m.statusMsg != "Copied conflict report" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestCopyReport_Failure(t *testing.T) {
	m := loadedModel(t, testBookings(t), WithClipboard(func(string) error {
		return errors.New("no clipboard")
	}))

	m, cmd := press(t, m, "y")
	updated, _ := m.Update(cmd())
	m = updated.(Model)
	if !strings.HasPrefix(m.statusMsg, "Copy failed") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestQuit(t *testing.T) {
	m := loadedModel(t, nil)

	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestReload(t *testing.T) {
	bookings := testBookings(t)[:1]
	m := loadedModel(t, bookings)

	m, cmd := press(t, m, "r")
	if !m.loading || cmd == nil {
		t.Fatal("r should start a reload")
	}
	updated, _ := m.Update(cmd())
	if got := updated.(Model); got.loading || len(got.bookings) != 1 {
		t.Errorf("unexpected state after reload: loading=%v bookings=%d", got.loading, len(got.bookings))
	}
}

func TestLoadError(t *testing.T) {
	m := New(func(context.Context) ([]schedule.Booking, error) {
		return nil, errors.New("file not found")
	}, "plain")
	updated, _ := m.Update(m.Init()())
	m = updated.(Model)

	if !strings.Contains(m.View(), "Error: file not found") {
		t.Errorf("view should show the error, got:\n%s", m.View())
	}
}

func TestView(t *testing.T) {
	m := loadedModel(t, testBookings(t))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 30})
	m = updated.(Model)

	out := ansi.Strip(m.View())
	for _, want := range []string{
		"jadwal 3 bookings · 1 conflicts",
		"Conflicts (1)",
		"> Room Lab301 Senin SCH002 <-> SCH001",
		"Course SCH001 (08:00-10:00)",
		"tab switch pane",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}

	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 140 {
			t.Errorf("line wider than terminal (%d): %q", w, line)
		}
	}
}

func TestView_NoConflicts(t *testing.T) {
	m := loadedModel(t, testBookings(t)[:1])

	out := ansi.Strip(m.View())
	if !strings.Contains(out, "No conflicts detected.") || !strings.Contains(out, "no conflicts") {
		t.Errorf("unexpected view:\n%s", out)
	}
}

func TestView_ThemeColors(t *testing.T) {
	prevProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
	})

	m := New(sourceOf(testBookings(t)), "dark")
	updated, _ := m.Update(m.Init()())
	out := updated.(Model).View()

	// Warning color #f38ba8 marks the conflict count.
	if !strings.Contains(out, "38;2;243;139;168") {
		t.Errorf("expected warning color in view: %q", out)
	}
}

func TestBookingColumns(t *testing.T) {
	tests := []struct {
		width      int
		wantCourse int
	}{
		{width: 82, wantCourse: 15},
		{width: 40, wantCourse: minCourseWidth},
	}

	for _, tc := range tests {
		cols := bookingColumns(tc.width)
		if got := cols[len(cols)-1].Width; got != tc.wantCourse {
			t.Errorf("bookingColumns(%d) course width = %d, want %d", tc.width, got, tc.wantCourse)
		}
	}
}
