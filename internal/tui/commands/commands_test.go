package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/jadwal/internal/schedule"
)

func booking(t *testing.T, id, start, end, room, lecturer string) schedule.Booking {
	t.Helper()
	b, err := schedule.ParseBooking(id, "Senin", start, end, room, lecturer, "")
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}
	return b
}

func TestLoad(t *testing.T) {
	bookings := []schedule.Booking{
		booking(t, "SCH001", "08:00", "10:00", "Lab301", "Dr.Ahmad"),
		booking(t, "SCH002", "09:00", "11:00", "Lab301", "Ibu Siti"),
	}
	source := func(context.Context) ([]schedule.Booking, error) { return bookings, nil }

	msg := Load(source)()
	loaded, ok := msg.(LoadedMsg)
	if !ok {
		t.Fatalf("expected LoadedMsg, got %T", msg)
	}
	if len(loaded.Bookings) != 2 || len(loaded.Conflicts) != 1 {
		t.Errorf("unexpected load: %d bookings, %d conflicts", len(loaded.Bookings), len(loaded.Conflicts))
	}
	if !strings.Contains(loaded.Report, "ROOM CONFLICTS (1)") {
		t.Errorf("unexpected report:\n%s", loaded.Report)
	}
}

func TestLoad_Error(t *testing.T) {
	source := func(context.Context) ([]schedule.Booking, error) { return nil, errors.New("boom") }

	msg := Load(source)()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("expected ErrMsg, got %T", msg)
	}
	if errMsg.Err.Error() != "boom" {
		t.Errorf("Err = %v", errMsg.Err)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.toml")
	content := `
[[booking]]
id = "SCH001"
day = "Senin"
start = "08:00"
end = "10:00"
room = "Lab301"
lecturer = "Dr.Ahmad"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	bookings, err := FileSource(path)(context.Background())
	if err != nil {
		t.Fatalf("FileSource failed: %v", err)
	}
	if len(bookings) != 1 || bookings[0].ID != "SCH001" {
		t.Errorf("unexpected bookings: %v", bookings)
	}
}

func TestCopy(t *testing.T) {
	var got string
	msg := Copy("report", func(s string) error { got = s; return nil })()
	if status, ok := msg.(StatusMsgCmd); !ok || status.Msg != "Copied conflict report" {
		t.Errorf("unexpected message: %#v", msg)
	}
	if got != "report" {
		t.Errorf("copied %q, want report", got)
	}

	msg = Copy("report", func(string) error { return errors.New("no clipboard") })()
	if status, ok := msg.(StatusMsgCmd); !ok || !strings.HasPrefix(status.Msg, "Copy failed") {
		t.Errorf("unexpected message: %#v", msg)
	}
}
