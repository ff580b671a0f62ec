package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/javiermolinar/jadwal/internal/config"
	"github.com/javiermolinar/jadwal/internal/conflict"
	"github.com/javiermolinar/jadwal/internal/db"
	"github.com/javiermolinar/jadwal/internal/events"
	"github.com/javiermolinar/jadwal/internal/report"
	"github.com/javiermolinar/jadwal/internal/schedule"
	"github.com/javiermolinar/jadwal/internal/server"
	"github.com/javiermolinar/jadwal/internal/timetable"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) (*db.SQLite, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo, dbPath
}

// mustBooking parses a booking or fails the test.
func mustBooking(t *testing.T, id, day, start, end, room, lecturer, label string) schedule.Booking {
	t.Helper()
	b, err := schedule.ParseBooking(id, day, start, end, room, lecturer, label)
	if err != nil {
		t.Fatalf("failed to parse booking %s: %v", id, err)
	}
	return b
}

func TestWorkflow_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	repo, dbPath := openRepo(t)

	var (
		mu   sync.Mutex
		seen []events.Kind
	)
	dispatcher := events.NewDispatcher()
	dispatcher.Attach("recorder", events.ListenerFunc(func(e events.Event) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e.Kind)
	}))
	svc := timetable.New(repo, dispatcher, zap.NewNop())

	if _, err := svc.Add(ctx, mustBooking(t, "SCH001", "Senin", "08:00", "10:00", "Lab301", "Dr. Ahmad", "Algoritma")); err != nil {
		t.Fatalf("add SCH001: %v", err)
	}
	if _, err := svc.Add(ctx, mustBooking(t, "SCH002", "Senin", "10:00", "12:00", "Lab301", "Ibu Siti", "Basis Data")); err != nil {
		t.Fatalf("add touching SCH002: %v", err)
	}

	res, err := svc.Add(ctx, mustBooking(t, "SCH003", "Senin", "09:00", "11:00", "Lab100", "Dr. Ahmad", "Jaringan"))
	if !errors.Is(err, timetable.ErrConflict) {
		t.Fatalf("add SCH003: err = %v, want ErrConflict", err)
	}
	if len(res.Findings) != 1 || res.Findings[0].Conflict.Kind != conflict.KindLecturer || res.Findings[0].With != "SCH001" {
		t.Errorf("findings = %+v, want one lecturer conflict with SCH001", res.Findings)
	}

	if _, err := svc.Update(ctx, mustBooking(t, "SCH002", "Selasa", "10:00", "12:00", "Lab301", "Ibu Siti", "Basis Data")); err != nil {
		t.Fatalf("update SCH002: %v", err)
	}
	if err := svc.Remove(ctx, "SCH001"); err != nil {
		t.Fatalf("remove SCH001: %v", err)
	}

	mu.Lock()
	want := []events.Kind{events.KindAdded, events.KindAdded, events.KindConflictDetected, events.KindChanged, events.KindRemoved}
	if len(seen) != len(want) {
		t.Errorf("events = %v, want %v", seen, want)
	} else {
		for i := range want {
			if seen[i] != want[i] {
				t.Errorf("event %d = %s, want %s", i, seen[i], want[i])
			}
		}
	}
	mu.Unlock()

	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	reopened, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	svc = timetable.New(reopened, nil, nil)

	bookings, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bookings) != 1 || bookings[0].ID != "SCH002" || bookings[0].Day != "Selasa" {
		t.Errorf("bookings after reopen = %v, want SCH002 on Selasa", bookings)
	}

	logs, err := svc.Logs(ctx)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	wantStatus := []schedule.LogStatus{
		schedule.LogAdded, schedule.LogAdded, schedule.LogRejected, schedule.LogUpdated, schedule.LogDeleted,
	}
	if len(logs) != len(wantStatus) {
		t.Fatalf("got %d log entries, want %d", len(logs), len(wantStatus))
	}
	for i, s := range wantStatus {
		if logs[i].Status != s {
			t.Errorf("log %d status = %s, want %s", i, logs[i].Status, s)
		}
	}
	if got := logs[2].Conflicts; len(got) != 1 || got[0].WithBooking != "SCH001" || got[0].Resource != "Dr. Ahmad" {
		t.Errorf("rejection log conflicts = %+v", got)
	}
}

func TestConcurrentAdds_OnlyOneWins(t *testing.T) {
	ctx := context.Background()
	repo, _ := openRepo(t)
	svc := timetable.New(repo, nil, nil)

	const n = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < n; i++ {
		id := "SCH10" + string(rune('0'+i))
		b := mustBooking(t, id, "Rabu", "08:00", "10:00", "Lab301", "Lecturer "+id, "")
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add(ctx, b)
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			} else if !errors.Is(err, timetable.ErrConflict) {
				t.Errorf("add %s: %v", b.ID, err)
			}
		}()
	}
	wg.Wait()

	if accepted != 1 {
		t.Errorf("accepted %d bookings for the same room and slot, want 1", accepted)
	}
	rep, err := svc.Conflicts(ctx)
	if err != nil {
		t.Fatalf("conflicts: %v", err)
	}
	if rep.Summary.HasConflicts() {
		t.Errorf("stored timetable has conflicts: %+v", rep.Summary)
	}
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedules.json")
	content := `{"bookings": [
		{"id": "SCH001", "day": "Senin", "start": "08:00", "end": "10:00", "room": "Lab301", "lecturer": "Dr. Ahmad", "course_name": "Algoritma"},
		{"id": "SCH002", "day": "Senin", "start": "09:00", "end": "11:00", "room": "Lab301", "lecturer": "Dr. Ahmad", "course_name": "Basis Data"},
		{"id": "SCH003", "day": "Senin", "start": "11:00", "end": "12:00", "room": "Lab301", "lecturer": "Dr. Ahmad", "course_name": "Jaringan"}
	]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	bookings, err := schedule.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	conflicts := conflict.Detect(bookings)
	if len(conflicts) != 2 {
		t.Fatalf("got %d conflicts, want room and lecturer for SCH001/SCH002", len(conflicts))
	}

	out := report.Format(conflicts)
	for _, want := range []string{
		"CONFLICT DETECTION REPORT - 2 conflict(s) found",
		"Room Conflicts: 1",
		"Lecturer Conflicts: 1",
		"Schedule 1: Algoritma in Lab301 (08:00-10:00)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "SCH003") {
		t.Errorf("touching booking SCH003 reported:\n%s", out)
	}
}

func TestHTTP_SQLite(t *testing.T) {
	repo, _ := openRepo(t)
	svc := timetable.New(repo, nil, zap.NewNop())
	h := server.New(svc, config.ServerConfig{Addr: ":0"}, zap.NewNop()).Handler()

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/schedules", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	w := post(`{"id":"SCH001","day":"Kamis","start":"13:00","end":"15:00","room":"R201","lecturer":"Pak Budi","course_name":"Statistika"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("first add: status %d, body %s", w.Code, w.Body)
	}

	w = post(`{"id":"SCH002","day":"Kamis","start":"14:00","end":"16:00","room":"R202","lecturer":"Pak Budi"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("conflicting add: status %d, body %s", w.Code, w.Body)
	}
	var rejected struct {
		Error     string `json:"error"`
		Conflicts []struct {
			Type         string `json:"type"`
			WithSchedule string `json:"with_schedule"`
		} `json:"conflicts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rejected); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rejected.Conflicts) != 1 || rejected.Conflicts[0].Type != string(conflict.KindLecturer) || rejected.Conflicts[0].WithSchedule != "SCH001" {
		t.Errorf("rejection = %+v", rejected)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var list []schedule.Record
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v (%s)", err, w.Body)
	}
	if len(list) != 1 || list[0].ID != "SCH001" || list[0].CourseName != "Statistika" {
		t.Errorf("list = %+v, want only SCH001", list)
	}
}
