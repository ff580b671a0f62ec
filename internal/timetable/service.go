// Package timetable runs the add, update and remove workflows on top of a
// booking repository, rejecting any change that would introduce a conflict.
package timetable

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiermolinar/jadwal/internal/conflict"
	"github.com/javiermolinar/jadwal/internal/events"
	"github.com/javiermolinar/jadwal/internal/schedule"
	"github.com/javiermolinar/jadwal/internal/scheduler"
	"github.com/javiermolinar/jadwal/internal/summary"
)

// ErrConflict is returned when a change would double-book a room or lecturer.
var ErrConflict = errors.New("schedule conflict")

// MaxAlternatives is the number of free slots suggested for a rejected change.
const MaxAlternatives = 3

// System status values reported by Statistics.
const (
	StatusOK        = "OK"
	StatusConflicts = "CONFLICTS_DETECTED"
)

// Advisor produces extra resolution suggestions, keyed by conflict index.
type Advisor interface {
	Advise(ctx context.Context, conflicts []conflict.Conflict) (map[int][]string, error)
}

// Finding is a detected conflict with its resolution suggestions.
type Finding struct {
	Conflict conflict.Conflict
	// With is the ID of the other party when the finding belongs to a
	// rejected change, empty otherwise.
	With        string
	Suggestions []string
}

// Result describes the outcome of Add or Update.
type Result struct {
	Booking schedule.Booking
	// Previous is the replaced booking, set by a successful Update.
	Previous     *schedule.Booking
	Findings     []Finding
	Alternatives []scheduler.Slot
}

// Report is the conflict state of the whole timetable.
type Report struct {
	Summary  conflict.Summary
	Findings []Finding
}

// Conflicts returns the raw conflicts of the report.
func (r Report) Conflicts() []conflict.Conflict {
	out := make([]conflict.Conflict, len(r.Findings))
	for i, f := range r.Findings {
		out[i] = f.Conflict
	}
	return out
}

// Statistics summarizes the stored timetable.
type Statistics struct {
	TotalBookings int
	Summary       conflict.Summary
	Utilization   summary.Week
	SystemStatus  string
}

// Service coordinates the repository, conflict detection and notifications.
// Mutating workflows are serialized so that check and commit happen atomically.
type Service struct {
	mu       sync.Mutex
	repo     schedule.Repository
	events   *events.Dispatcher
	logger   *zap.Logger
	advisor  Advisor
	slots    *scheduler.Scheduler
	now      func() time.Time
	newLogID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithAdvisor adds LLM suggestions to reported conflicts.
func WithAdvisor(a Advisor) Option {
	return func(s *Service) { s.advisor = a }
}

// WithScheduler sets the teaching window used for alternatives and free slots.
func WithScheduler(sch *scheduler.Scheduler) Option {
	return func(s *Service) { s.slots = sch }
}

// WithClock overrides the clock used for audit log timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service. A nil dispatcher or logger is replaced by a no-op one.
func New(repo schedule.Repository, dispatcher *events.Dispatcher, logger *zap.Logger, opts ...Option) *Service {
	if dispatcher == nil {
		dispatcher = events.NewDispatcher()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		repo:     repo,
		events:   dispatcher,
		logger:   logger,
		now:      time.Now,
		newLogID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.slots == nil {
		s.slots = defaultScheduler()
	}
	return s
}

func defaultScheduler() *scheduler.Scheduler {
	sch, err := scheduler.New([]string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat"}, "07:00", "18:00")
	if err != nil {
		panic("invalid default teaching window: " + err.Error())
	}
	return sch
}

// Add stores b unless it conflicts with an existing booking.
// Returns ErrConflict together with the findings when it does.
func (s *Service) Add(ctx context.Context, b schedule.Booking) (Result, error) {
	if err := b.Validate(); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("listing bookings: %w", err)
	}
	if schedule.IndexOf(current, b.ID) >= 0 {
		return Result{}, fmt.Errorf("%w: %s", schedule.ErrDuplicateID, b.ID)
	}

	result := Result{Booking: b}
	candidate := append(current[:len(current):len(current)], b)
	if conflicts := conflict.ConflictsFor(conflict.Detect(candidate), b.ID); len(conflicts) > 0 {
		result.Findings = s.findings(ctx, conflicts, b.ID)
		result.Alternatives = s.slots.Alternatives(current, b, MaxAlternatives)

		s.appendLog(ctx, b.ID, schedule.LogRejected, result.Findings)
		s.events.Publish(events.Event{
			Kind:      events.KindConflictDetected,
			BookingID: b.ID,
			Fields: map[string]string{
				"conflict_count": fmt.Sprint(len(conflicts)),
				"course_name":    b.DisplayLabel(),
			},
		})
		s.logger.Info("booking rejected",
			zap.String("id", b.ID),
			zap.Int("conflicts", len(conflicts)),
		)
		return result, fmt.Errorf("%w: %d conflict(s) for %s", ErrConflict, len(conflicts), b.ID)
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Result{}, fmt.Errorf("creating booking: %w", err)
	}

	s.appendLog(ctx, b.ID, schedule.LogAdded, nil)
	s.events.Publish(events.Event{
		Kind:      events.KindAdded,
		BookingID: b.ID,
		Fields: map[string]string{
			"course_name": b.DisplayLabel(),
			"day":         b.Day,
			"time":        b.Range.String(),
			"room":        b.Room,
			"lecturer":    b.Lecturer,
		},
	})
	s.logger.Info("booking added", zap.String("id", b.ID), zap.String("day", b.Day))

	return result, nil
}

// Update replaces the booking with b.ID by b unless the replacement conflicts
// with any other booking. The old booking never conflicts with its replacement.
func (s *Service) Update(ctx context.Context, b schedule.Booking) (Result, error) {
	if err := b.Validate(); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("listing bookings: %w", err)
	}
	idx := schedule.IndexOf(current, b.ID)
	if idx < 0 {
		return Result{}, fmt.Errorf("%w: %s", schedule.ErrBookingNotFound, b.ID)
	}
	old := current[idx]

	remaining := make([]schedule.Booking, 0, len(current))
	remaining = append(remaining, current[:idx]...)
	remaining = append(remaining, current[idx+1:]...)

	result := Result{Booking: b}
	candidate := append(remaining[:len(remaining):len(remaining)], b)
	if conflicts := conflict.ConflictsFor(conflict.Detect(candidate), b.ID); len(conflicts) > 0 {
		result.Findings = s.findings(ctx, conflicts, b.ID)
		result.Alternatives = s.slots.Alternatives(remaining, b, MaxAlternatives)

		s.appendLog(ctx, b.ID, schedule.LogUpdateRejected, result.Findings)
		s.events.Publish(events.Event{
			Kind:      events.KindUpdateFailed,
			BookingID: b.ID,
			Fields: map[string]string{
				"reason":         "Conflicts detected",
				"conflict_count": fmt.Sprint(len(conflicts)),
			},
		})
		s.logger.Info("booking update rejected",
			zap.String("id", b.ID),
			zap.Int("conflicts", len(conflicts)),
		)
		return result, fmt.Errorf("%w: %d conflict(s) for %s", ErrConflict, len(conflicts), b.ID)
	}

	if err := s.repo.Replace(ctx, b); err != nil {
		return Result{}, fmt.Errorf("replacing booking: %w", err)
	}
	result.Previous = &old

	s.appendLog(ctx, b.ID, schedule.LogUpdated, nil)
	s.events.Publish(events.Event{
		Kind:      events.KindChanged,
		BookingID: b.ID,
		Fields: map[string]string{
			"course_name": b.DisplayLabel(),
			"old_day":     old.Day,
			"new_day":     b.Day,
			"old_time":    old.Range.String(),
			"new_time":    b.Range.String(),
			"old_room":    old.Room,
			"new_room":    b.Room,
			"lecturer":    b.Lecturer,
		},
	})
	s.logger.Info("booking updated", zap.String("id", b.ID))

	return result, nil
}

// Remove deletes the booking with the given id.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.appendLog(ctx, id, schedule.LogDeleted, nil)
	s.events.Publish(events.Event{Kind: events.KindRemoved, BookingID: id})
	s.logger.Info("booking removed", zap.String("id", id))
	return nil
}

// ImportResult lists what Import did with each booking.
type ImportResult struct {
	Added    []string
	Rejected map[string]error
}

// Import adds bookings one by one in order. Bookings that conflict or reuse an
// ID are recorded in Rejected; any other failure stops the import.
func (s *Service) Import(ctx context.Context, bookings []schedule.Booking) (ImportResult, error) {
	res := ImportResult{Rejected: make(map[string]error)}
	for _, b := range bookings {
		_, err := s.Add(ctx, b)
		switch {
		case err == nil:
			res.Added = append(res.Added, b.ID)
		case errors.Is(err, ErrConflict), errors.Is(err, schedule.ErrDuplicateID):
			res.Rejected[b.ID] = err
		default:
			return res, fmt.Errorf("importing %s: %w", b.ID, err)
		}
	}
	return res, nil
}

// List returns all bookings in insertion order.
func (s *Service) List(ctx context.Context) ([]schedule.Booking, error) {
	return s.repo.List(ctx)
}

// Get returns the booking with the given id.
func (s *Service) Get(ctx context.Context, id string) (schedule.Booking, error) {
	return s.repo.Get(ctx, id)
}

// Conflicts detects conflicts across the stored timetable.
func (s *Service) Conflicts(ctx context.Context) (Report, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("listing bookings: %w", err)
	}

	conflicts := conflict.Detect(bookings)
	return Report{
		Summary:  conflict.Summarize(conflicts),
		Findings: s.findings(ctx, conflicts, ""),
	}, nil
}

// Statistics returns totals and the overall system status.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return Statistics{}, fmt.Errorf("listing bookings: %w", err)
	}

	sum := conflict.Summarize(conflict.Detect(bookings))
	status := StatusOK
	if sum.HasConflicts() {
		status = StatusConflicts
	}
	return Statistics{
		TotalBookings: len(bookings),
		Summary:       sum,
		Utilization:   summary.Utilization(bookings),
		SystemStatus:  status,
	}, nil
}

// FreeSlots lists free slots on day for the given room and lecturer.
func (s *Service) FreeSlots(ctx context.Context, day, room, lecturer string, minutes int) ([]scheduler.Slot, error) {
	if !schedule.IsWeekday(day) {
		return nil, fmt.Errorf("%w: %q", schedule.ErrInvalidDay, day)
	}
	if minutes <= 0 || minutes > schedule.MinutesPerDay {
		return nil, fmt.Errorf("%w: duration must be between 1 and %d minutes", schedule.ErrInvalidRange, schedule.MinutesPerDay)
	}

	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return s.slots.FreeSlots(bookings, day, room, lecturer, minutes), nil
}

// Logs returns the audit log, oldest first.
func (s *Service) Logs(ctx context.Context) ([]schedule.LogEntry, error) {
	return s.repo.ListLogs(ctx)
}

// ClearLogs empties the audit log.
func (s *Service) ClearLogs(ctx context.Context) error {
	return s.repo.ClearLogs(ctx)
}

// findings attaches suggestions to conflicts. When focus is set, With names
// the party other than focus.
func (s *Service) findings(ctx context.Context, conflicts []conflict.Conflict, focus string) []Finding {
	out := make([]Finding, len(conflicts))
	for i, c := range conflicts {
		out[i] = Finding{Conflict: c, Suggestions: conflict.Hints(c)}
		if focus != "" {
			out[i].With = c.Other(focus).ID
		}
	}

	if s.advisor == nil || len(conflicts) == 0 {
		return out
	}
	extra, err := s.advisor.Advise(ctx, conflicts)
	if err != nil {
		s.logger.Warn("advisor failed, using built-in suggestions", zap.Error(err))
		return out
	}
	for i, hints := range extra {
		if i >= 0 && i < len(out) {
			out[i].Suggestions = append(out[i].Suggestions, hints...)
		}
	}
	return out
}

// appendLog records a workflow outcome. Failures are logged and not returned.
func (s *Service) appendLog(ctx context.Context, id string, status schedule.LogStatus, findings []Finding) {
	entry := schedule.LogEntry{
		ID:        s.newLogID(),
		Timestamp: s.now().UTC(),
		BookingID: id,
		Status:    status,
		Conflicts: make([]schedule.LoggedConflict, 0, len(findings)),
	}
	for _, f := range findings {
		entry.Conflicts = append(entry.Conflicts, schedule.LoggedConflict{
			Kind:        string(f.Conflict.Kind),
			WithBooking: f.With,
			Day:         f.Conflict.Detail.Day,
			Resource:    f.Conflict.Detail.Resource,
			Hints:       f.Suggestions,
		})
	}

	if err := s.repo.AppendLog(ctx, entry); err != nil {
		s.logger.Warn("appending audit log", zap.String("id", id), zap.Error(err))
	}
}
