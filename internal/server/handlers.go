package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/javiermolinar/jadwal/internal/conflict"
	"github.com/javiermolinar/jadwal/internal/report"
	"github.com/javiermolinar/jadwal/internal/schedule"
	"github.com/javiermolinar/jadwal/internal/scheduler"
	"github.com/javiermolinar/jadwal/internal/summary"
	"github.com/javiermolinar/jadwal/internal/timetable"
)

// defaultDuration is the slot length used by /api/free when none is given.
const defaultDuration = 60

var errBadRequest = errors.New("invalid request")

type conflictJSON struct {
	Type         string          `json:"type"`
	Schedules    []string        `json:"schedules"`
	WithSchedule string          `json:"with_schedule,omitempty"`
	Details      conflict.Detail `json:"details"`
	Suggestions  []string        `json:"suggestions"`
}

type slotJSON struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type conflictsResponse struct {
	conflict.Summary
	Conflicts []conflictJSON `json:"conflicts"`
}

type statisticsResponse struct {
	TotalSchedules int `json:"total_schedules"`
	conflict.Summary
	Utilization  summary.Week `json:"utilization"`
	SystemStatus string       `json:"system_status"`
}

func toConflictJSON(findings []timetable.Finding) []conflictJSON {
	out := make([]conflictJSON, 0, len(findings))
	for _, f := range findings {
		suggestions := f.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		out = append(out, conflictJSON{
			Type:         string(f.Conflict.Kind),
			Schedules:    []string{f.Conflict.Parties[0].ID, f.Conflict.Parties[1].ID},
			WithSchedule: f.With,
			Details:      f.Conflict.Detail,
			Suggestions:  suggestions,
		})
	}
	return out
}

func toSlotJSON(slots []scheduler.Slot) []slotJSON {
	out := make([]slotJSON, 0, len(slots))
	for _, sl := range slots {
		out = append(out, slotJSON{Day: sl.Day, Start: sl.Range.StartClock(), End: sl.Range.EndClock()})
	}
	return out
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, schedule.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, timetable.ErrConflict), errors.Is(err, schedule.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, schedule.ErrMissingField),
		errors.Is(err, schedule.ErrInvalidRange),
		errors.Is(err, schedule.ErrInvalidTimeFormat),
		errors.Is(err, schedule.ErrInvalidDay):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(status, gin.H{"error": "Server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindBooking decodes a booking from the request body.
func bindBooking(c *gin.Context) (schedule.Booking, error) {
	var rec schedule.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		return schedule.Booking{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if id := c.Param("id"); id != "" {
		if rec.ID != "" && rec.ID != id {
			return schedule.Booking{}, fmt.Errorf("%w: id in body %q does not match path %q", errBadRequest, rec.ID, id)
		}
		rec.ID = id
	}
	return rec.Booking()
}

func (s *Server) listSchedules(c *gin.Context) {
	bookings, err := s.svc.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]schedule.Record, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, schedule.RecordOf(b))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) addSchedule(c *gin.Context) {
	b, err := bindBooking(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := s.svc.Add(c.Request.Context(), b)
	if errors.Is(err, timetable.ErrConflict) {
		s.conflictResponse(c, res)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Schedule added successfully",
		"schedule": schedule.RecordOf(res.Booking),
	})
}

func (s *Server) updateSchedule(c *gin.Context) {
	b, err := bindBooking(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := s.svc.Update(c.Request.Context(), b)
	if errors.Is(err, timetable.ErrConflict) {
		s.conflictResponse(c, res)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	body := gin.H{
		"message":  "Schedule updated successfully",
		"schedule": schedule.RecordOf(res.Booking),
	}
	if res.Previous != nil {
		body["previous"] = schedule.RecordOf(*res.Previous)
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) conflictResponse(c *gin.Context, res timetable.Result) {
	c.JSON(http.StatusConflict, gin.H{
		"error":        fmt.Sprintf("Conflict detected: %d conflicts found", len(res.Findings)),
		"conflicts":    toConflictJSON(res.Findings),
		"alternatives": toSlotJSON(res.Alternatives),
	})
}

func (s *Server) deleteSchedule(c *gin.Context) {
	err := s.svc.Remove(c.Request.Context(), c.Param("id"))
	if errors.Is(err, schedule.ErrBookingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}

func (s *Server) conflicts(c *gin.Context) {
	rep, err := s.svc.Conflicts(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, conflictsResponse{
		Summary:   rep.Summary,
		Conflicts: toConflictJSON(rep.Findings),
	})
}

func (s *Server) statistics(c *gin.Context) {
	st, err := s.svc.Statistics(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, statisticsResponse{
		TotalSchedules: st.TotalBookings,
		Summary:        st.Summary,
		Utilization:    st.Utilization,
		SystemStatus:   st.SystemStatus,
	})
}

func (s *Server) logs(c *gin.Context) {
	entries, err := s.svc.Logs(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if entries == nil {
		entries = []schedule.LogEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) clearLogs(c *gin.Context) {
	if err := s.svc.ClearLogs(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logs cleared"})
}

func (s *Server) report(c *gin.Context) {
	rep, err := s.svc.Conflicts(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.String(http.StatusOK, report.Format(rep.Conflicts()))
}

func (s *Server) freeSlots(c *gin.Context) {
	duration := defaultDuration
	if raw := c.Query("duration"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.fail(c, fmt.Errorf("%w: duration must be a number of minutes, got %q", errBadRequest, raw))
			return
		}
		duration = n
	}

	day := c.Query("day")
	slots, err := s.svc.FreeSlots(c.Request.Context(), day, c.Query("room"), c.Query("lecturer"), duration)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"day":      day,
		"duration": duration,
		"slots":    toSlotJSON(slots),
	})
}
