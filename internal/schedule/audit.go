package schedule

import "time"

// LogStatus is the outcome recorded for a workflow in the audit log.
type LogStatus string

const (
	LogAdded          LogStatus = "ADDED"
	LogRejected       LogStatus = "REJECTED"
	LogUpdated        LogStatus = "UPDATED"
	LogUpdateRejected LogStatus = "UPDATE_REJECTED"
	LogDeleted        LogStatus = "DELETED"
)

// LoggedConflict is the audit-log view of a detected conflict.
type LoggedConflict struct {
	Kind        string   `json:"type"`
	WithBooking string   `json:"with_schedule"`
	Day         string   `json:"day"`
	Resource    string   `json:"resource"`
	Hints       []string `json:"suggestions,omitempty"`
}

// LogEntry records one add/update/delete attempt.
type LogEntry struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	BookingID string           `json:"schedule_id"`
	Status    LogStatus        `json:"status"`
	Conflicts []LoggedConflict `json:"conflicts"`
}
