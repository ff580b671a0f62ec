// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/jadwal/internal/conflict"
	"github.com/javiermolinar/jadwal/internal/report"
	"github.com/javiermolinar/jadwal/internal/schedule"
)

// Source supplies the bookings to browse.
type Source func(ctx context.Context) ([]schedule.Booking, error)

// FileSource reads bookings from a TOML or JSON booking file.
func FileSource(path string) Source {
	return func(context.Context) ([]schedule.Booking, error) {
		return schedule.LoadFile(path)
	}
}

// LoadedMsg is sent when bookings are loaded and checked.
type LoadedMsg struct {
	Bookings  []schedule.Booking
	Conflicts []conflict.Conflict
	Report    string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// Load reads bookings from source and runs conflict detection on them.
func Load(source Source) tea.Cmd {
	return func() tea.Msg {
		bookings, err := source(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}

		conflicts := conflict.Detect(bookings)
		return LoadedMsg{
			Bookings:  bookings,
			Conflicts: conflicts,
			Report:    report.Format(conflicts),
		}
	}
}

// Copy writes text with write and reports the outcome as a status message.
func Copy(text string, write func(string) error) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return StatusMsgCmd{Msg: fmt.Sprintf("Copy failed: %v", err)}
		}
		return StatusMsgCmd{Msg: "Copied conflict report"}
	}
}
