package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/jadwal/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color

	TitleStyle       lipgloss.Style
	PaneStyle        lipgloss.Style
	FocusedPaneStyle lipgloss.Style
	SelectedStyle    lipgloss.Style
	RoomStyle        lipgloss.Style
	LecturerStyle    lipgloss.Style
	MutedStyle       lipgloss.Style
	WarningStyle     lipgloss.Style
	OKStyle          lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{
		colorBgSelection: theme.Color(t.BgSelection),
		colorFg:          theme.Color(t.Fg),
		colorFgMuted:     theme.Color(t.FgMuted),
		colorAccent:      theme.Color(t.Accent),
	}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorAccent)
	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorFgMuted)
	s.FocusedPaneStyle = s.PaneStyle.BorderForeground(s.colorAccent)
	s.SelectedStyle = lipgloss.NewStyle().Bold(true).
		Foreground(s.colorFg).
		Background(s.colorBgSelection)
	s.RoomStyle = lipgloss.NewStyle().Foreground(theme.Color(t.Room))
	s.LecturerStyle = lipgloss.NewStyle().Foreground(theme.Color(t.Lecturer))
	s.MutedStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.WarningStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Color(t.Warning))
	s.OKStyle = lipgloss.NewStyle().Foreground(theme.Color(t.OK))
	return s
}

// Table returns the bookings table styles.
func (s *Styles) Table() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(s.colorFgMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(s.colorAccent)
	ts.Cell = ts.Cell.Foreground(s.colorFg)
	ts.Selected = ts.Selected.
		Foreground(s.colorFg).
		Background(s.colorBgSelection).
		Bold(true)
	return ts
}

// kindStyle returns the style used for a conflict kind.
func (s *Styles) kindStyle(room bool) lipgloss.Style {
	if room {
		return s.RoomStyle
	}
	return s.LecturerStyle
}
