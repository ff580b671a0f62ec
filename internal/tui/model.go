// Package tui provides the interactive conflict browser for jadwal.
package tui

import (
	"sort"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/jadwal/internal/conflict"
	"github.com/javiermolinar/jadwal/internal/schedule"
	"github.com/javiermolinar/jadwal/internal/tui/commands"
	"github.com/javiermolinar/jadwal/internal/tui/theme"
)

// Pane identifies the focused half of the screen.
type Pane int

const (
	PaneBookings Pane = iota
	PaneConflicts
)

const (
	defaultWidth  = 120
	defaultHeight = 30
	statusTTL     = 3 * time.Second

	cellPadding    = 2 // horizontal padding of table.DefaultStyles cells
	minCourseWidth = 6
)

// Model is the main TUI model.
type Model struct {
	source commands.Source
	styles *Styles

	// Loaded data
	bookings   []schedule.Booking
	conflicts  []conflict.Conflict
	conflicted map[string]bool // booking IDs that are party to a conflict
	reportText string

	// Components
	table table.Model

	// State
	focus   Pane
	cursor  int // selected conflict
	loading bool

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time

	writeClipboard func(string) error
	err            error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) { m.writeClipboard = write }
}

// New creates a new TUI model reading bookings from source.
func New(source commands.Source, themeName string, opts ...ModelOption) Model {
	t, err := theme.Load(themeName)
	if err != nil {
		t = &theme.Theme{Name: "plain"}
	}
	styles := NewStyles(t)

	tbl := table.New(
		table.WithColumns(bookingColumns(defaultWidth)),
		table.WithFocused(true),
	)
	tbl.SetStyles(styles.Table())

	m := Model{
		source:         source,
		styles:         styles,
		table:          tbl,
		focus:          PaneBookings,
		loading:        true,
		width:          defaultWidth,
		height:         defaultHeight,
		writeClipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.resize()
	return m
}

// Init starts loading bookings.
func (m Model) Init() tea.Cmd {
	return commands.Load(m.source)
}

// Run starts the TUI.
func Run(source commands.Source, themeName string) error {
	p := tea.NewProgram(New(source, themeName), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// bookingColumns sizes the table columns for a table of the given width.
// The course column takes whatever the fixed columns leave over.
func bookingColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "!", Width: 1},
		{Title: "ID", Width: 8},
		{Title: "Day", Width: 9},
		{Title: "Time", Width: 11},
		{Title: "Room", Width: 10},
		{Title: "Lecturer", Width: 14},
		{Title: "Course"},
	}
	used := cellPadding * len(cols)
	for _, c := range cols {
		used += c.Width
	}
	cols[len(cols)-1].Width = max(width-used, minCourseWidth)
	return cols
}

// setData replaces the loaded bookings and conflicts.
func (m *Model) setData(msg commands.LoadedMsg) {
	m.bookings = sortedByDay(msg.Bookings)
	m.conflicts = msg.Conflicts
	m.reportText = msg.Report

	m.conflicted = make(map[string]bool)
	for _, c := range m.conflicts {
		m.conflicted[c.Parties[0].ID] = true
		m.conflicted[c.Parties[1].ID] = true
	}

	rows := make([]table.Row, 0, len(m.bookings))
	for _, b := range m.bookings {
		marker := ""
		if m.conflicted[b.ID] {
			marker = "!"
		}
		rows = append(rows, table.Row{marker, b.ID, b.Day, b.Range.String(), b.Room, b.Lecturer, b.Label})
	}
	m.table.SetRows(rows)

	if m.cursor >= len(m.conflicts) {
		m.cursor = max(len(m.conflicts)-1, 0)
	}
}

// resize fits the table into the left pane.
func (m *Model) resize() {
	leftW, _ := m.paneWidths()
	m.table.SetColumns(bookingColumns(leftW - 2))
	m.table.SetWidth(leftW - 2)
	m.table.SetHeight(max(m.bodyHeight()-2, 3))
}

// paneWidths splits the screen between the bookings and conflicts panes.
func (m Model) paneWidths() (int, int) {
	left := m.width * 3 / 5
	return left, m.width - left
}

// bodyHeight is the height left for the panes below the title and above the footer.
func (m Model) bodyHeight() int {
	return max(m.height-2, 5)
}

// sortedByDay orders bookings by weekday, then start time. Ties keep input order.
func sortedByDay(bookings []schedule.Booking) []schedule.Booking {
	order := make(map[string]int)
	for i, d := range schedule.Weekdays() {
		order[d] = i % 7
	}

	out := make([]schedule.Booking, len(bookings))
	copy(out, bookings)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := order[out[i].Day], order[out[j].Day]
		if di != dj {
			return di < dj
		}
		return out[i].Range.Start() < out[j].Range.Start()
	})
	return out
}
