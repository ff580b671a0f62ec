package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/jadwal/internal/conflict"
)

const helpText = "tab switch pane • ↑/↓ move • y copy report • r reload • q quit"

// View renders the two panes between a title line and a footer.
func (m Model) View() string {
	if m.loading {
		return "Loading..."
	}
	if m.err != nil && m.bookings == nil {
		return m.styles.WarningStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\nPress q to quit."
	}

	leftW, rightW := m.paneWidths()
	h := m.bodyHeight() - 2

	left := m.paneStyle(PaneBookings).Width(leftW - 2).Height(h).Render(m.table.View())
	right := m.paneStyle(PaneConflicts).Width(rightW - 2).Height(h).Render(m.renderConflicts(rightW-2, h))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.renderFooter(),
	)
}

func (m Model) paneStyle(p Pane) lipgloss.Style {
	if m.focus == p {
		return m.styles.FocusedPaneStyle
	}
	return m.styles.PaneStyle
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render("jadwal")
	counts := fmt.Sprintf(" %d bookings · ", len(m.bookings))
	status := m.styles.OKStyle.Render("no conflicts")
	if len(m.conflicts) > 0 {
		status = m.styles.WarningStyle.Render(fmt.Sprintf("%d conflicts", len(m.conflicts)))
	}
	return ansi.Truncate(title+counts+status, m.width, "…")
}

func (m Model) renderFooter() string {
	text := helpText
	if m.statusMsg != "" {
		text = m.statusMsg
	}
	return m.styles.MutedStyle.Render(ansi.Truncate(text, m.width, "…"))
}

// renderConflicts lists conflicts one per line and shows the details and
// hints of the selected one below the list.
func (m Model) renderConflicts(width, height int) string {
	header := fmt.Sprintf("Conflicts (%d)", len(m.conflicts))
	if len(m.conflicts) == 0 {
		return m.styles.OKStyle.Render(header) + "\n\n" + m.styles.OKStyle.Render("No conflicts detected.")
	}

	lines := []string{m.styles.WarningStyle.Render(header), ""}
	for i, c := range m.conflicts {
		line := ansi.Truncate(conflictLine(c), width-2, "…")
		if i == m.cursor {
			lines = append(lines, m.styles.SelectedStyle.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+m.styles.kindStyle(c.Kind == conflict.KindRoom).Render(line))
	}

	lines = append(lines, "")
	for _, d := range conflictDetails(m.conflicts[m.cursor]) {
		lines = append(lines, m.styles.MutedStyle.Render(ansi.Truncate(d, width, "…")))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// conflictLine is the one-line form of a conflict, e.g.
// "Room Lab301 Senin SCH001 <-> SCH002".
func conflictLine(c conflict.Conflict) string {
	return fmt.Sprintf("%s %s %s %s <-> %s",
		c.Kind.Label(), c.Detail.Resource, c.Detail.Day, c.Parties[0].ID, c.Parties[1].ID)
}

func conflictDetails(c conflict.Conflict) []string {
	d := c.Detail
	out := []string{
		fmt.Sprintf("%s (%s)", d.Label1, d.Range1),
		fmt.Sprintf("%s (%s)", d.Label2, d.Range2),
	}
	if c.Kind == conflict.KindLecturer {
		out[0] += " in " + d.Room1
		out[1] += " in " + d.Room2
	}
	for _, h := range conflict.Hints(c) {
		out = append(out, "• "+h)
	}
	return out
}
