// Package report renders conflict lists as human-readable text.
package report

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/jadwal/internal/conflict"
)

// NoConflicts is returned by Format for an empty conflict list.
const NoConflicts = "No conflicts detected."

const ruleWidth = 80

// Format renders conflicts grouped by kind, numbered within each group,
// followed by a summary block.
func Format(conflicts []conflict.Conflict) string {
	if len(conflicts) == 0 {
		return NoConflicts
	}

	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(&b, "%s\nCONFLICT DETECTION REPORT - %d conflict(s) found\n%s\n\n", rule, len(conflicts), rule)

	writeGroup(&b, conflicts, conflict.KindRoom)
	writeGroup(&b, conflicts, conflict.KindLecturer)

	b.WriteString(FormatSummary(conflict.Summarize(conflicts)))
	b.WriteString(rule + "\n")
	return b.String()
}

func writeGroup(b *strings.Builder, conflicts []conflict.Conflict, kind conflict.Kind) {
	var group []conflict.Conflict
	for _, c := range conflicts {
		if c.Kind == kind {
			group = append(group, c)
		}
	}
	if len(group) == 0 {
		return
	}

	fmt.Fprintf(b, "%s CONFLICTS (%d):\n", strings.ToUpper(kind.Label()), len(group))
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	for i, c := range group {
		b.WriteString(Entry(i+1, c))
		b.WriteString("\n")
	}
}

// Entry renders a single numbered conflict.
func Entry(n int, c conflict.Conflict) string {
	d := c.Detail
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s - %s %s\n", n, d.Day, c.Kind.Label(), d.Resource)
	if c.Kind == conflict.KindLecturer {
		fmt.Fprintf(&b, "   Schedule 1: %s in %s (%s)\n", d.Label1, d.Room1, d.Range1)
		fmt.Fprintf(&b, "   Schedule 2: %s in %s (%s)\n", d.Label2, d.Room2, d.Range2)
	} else {
		fmt.Fprintf(&b, "   Schedule 1: %s (%s)\n", d.Label1, d.Range1)
		fmt.Fprintf(&b, "   Schedule 2: %s (%s)\n", d.Label2, d.Range2)
	}
	fmt.Fprintf(&b, "   IDs: %s <-> %s\n", c.Parties[0].ID, c.Parties[1].ID)
	return b.String()
}

// FormatSummary renders the summary block.
func FormatSummary(s conflict.Summary) string {
	var b strings.Builder
	b.WriteString("SUMMARY:\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	fmt.Fprintf(&b, "Total Conflicts: %d\n", s.Total)
	fmt.Fprintf(&b, "Room Conflicts: %d\n", s.RoomConflicts)
	fmt.Fprintf(&b, "Lecturer Conflicts: %d\n", s.LecturerConflicts)
	fmt.Fprintf(&b, "Affected Rooms: %s\n", joinOrNone(s.AffectedRooms))
	fmt.Fprintf(&b, "Affected Lecturers: %s\n", joinOrNone(s.AffectedLecturers))
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
