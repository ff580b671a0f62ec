package advisor

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/jadwal/internal/conflict"
)

const fullSystemPrompt = `You help a university timetable office resolve scheduling conflicts.
Each conflict below is numbered and is either a room_conflict (two courses booked
in the same room at overlapping times) or a lecturer_conflict (one lecturer teaching
two courses at overlapping times).

For each conflict propose up to 3 short, concrete actions: which course to move,
to which day or time, or which resource to change. Do not repeat generic advice.

Respond with JSON only, in this shape:
{"hints":[{"index":0,"suggestions":["...","..."]}]}`

const compactSystemPrompt = `Resolve timetable conflicts. For each numbered conflict give up to 3 short actions.
Reply with JSON only: {"hints":[{"index":0,"suggestions":["..."]}]}`

func systemPrompt(compact bool) string {
	if compact {
		return compactSystemPrompt
	}
	return fullSystemPrompt
}

// describe lists the conflicts one per line, numbered from 0.
func describe(conflicts []conflict.Conflict) string {
	var b strings.Builder
	b.WriteString("Conflicts:\n")
	for i, c := range conflicts {
		d := c.Detail
		fmt.Fprintf(&b, "%d. %s on %s, %s %s: '%s' %s vs '%s' %s",
			i, c.Kind, d.Day, strings.ToLower(c.Kind.Label()), d.Resource,
			d.Label1, d.Range1, d.Label2, d.Range2)
		if c.Kind == conflict.KindLecturer {
			fmt.Fprintf(&b, " (rooms %s and %s)", d.Room1, d.Room2)
		}
		b.WriteString("\n")
	}
	return b.String()
}
