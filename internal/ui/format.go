package ui

import (
	"fmt"
	"io"

	"github.com/javiermolinar/jadwal/internal/report"
	"github.com/javiermolinar/jadwal/internal/schedule"
	"github.com/javiermolinar/jadwal/internal/scheduler"
	"github.com/javiermolinar/jadwal/internal/summary"
	"github.com/javiermolinar/jadwal/internal/timetable"
)

// minLabelWidth keeps course names readable on narrow terminals.
const minLabelWidth = 12

// labelWidth is the room left for the course name in a booking row.
// Row overhead: "  SCH001  08:00-10:00  Lab301      Dr.Ahmad        " = ~52 chars.
func labelWidth() int {
	return max(termWidth()-52, minLabelWidth)
}

// printBookingRow prints one booking as an aligned row.
func printBookingRow(w io.Writer, b schedule.Booking, maxLabel int) {
	fmt.Fprintf(w, "  %-8s %s  %-10s %-15s %s\n",
		b.ID, b.Range, b.Room, b.Lecturer, truncate(b.DisplayLabel(), maxLabel))
}

// printBookings prints bookings grouped by day in the order days first appear.
func printBookings(w io.Writer, bookings []schedule.Booking) {
	maxLabel := labelWidth()

	var days []string
	byDay := make(map[string][]schedule.Booking)
	for _, b := range bookings {
		if _, ok := byDay[b.Day]; !ok {
			days = append(days, b.Day)
		}
		byDay[b.Day] = append(byDay[b.Day], b)
	}

	for i, day := range days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, formatHeader("=== "+day+" ==="))
		for _, b := range byDay[day] {
			printBookingRow(w, b, maxLabel)
		}
	}
}

// printFindings prints the conflicts of a rejected change with their suggestions.
func printFindings(w io.Writer, findings []timetable.Finding) {
	for i, f := range findings {
		c := f.Conflict
		fmt.Fprintf(w, "%d. %s %s on %s\n", i+1,
			formatKind(c.Kind, c.Kind.Label()+" conflict:"), c.Detail.Resource, c.Detail.Day)
		overlap := c.Parties[0].Range.OverlapMinutes(c.Parties[1].Range)
		fmt.Fprintf(w, "   %s (%s) vs %s (%s), %s overlap\n",
			c.Detail.Label1, c.Detail.Range1, c.Detail.Label2, c.Detail.Range2, formatDuration(overlap))
		if f.With != "" {
			fmt.Fprintf(w, "   %s\n", formatMuted("clashes with "+f.With))
		}
		for _, s := range f.Suggestions {
			fmt.Fprintf(w, "   • %s\n", s)
		}
	}
}

// printAlternatives prints free slots suggested for a rejected change.
func printAlternatives(w io.Writer, slots []scheduler.Slot) {
	if len(slots) == 0 {
		return
	}
	fmt.Fprintln(w, formatHeader("Free alternatives:"))
	for _, s := range slots {
		fmt.Fprintf(w, "  %s\n", s)
	}
}

// printRejection prints why a change was refused.
func printRejection(w io.Writer, res timetable.Result) {
	fmt.Fprintln(w, formatWarn(fmt.Sprintf("Rejected %s: %d conflict(s) found", res.Booking.ID, len(res.Findings))))
	printFindings(w, res.Findings)
	printAlternatives(w, res.Alternatives)
}

// printStatistics prints totals, the conflict summary and utilization.
func printStatistics(w io.Writer, st timetable.Statistics) {
	status := formatOK(st.SystemStatus)
	if st.SystemStatus != timetable.StatusOK {
		status = formatWarn(st.SystemStatus)
	}

	fmt.Fprintf(w, "Total Schedules: %d\n", st.TotalBookings)
	fmt.Fprintf(w, "Booked Time: %s\n", formatDuration(st.Utilization.TotalMinutes()))
	fmt.Fprintf(w, "System Status: %s\n\n", status)
	fmt.Fprint(w, report.FormatSummary(st.Summary))

	printUtilization(w, st.Utilization)
}

func printUtilization(w io.Writer, week summary.Week) {
	if len(week.Days) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, formatHeader("Per day"))
	for _, d := range week.Days {
		marker := ""
		if d.Day == week.BusiestDay {
			marker = formatMuted("  (busiest)")
		}
		fmt.Fprintf(w, "  %-10s %3d booking(s)  %s%s\n", d.Day, d.Bookings, formatDuration(d.Minutes), marker)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, formatHeader("Per room"))
	for _, r := range week.Rooms {
		fmt.Fprintf(w, "  %-10s %3d booking(s)  %s\n", r.Room, r.Bookings, formatDuration(r.Minutes))
	}
}

func formatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}

// truncate shortens s to at most n runes, ending with "…" when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
