package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/jadwal/internal/report"
	"github.com/javiermolinar/jadwal/internal/schedule"
)

func (a *App) listCmd() *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bookings",
		Long: `List stored bookings grouped by day.

Examples:
  jadwal list
  jadwal list --day Senin
  jadwal list --day today`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd.Context(), day)
		},
	}

	cmd.Flags().StringVarP(&day, "day", "d", "", "Only show this day")
	return cmd
}

func (a *App) runList(ctx context.Context, day string) error {
	svc, err := a.service()
	if err != nil {
		return err
	}

	bookings, err := svc.List(ctx)
	if err != nil {
		return err
	}

	if day != "" {
		if day, err = a.resolveDay(day); err != nil {
			return err
		}
		filtered := bookings[:0:0]
		for _, b := range bookings {
			if b.Day == day {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	if len(bookings) == 0 {
		fmt.Fprintln(a.out, formatMuted("No bookings."))
		return nil
	}
	printBookings(a.out, bookings)
	return nil
}

func (a *App) conflictsCmd() *cobra.Command {
	var hints bool

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Show conflicts in the stored timetable",
		Long: `Detect room and lecturer conflicts across all stored bookings and
print the conflict report. With --hints, print each conflict with its
resolution suggestions instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			rep, err := svc.Conflicts(cmd.Context())
			if err != nil {
				return err
			}
			if hints && len(rep.Findings) > 0 {
				printFindings(a.out, rep.Findings)
				return nil
			}
			fmt.Fprint(a.out, report.Format(rep.Conflicts()))
			if len(rep.Findings) == 0 {
				fmt.Fprintln(a.out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&hints, "hints", false, "Show resolution suggestions")
	return cmd
}

func (a *App) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show timetable statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			st, err := svc.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			printStatistics(a.out, st)
			return nil
		},
	}
}

func (a *App) freeCmd() *cobra.Command {
	var (
		day      string
		room     string
		lecturer string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "free",
		Short: "Find free slots on a day",
		Long: `List slots within the teaching window where the room and the lecturer
are both free for the requested duration. Either may be omitted.

Examples:
  jadwal free --day Senin --room Lab301 --duration 120
  jadwal free --day tomorrow --lecturer "Dr. Ahmad"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			resolved, err := a.resolveDay(day)
			if err != nil {
				return err
			}
			slots, err := svc.FreeSlots(cmd.Context(), resolved, room, lecturer, duration)
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Fprintf(a.out, "No free %d-minute slot on %s.\n", duration, resolved)
				return nil
			}
			fmt.Fprintln(a.out, formatHeader(fmt.Sprintf("Free %d-minute slots on %s (%s-%s)",
				duration, resolved, a.slots.DayStart(), a.slots.DayEnd())))
			for _, s := range slots {
				fmt.Fprintf(a.out, "  %s\n", s.Range)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&day, "day", "d", "today", "Day: weekday name, today, tomorrow or YYYY-MM-DD")
	cmd.Flags().StringVarP(&room, "room", "r", "", "Room that must be free")
	cmd.Flags().StringVarP(&lecturer, "lecturer", "l", "", "Lecturer who must be free")
	cmd.Flags().IntVar(&duration, "duration", 60, "Slot length in minutes")
	return cmd
}

func (a *App) logsCmd() *cobra.Command {
	var clearLogs bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the conflict audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if clearLogs {
				if err := svc.ClearLogs(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "Logs cleared")
				return nil
			}

			entries, err := svc.Logs(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.out, formatMuted("No log entries."))
				return nil
			}
			for _, e := range entries {
				printLogEntry(a.out, e)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearLogs, "clear", false, "Delete all log entries")
	return cmd
}

func printLogEntry(w io.Writer, e schedule.LogEntry) {
	status := string(e.Status)
	if strings.Contains(status, "REJECTED") {
		status = formatWarn(status)
	}
	fmt.Fprintf(w, "%s  %-16s %s\n", formatMuted(e.Timestamp.Format("2006-01-02 15:04:05")), status, e.BookingID)
	for _, c := range e.Conflicts {
		fmt.Fprintf(w, "    %s with %s on %s (%s)\n", c.Kind, c.WithBooking, c.Day, c.Resource)
	}
}
