package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/jadwal/internal/dateutil"
	"github.com/javiermolinar/jadwal/internal/schedule"
	"github.com/javiermolinar/jadwal/internal/timetable"
)

// bookingFlags holds the field flags shared by add and update.
type bookingFlags struct {
	id       string
	day      string
	start    string
	end      string
	room     string
	lecturer string
	course   string
}

func (f *bookingFlags) register(cmd *cobra.Command, withID bool) {
	if withID {
		cmd.Flags().StringVar(&f.id, "id", "", "Booking ID (e.g., SCH001)")
	}
	cmd.Flags().StringVarP(&f.day, "day", "d", "", "Day: weekday name, today, tomorrow or YYYY-MM-DD")
	cmd.Flags().StringVarP(&f.start, "start", "s", "", "Start time (HH:MM)")
	cmd.Flags().StringVarP(&f.end, "end", "e", "", "End time (HH:MM)")
	cmd.Flags().StringVarP(&f.room, "room", "r", "", "Room")
	cmd.Flags().StringVarP(&f.lecturer, "lecturer", "l", "", "Lecturer")
	cmd.Flags().StringVarP(&f.course, "course", "c", "", "Course name (optional)")
}

func (a *App) addCmd() *cobra.Command {
	var f bookingFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a booking",
		Long: `Add a booking to the timetable.

The booking is refused if it puts two courses in one room, or one lecturer
in two rooms, at overlapping times. Refused bookings list every conflict
and up to three free slots that would work instead.

Examples:
  jadwal add --id SCH001 -d Senin -s 08:00 -e 10:00 -r Lab301 -l "Dr. Ahmad" -c Algoritma
  jadwal add --id SCH002 -d tomorrow -s 13:00 -e 15:00 -r R101 -l "Ibu Siti"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAdd(cmd.Context(), f)
		},
	}

	f.register(cmd, true)
	return cmd
}

func (a *App) runAdd(ctx context.Context, f bookingFlags) error {
	svc, err := a.service()
	if err != nil {
		return err
	}

	day, err := a.resolveDay(f.day)
	if err != nil {
		return err
	}
	b, err := schedule.ParseBooking(f.id, day, f.start, f.end, f.room, f.lecturer, f.course)
	if err != nil {
		return err
	}

	res, err := svc.Add(ctx, b)
	if errors.Is(err, timetable.ErrConflict) {
		printRejection(a.out, res)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %s\n", formatOK("Added"), res.Booking)
	a.warnOutsideWindow(res.Booking)
	return nil
}

func (a *App) updateCmd() *cobra.Command {
	var f bookingFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a booking",
		Long: `Change the day, time, room, lecturer or course of a booking.

Fields not given keep their current value. The change is refused if the
new booking conflicts with any other booking.

Examples:
  jadwal update SCH001 -s 10:00 -e 12:00
  jadwal update SCH002 -d Rabu -r Lab100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.id = args[0]
			return a.runUpdate(cmd.Context(), f)
		},
	}

	f.register(cmd, false)
	return cmd
}

func (a *App) runUpdate(ctx context.Context, f bookingFlags) error {
	svc, err := a.service()
	if err != nil {
		return err
	}

	current, err := svc.Get(ctx, f.id)
	if err != nil {
		return err
	}

	day := current.Day
	if f.day != "" {
		if day, err = a.resolveDay(f.day); err != nil {
			return err
		}
	}
	start := orDefault(f.start, current.Range.StartClock())
	end := orDefault(f.end, current.Range.EndClock())

	b, err := schedule.ParseBooking(current.ID, day, start, end,
		orDefault(f.room, current.Room),
		orDefault(f.lecturer, current.Lecturer),
		orDefault(f.course, current.Label))
	if err != nil {
		return err
	}

	res, err := svc.Update(ctx, b)
	if errors.Is(err, timetable.ErrConflict) {
		printRejection(a.out, res)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %s\n", formatOK("Updated"), res.Booking)
	if res.Previous != nil {
		fmt.Fprintf(a.out, "  %s\n", formatMuted("was "+res.Previous.String()))
	}
	a.warnOutsideWindow(res.Booking)
	return nil
}

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a booking",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Removed %s\n", args[0])
			return nil
		},
	}
}

// warnOutsideWindow notes bookings the free-slot finder will never suggest.
func (a *App) warnOutsideWindow(b schedule.Booking) {
	if msg := a.slots.ValidateSlot(b.Day, b.Range); msg != "" {
		fmt.Fprintf(a.out, "%s %s (%s %s-%s)\n", formatWarn("note:"), msg,
			strings.Join(a.slots.Days(), ", "), a.slots.DayStart(), a.slots.DayEnd())
	}
}

// resolveDay accepts weekday names plus today, tomorrow and dates.
func (a *App) resolveDay(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: day", schedule.ErrMissingField)
	}
	return dateutil.ResolveDay(s, a.now(), dateutil.Lang(a.config.Schedule.Language))
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
