package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/jadwal/internal/conflict"
	"github.com/javiermolinar/jadwal/internal/report"
	"github.com/javiermolinar/jadwal/internal/schedule"
)

// ErrConflictsFound is returned by check --fail when the file has conflicts.
var ErrConflictsFound = errors.New("conflicts found")

func (a *App) checkCmd() *cobra.Command {
	var failOnConflict bool

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check a booking file for conflicts",
		Long: `Check a TOML or JSON booking file for room and lecturer conflicts
and print the conflict report. The database is not touched.

Examples:
  jadwal check timetable.toml
  jadwal check --fail schedules.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runCheck(args[0], failOnConflict)
		},
	}

	cmd.Flags().BoolVar(&failOnConflict, "fail", false, "Exit with an error when conflicts are found")
	return cmd
}

func (a *App) runCheck(path string, failOnConflict bool) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}
	bookings, err := schedule.LoadFile(path)
	if err != nil {
		return err
	}

	// Detection keeps the first booking of a repeated ID; say so.
	if err := schedule.CheckUnique(bookings); err != nil {
		fmt.Fprintf(a.out, "%s %v (later entries are ignored)\n\n", formatWarn("warning:"), err)
	}

	conflicts := conflict.Detect(bookings)
	fmt.Fprint(a.out, report.Format(conflicts))
	if len(conflicts) == 0 {
		fmt.Fprintln(a.out)
	}

	if failOnConflict && len(conflicts) > 0 {
		return fmt.Errorf("%w: %d", ErrConflictsFound, len(conflicts))
	}
	return nil
}

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import bookings from a file",
		Long: `Import bookings from a TOML or JSON booking file.

Bookings are added in file order. A booking that conflicts with one already
stored, or reuses an ID, is skipped and reported.

TOML format:
  [[booking]]
  id = "SCH001"
  day = "Senin"
  start = "08:00"
  end = "10:00"
  room = "Lab301"
  lecturer = "Dr. Ahmad"
  course_name = "Algoritma"

Examples:
  jadwal import timetable.toml
  jadwal import ~/schedules.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImport(cmd.Context(), args[0])
		},
	}
}

func (a *App) runImport(ctx context.Context, path string) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}
	bookings, err := schedule.LoadFile(path)
	if err != nil {
		return err
	}

	svc, err := a.service()
	if err != nil {
		return err
	}

	res, err := svc.Import(ctx, bookings)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Imported %d of %d booking(s)\n", len(res.Added), len(bookings))
	if len(res.Rejected) == 0 {
		return nil
	}

	ids := make([]string, 0, len(res.Rejected))
	for id := range res.Rejected {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintln(a.out, formatWarn(fmt.Sprintf("Skipped %d:", len(ids))))
	for _, id := range ids {
		fmt.Fprintf(a.out, "  %s: %v\n", id, res.Rejected[id])
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
