package ui

import (
	"github.com/spf13/cobra"

	"github.com/javiermolinar/jadwal/internal/tui"
	"github.com/javiermolinar/jadwal/internal/tui/commands"
)

func (a *App) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file]",
		Short: "Browse bookings and conflicts interactively",
		Long: `Open the interactive conflict browser.

Without a file, the stored timetable is shown. With a TOML or JSON booking
file, that file is checked instead and the database is not touched.

Keys: tab switches pane, r reloads, y copies the report, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return a.browse(path)
		},
	}
}

func (a *App) browse(path string) error {
	source, err := a.source(path)
	if err != nil {
		return err
	}
	return tui.Run(source, a.config.UI.Theme)
}

// source picks the booking file when given, else the stored timetable.
func (a *App) source(path string) (commands.Source, error) {
	if path != "" {
		resolved, err := resolvePath(path)
		if err != nil {
			return nil, err
		}
		return commands.FileSource(resolved), nil
	}

	svc, err := a.service()
	if err != nil {
		return nil, err
	}
	return svc.List, nil
}
