package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/javiermolinar/jadwal/internal/config"
	"github.com/javiermolinar/jadwal/internal/timetable"
	"github.com/javiermolinar/jadwal/internal/ui"
)

// Exit codes. Conflicts get their own code so scripts can tell them from
// invalid input.
const (
	exitError    = 1
	exitConflict = 2
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, ui.ErrConflictsFound) || errors.Is(err, timetable.ErrConflict) {
			os.Exit(exitConflict)
		}
		os.Exit(exitError)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := ui.NewApp(nil, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
