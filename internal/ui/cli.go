package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/jadwal/internal/advisor"
	"github.com/javiermolinar/jadwal/internal/config"
	"github.com/javiermolinar/jadwal/internal/db"
	"github.com/javiermolinar/jadwal/internal/events"
	"github.com/javiermolinar/jadwal/internal/llm"
	"github.com/javiermolinar/jadwal/internal/logging"
	"github.com/javiermolinar/jadwal/internal/schedule"
	"github.com/javiermolinar/jadwal/internal/scheduler"
	"github.com/javiermolinar/jadwal/internal/timetable"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo    schedule.Repository
	ownRepo bool // repo was opened by the App and must be closed by it
	svc     *timetable.Service
	slots   *scheduler.Scheduler
	config  *config.Config
	logger  *zap.Logger
	now     func() time.Time
	out     io.Writer
	root    *cobra.Command
	debug   bool // Enable debug logging
}

// AppOption configures an App.
type AppOption func(*App)

// WithLogger sets the logger instead of building one from the config.
func WithLogger(l *zap.Logger) AppOption {
	return func(a *App) { a.logger = l }
}

// WithClock overrides the clock used to resolve "today" and "tomorrow".
func WithClock(now func() time.Time) AppOption {
	return func(a *App) { a.now = now }
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened from cfg.Storage.DBPath the first time a command needs it.
func NewApp(repo schedule.Repository, cfg *config.Config, opts ...AppOption) *App {
	a := &App{repo: repo, config: cfg, now: time.Now, out: os.Stdout}
	for _, opt := range opts {
		opt(a)
	}

	a.root = &cobra.Command{
		Use:   "jadwal",
		Short: "Timetable conflict detection for rooms and lecturers",
		Long: `Jadwal keeps a timetable of course bookings and refuses any booking
that would put two courses in the same room, or one lecturer in two
places, at the same time.

Run without a subcommand to browse the stored timetable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.browse("")
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.updateCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.conflictsCmd())
	a.root.AddCommand(a.statsCmd())
	a.root.AddCommand(a.freeCmd())
	a.root.AddCommand(a.logsCmd())
	a.root.AddCommand(a.browseCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "jadwal %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetOutput redirects command output, mainly for tests.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetArgs sets the command line arguments, mainly for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if the App opened it and flushes the logger.
func (a *App) Close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.ownRepo && a.repo != nil {
		return a.repo.Close()
	}
	return nil
}

func (a *App) ensureLogger() error {
	if a.logger != nil {
		return nil
	}
	level := a.config.Log.Level
	if a.debug {
		level = "debug"
	}
	logger, err := logging.New(a.config.Log.Env, level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	dbPath := a.config.Storage.DBPath
	if dbPath == "" {
		return fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	a.repo = repo
	a.ownRepo = true
	return nil
}

// service wires the repository, event log listener, teaching window and the
// optional advisor into a timetable service.
func (a *App) service() (*timetable.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	if err := a.ensureLogger(); err != nil {
		return nil, err
	}
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}

	sch, err := scheduler.New(a.config.Schedule.TeachingDays, a.config.Schedule.DayStart, a.config.Schedule.DayEnd)
	if err != nil {
		return nil, fmt.Errorf("teaching window: %w", err)
	}
	a.slots = sch

	dispatcher := events.NewDispatcher()
	dispatcher.Attach("log", events.NewLogListener(a.logger))

	opts := []timetable.Option{timetable.WithScheduler(sch)}
	if adv, err := a.newAdvisor(); err != nil {
		a.logger.Warn("advisor disabled", zap.Error(err))
	} else if adv != nil {
		opts = append(opts, timetable.WithAdvisor(adv))
	}

	a.svc = timetable.New(a.repo, dispatcher, a.logger, opts...)
	return a.svc, nil
}

// newAdvisor returns nil when the advisor is not enabled.
func (a *App) newAdvisor() (*advisor.Advisor, error) {
	cfg := a.config.Advisor
	if !cfg.Enabled {
		return nil, nil
	}
	client, err := llm.NewClient(cfg.Provider, cfg.Model, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}
	return advisor.New(client, advisor.WithCompactPrompt(advisor.UseCompactPrompt(cfg.Provider))), nil
}
