package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/jadwal/internal/config"
	"github.com/javiermolinar/jadwal/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  jadwal config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return a.runConfigInteractive(bufio.NewReader(cmd.InOrStdin()), path)
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "Config file (default: ~/.config/jadwal/config.toml)")
	return cmd
}

func (a *App) runConfigInteractive(reader *bufio.Reader, configPath string) error {
	w := a.out
	fmt.Fprintf(w, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(w, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(w, "Created %s\n\n", configPath)
	}

	printConfig(w, cfg)

	if !promptYesNo(w, reader, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Schedule.TeachingDays = promptSlice(w, reader, "Teaching days (comma-separated)", cfg.Schedule.TeachingDays)
	cfg.Schedule.DayStart = promptValue(w, reader, "Day start", cfg.Schedule.DayStart)
	cfg.Schedule.DayEnd = promptValue(w, reader, "Day end", cfg.Schedule.DayEnd)
	cfg.Schedule.Language = promptValue(w, reader, "Day language (id, en)", cfg.Schedule.Language)
	cfg.Storage.DBPath = promptValue(w, reader, "Database path", cfg.Storage.DBPath)
	cfg.Server.Addr = promptValue(w, reader, "Server address", cfg.Server.Addr)
	cfg.Server.RatePerMinute = promptInt(w, reader, "Requests per minute per client (0 disables)", cfg.Server.RatePerMinute)
	cfg.Advisor.Enabled = promptBool(w, reader, "Enable LLM advisor", cfg.Advisor.Enabled)
	if cfg.Advisor.Enabled {
		cfg.Advisor.Provider = promptValue(w, reader, "LLM provider", cfg.Advisor.Provider)
		cfg.Advisor.Model = promptValue(w, reader, "LLM model", cfg.Advisor.Model)
		cfg.Advisor.BaseURL = promptValue(w, reader, "LLM base URL (Ollama/LM Studio)", cfg.Advisor.BaseURL)
	}
	cfg.UI.Theme = promptTheme(w, reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(w, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[schedule]")
	fmt.Fprintf(w, "  teaching_days    = %s\n", strings.Join(cfg.Schedule.TeachingDays, ", "))
	fmt.Fprintf(w, "  day_start        = %s\n", cfg.Schedule.DayStart)
	fmt.Fprintf(w, "  day_end          = %s\n", cfg.Schedule.DayEnd)
	fmt.Fprintf(w, "  language         = %s\n", cfg.Schedule.Language)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  addr             = %s\n", cfg.Server.Addr)
	fmt.Fprintf(w, "  rate_per_minute  = %d\n", cfg.Server.RatePerMinute)
	fmt.Fprintf(w, "  burst            = %d\n", cfg.Server.Burst)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  env              = %s\n", cfg.Log.Env)
	fmt.Fprintf(w, "  level            = %s\n", cfg.Log.Level)
	fmt.Fprintln(w, "\n[advisor]")
	fmt.Fprintf(w, "  enabled          = %t\n", cfg.Advisor.Enabled)
	if cfg.Advisor.Enabled {
		fmt.Fprintf(w, "  provider         = %s\n", cfg.Advisor.Provider)
		fmt.Fprintf(w, "  model            = %s\n", cfg.Advisor.Model)
		fmt.Fprintf(w, "  base_url         = %s\n", cfg.Advisor.BaseURL)
	}
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme            = %s\n", cfg.UI.Theme)
}

func promptYesNo(w io.Writer, reader *bufio.Reader, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(w io.Writer, reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Fprintf(w, "  %s: ", label)
	} else {
		fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(w io.Writer, reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(w, reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 {
			return n
		}
		fmt.Fprintf(w, "  Invalid number %q.\n", value)
	}
}

func promptBool(w io.Writer, reader *bufio.Reader, label string, current bool) bool {
	value := strings.ToLower(promptValue(w, reader, label+" (y/n)", yesNo(current)))
	switch value {
	case "y", "yes", "true":
		return true
	case "n", "no", "false":
		return false
	default:
		return current
	}
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func promptSlice(w io.Writer, reader *bufio.Reader, label string, current []string) []string {
	currentStr := strings.Join(current, ", ")
	fmt.Fprintf(w, "  %s [%s]: ", label, currentStr)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptTheme(w io.Writer, reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(w, reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(w, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
