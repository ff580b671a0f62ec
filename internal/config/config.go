// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/jadwal/internal/schedule"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Advisor  AdvisorConfig  `toml:"advisor"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds the teaching window used to look for free slots.
type ScheduleConfig struct {
	TeachingDays []string `toml:"teaching_days"` // e.g., ["Senin", "Selasa", ...]
	DayStart     string   `toml:"day_start"`     // e.g., "07:00"
	DayEnd       string   `toml:"day_end"`       // e.g., "18:00"
	Language     string   `toml:"language"`      // "id" or "en", used for "today"/"tomorrow"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr          string `toml:"addr"`            // e.g., ":8080"
	RatePerMinute int    `toml:"rate_per_minute"` // 0 disables rate limiting
	Burst         int    `toml:"burst"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Env   string `toml:"env"`   // "development" or "production"
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// AdvisorConfig holds LLM advisor settings.
type AdvisorConfig struct {
	Enabled  bool   `toml:"enabled"`
	Provider string `toml:"provider"` // "openai", "lmstudio", "ollama"
	Model    string `toml:"model"`    // e.g., "gpt-4o-mini"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "dark", "light", "plain"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			TeachingDays: []string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat"},
			DayStart:     "07:00",
			DayEnd:       "18:00",
			Language:     "id",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Server: ServerConfig{
			Addr:          ":8080",
			RatePerMinute: 120,
			Burst:         20,
		},
		Log: LogConfig{
			Env:   "development",
			Level: "info",
		},
		Advisor: AdvisorConfig{
			Enabled:  false,
			Provider: "ollama",
			Model:    "llama3.1",
			BaseURL:  "http://localhost:11434",
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "jadwal.db"
	}
	return filepath.Join(home, ".local", "share", "jadwal", "jadwal.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "jadwal", "config.toml")
}

// DotEnvPath is the .env file read before environment overrides are applied.
var DotEnvPath = ".env"

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// Defaults are overlaid by the file, then by .env values, then by JADWAL_* variables.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := loadDotEnv(DotEnvPath); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// loadDotEnv exports the variables of a .env file into the process
// environment. Variables that are already set win over the file.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("JADWAL_TEACHING_DAYS"); v != "" {
		cfg.Schedule.TeachingDays = strings.Split(v, ",")
	}
	if v := os.Getenv("JADWAL_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("JADWAL_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("JADWAL_LANGUAGE"); v != "" {
		cfg.Schedule.Language = v
	}

	if v := os.Getenv("JADWAL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("JADWAL_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("JADWAL_RATE_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("JADWAL_RATE_PER_MINUTE: %w", err)
		}
		cfg.Server.RatePerMinute = n
	}

	if v := os.Getenv("JADWAL_LOG_ENV"); v != "" {
		cfg.Log.Env = v
	}
	if v := os.Getenv("JADWAL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("JADWAL_ADVISOR_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("JADWAL_ADVISOR_ENABLED: %w", err)
		}
		cfg.Advisor.Enabled = enabled
	}
	if v := os.Getenv("JADWAL_ADVISOR_PROVIDER"); v != "" {
		cfg.Advisor.Provider = v
	}
	if v := os.Getenv("JADWAL_ADVISOR_MODEL"); v != "" {
		cfg.Advisor.Model = v
	}
	if v := os.Getenv("JADWAL_ADVISOR_BASE_URL"); v != "" {
		cfg.Advisor.BaseURL = v
	}

	if v := os.Getenv("JADWAL_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var (
	validLogEnvs   = []string{"development", "production"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
	validProviders = []string{"openai", "lmstudio", "ollama"}
	validThemes    = []string{"dark", "light", "plain"}
	validLanguages = []string{"id", "en"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Schedule.validate(); err != nil {
		return err
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Server.Addr == "" {
		return errors.New("server addr must be set")
	}
	if c.Server.RatePerMinute < 0 {
		return fmt.Errorf("rate_per_minute must not be negative, got %d", c.Server.RatePerMinute)
	}
	if c.Server.RatePerMinute > 0 && c.Server.Burst <= 0 {
		return errors.New("burst must be positive when rate limiting is enabled")
	}
	if !oneOf(c.Log.Env, validLogEnvs) {
		return fmt.Errorf("invalid log env: %s", c.Log.Env)
	}
	if !oneOf(c.Log.Level, validLogLevels) {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.Advisor.Enabled {
		if !oneOf(c.Advisor.Provider, validProviders) {
			return fmt.Errorf("invalid advisor provider: %s", c.Advisor.Provider)
		}
		if c.Advisor.Model == "" {
			return errors.New("advisor model must be set when the advisor is enabled")
		}
	}
	if !oneOf(c.UI.Theme, validThemes) {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}
	return nil
}

func (s ScheduleConfig) validate() error {
	if len(s.TeachingDays) == 0 {
		return errors.New("at least one teaching day must be configured")
	}
	for _, day := range s.TeachingDays {
		if !schedule.IsWeekday(strings.TrimSpace(day)) {
			return fmt.Errorf("invalid teaching day: %s", day)
		}
	}
	start, err := schedule.ParseClock(s.DayStart)
	if err != nil {
		return fmt.Errorf("day_start: %w", err)
	}
	end, err := schedule.ParseClock(s.DayEnd)
	if err != nil {
		return fmt.Errorf("day_end: %w", err)
	}
	if start >= end {
		return errors.New("day_start must be before day_end")
	}
	if !oneOf(s.Language, validLanguages) {
		return fmt.Errorf("invalid language: %s", s.Language)
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	v = strings.ToLower(v)
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
