// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when none is configured.
const DefaultName = "dark"

// Theme holds all colors for a TUI theme. Empty colors leave the terminal
// default in place.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`
	BgSelection string `toml:"bg_selection"` // Cursor, selected row
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // Hints, help line
	Accent      string `toml:"accent"`   // Title, focused pane border
	Room        string `toml:"room"`     // Room conflicts
	Lecturer    string `toml:"lecturer"` // Lecturer conflicts
	Warning     string `toml:"warning"`  // Conflict markers, errors
	OK          string `toml:"ok"`       // Conflict-free status
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to the default theme if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	return &t, nil
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"dark", "light", "plain"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
