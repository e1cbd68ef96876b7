package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Values wraps a map[string]any for typed value extraction.
// Accessors return the default when the key is missing or the value
// cannot be converted to the requested type.
type Values struct {
	data map[string]any
}

// NewValues creates Values from the given map. A nil map is treated as empty.
func NewValues(data map[string]any) Values {
	if data == nil {
		data = make(map[string]any)
	}
	return Values{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (v Values) String(key, defaultVal string) string {
	if s, ok := v.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not convertible.
// Floats are accepted only without a fractional part.
func (v Values) Int(key string, defaultVal int) int {
	switch val := v.data[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (v Values) Bool(key string, defaultVal bool) bool {
	if b, ok := v.data[key].(bool); ok {
		return b
	}
	return defaultVal
}

// Duration returns the duration for key, or defaultVal if missing or invalid.
//
// Accepts:
//   - string: parsed with time.ParseDuration
//   - int, int64, float64: interpreted as seconds
func (v Values) Duration(key string, defaultVal time.Duration) time.Duration {
	switch val := v.data[key].(type) {
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	case int:
		return time.Duration(val) * time.Second
	case int64:
		return time.Duration(val) * time.Second
	case float64:
		return time.Duration(val * float64(time.Second))
	}
	return defaultVal
}

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v.data[key]
	return ok
}

// Settings are the user preferences of the qs tool itself.
type Settings struct {
	// Shell is the interpreter used to run rendered commands.
	Shell string

	// MaxDepth limits conditional nesting in templates.
	MaxDepth int

	// HistoryPath is the sqlite database recording runs. Empty disables history.
	HistoryPath string

	// Timeout bounds how long a command may run. Zero means no limit.
	Timeout time.Duration

	// Color is "auto", "always" or "never".
	Color string
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Shell:    "bash",
		MaxDepth: 64,
		Color:    "auto",
	}
}

// SettingsFromValues reads Settings from v, falling back to the defaults.
func SettingsFromValues(v Values) Settings {
	d := DefaultSettings()
	return Settings{
		Shell:       v.String("shell", d.Shell),
		MaxDepth:    v.Int("max_depth", d.MaxDepth),
		HistoryPath: v.String("history", d.HistoryPath),
		Timeout:     v.Duration("timeout", d.Timeout),
		Color:       v.String("color", d.Color),
	}
}

// LoadSettings reads a YAML settings file. A missing file yields the defaults.
func LoadSettings(fsys afero.Fs, path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return SettingsFromValues(NewValues(m)), nil
}

// SettingsPath returns the location of the settings file:
// $XDG_CONFIG_HOME/qs/settings.yaml, or ~/.config/qs/settings.yaml.
// Returns "" when neither variable is set.
func SettingsPath(getenv func(string) string) string {
	dir := configHome(getenv)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "qs", "settings.yaml")
}
