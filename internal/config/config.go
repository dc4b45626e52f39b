// Package config loads vcsgutter settings and resolves host capabilities.
//
// Settings are read once at startup into an immutable value that is passed
// to the components that need it. Nothing in this package holds global
// mutable state.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidSetting indicates a setting value could not be interpreted.
var ErrInvalidSetting = errors.New("invalid setting")

const (
	// DefaultRetryInterval is how long the command waits before looking for
	// an active view again.
	DefaultRetryInterval = time.Millisecond

	// DefaultDebounce coalesces bursts of file events in watch mode.
	DefaultDebounce = 100 * time.Millisecond
)

// Settings is the resolved, read-only configuration.
type Settings struct {
	// ShowInMinimap draws markers in the minimap overview as well as the
	// gutter.
	ShowInMinimap bool

	// RetryInterval is the polling interval while no view is active.
	RetryInterval time.Duration

	// Debounce is the quiet period before watch mode re-runs the command.
	Debounce time.Duration

	// PackagesPath is the root under which icon directories live.
	PackagesPath string
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		ShowInMinimap: false,
		RetryInterval: DefaultRetryInterval,
		Debounce:      DefaultDebounce,
		PackagesPath:  defaultPackagesPath(),
	}
}

// file mirrors the on-disk layout.
type file struct {
	VcsGutter struct {
		ShowInMinimap *bool  `toml:"show_in_minimap"`
		RetryInterval string `toml:"retry_interval"`
		Debounce      string `toml:"debounce"`
		PackagesPath  string `toml:"packages_path"`
	} `toml:"vcs_gutter"`
}

// Load reads settings from path. A missing file yields Default().
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes TOML settings, filling unset keys from Default().
func Parse(data []byte) (Settings, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return Settings{}, fmt.Errorf("parsing TOML: %w", err)
	}

	s := Default()
	v := f.VcsGutter
	if v.ShowInMinimap != nil {
		s.ShowInMinimap = *v.ShowInMinimap
	}
	if v.RetryInterval != "" {
		d, err := parseDuration("retry_interval", v.RetryInterval)
		if err != nil {
			return Settings{}, err
		}
		s.RetryInterval = d
	}
	if v.Debounce != "" {
		d, err := parseDuration("debounce", v.Debounce)
		if err != nil {
			return Settings{}, err
		}
		s.Debounce = d
	}
	if v.PackagesPath != "" {
		s.PackagesPath = expandHome(v.PackagesPath)
	}
	return s, nil
}

// DefaultPath returns the settings file location,
// $XDG_CONFIG_HOME/vcsgutter/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vcsgutter.toml"
	}
	return filepath.Join(dir, "vcsgutter", "config.toml")
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q: %v", ErrInvalidSetting, key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidSetting, key, value)
	}
	return d, nil
}

func defaultPackagesPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "vcsgutter", "Packages")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "vcsgutter", "Packages")
	}
	return filepath.Join(home, ".local", "share", "vcsgutter", "Packages")
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
