// Package config handles jsassist settings parsing and location resolution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adamancini/jsassist/internal/types"
)

// DefaultEditor is the editor binary used when none is configured.
const DefaultEditor = "code-insiders"

// Extensions holds the marketplace ids the assistant offers to install.
type Extensions struct {
	ScriptRunner types.ExtensionID `yaml:"script_runner,omitempty" toml:"script_runner,omitempty" json:"script_runner,omitempty" mapstructure:"script_runner"`
	Lint         types.ExtensionID `yaml:"lint,omitempty" toml:"lint,omitempty" json:"lint,omitempty" mapstructure:"lint"`
}

// Settings represents the parsed settings file.
type Settings struct {
	Editor         string               `yaml:"editor,omitempty" toml:"editor,omitempty" json:"editor,omitempty" mapstructure:"editor"`
	PackageManager types.PackageManager `yaml:"package_manager,omitempty" toml:"package_manager,omitempty" json:"package_manager,omitempty" mapstructure:"package_manager"`
	Extensions     Extensions           `yaml:"extensions,omitempty" toml:"extensions,omitempty" json:"extensions,omitempty" mapstructure:"extensions"`
	AssumeYes      bool                 `yaml:"assume_yes,omitempty" toml:"assume_yes,omitempty" json:"assume_yes,omitempty" mapstructure:"assume_yes"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		Editor: DefaultEditor,
		Extensions: Extensions{
			ScriptRunner: types.ExtensionScriptRunner,
			Lint:         types.ExtensionESLint,
		},
	}
}

// applyDefaults fills empty fields from Defaults.
func (s *Settings) applyDefaults() {
	d := Defaults()
	if s.Editor == "" {
		s.Editor = d.Editor
	}
	if s.Extensions.ScriptRunner == "" {
		s.Extensions.ScriptRunner = d.Extensions.ScriptRunner
	}
	if s.Extensions.Lint == "" {
		s.Extensions.Lint = d.Extensions.Lint
	}
}

// settingsFileNames are tried in order inside each search directory.
var settingsFileNames = []string{
	"config.yaml",
	"config.yml",
	"config.toml",
	"config.json",
}

// FindSettings searches for a settings file in the standard locations.
// Returns an empty path when none exists; settings are optional.
func FindSettings(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("specified settings file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	// Check JSASSIST_CONFIG environment variable
	if envPath := os.Getenv("JSASSIST_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	dir, err := SettingsDir()
	if err != nil {
		return "", err
	}
	for _, name := range settingsFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

// SettingsDir returns $XDG_CONFIG_HOME/jsassist, falling back to ~/.config/jsassist.
func SettingsDir() (string, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", err)
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "jsassist"), nil
}

// DefaultSettingsPath returns where `jsassist init` writes settings.
func DefaultSettingsPath() (string, error) {
	dir, err := SettingsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFileNames[0]), nil
}

// Load reads and parses a settings file from the given path.
// An empty path yields the defaults.
func Load(path string) (*Settings, error) {
	if path == "" {
		return Defaults(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("settings file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	format := detectFormat(path, content)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unable to detect file format for %s", path)
	}

	settings, err := parse(content, format)
	if err != nil {
		return nil, err
	}

	settings.applyDefaults()

	if err := Validate(settings); err != nil {
		return nil, err
	}

	return settings, nil
}
