package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamancini/jsassist/internal/config"
	"github.com/adamancini/jsassist/internal/output"
)

// resolveDir returns the absolute project directory from --dir.
func resolveDir() (string, error) {
	dir := projectDir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project directory: %w", err)
	}
	return abs, nil
}

// loadSettings layers the project .env, the settings file, JSASSIST_*
// variables and the command's flags. A positional editor wins over all of them.
// The editor and package manager never come from the project .env.
func loadSettings(cmd *cobra.Command, dir string, args []string, log *output.Logger) (*config.Settings, error) {
	ignored, err := config.LoadDotEnv(dir)
	if err != nil {
		log.Warnf("%v", err)
	}
	for _, key := range ignored {
		log.Verbosef("Ignoring %s from %s", key, filepath.Join(dir, config.DotEnvFile))
	}

	path, err := config.FindSettings(configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Verbosef("Using settings: %s", path)
	}

	file, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	settings, err := config.Overlay(file, cmd.Flags())
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		if editor := strings.TrimSpace(args[0]); editor != "" {
			settings.Editor = editor
		}
	}

	return settings, nil
}
