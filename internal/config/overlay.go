package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/adamancini/jsassist/internal/types"
)

// EnvPrefix is the prefix of environment overrides (JSASSIST_EDITOR, ...).
const EnvPrefix = "JSASSIST"

// Setting keys shared by the file, environment and flag layers.
const (
	KeyEditor         = "editor"
	KeyPackageManager = "package_manager"
	KeyScriptRunner   = "extensions.script_runner"
	KeyLint           = "extensions.lint"
	KeyAssumeYes      = "assume_yes"
)

// FlagBindings maps setting keys to the command-line flags that override them.
var FlagBindings = map[string]string{
	KeyPackageManager: "package-manager",
	KeyAssumeYes:      "yes",
}

// DotEnvFile is the project-local environment file.
const DotEnvFile = ".env"

// dotEnvDenied are the variables a project .env may not set. Both name a
// program the assistant executes.
var dotEnvDenied = map[string]bool{
	EnvPrefix + "_EDITOR":          true,
	EnvPrefix + "_PACKAGE_MANAGER": true,
}

// LoadDotEnv loads <dir>/.env into the process environment and returns the
// variables it refused to load. Variables already set are not overridden,
// and JSASSIST_EDITOR and JSASSIST_PACKAGE_MANAGER are never taken from the
// project. A missing file is not an error.
func LoadDotEnv(dir string) ([]string, error) {
	path := filepath.Join(dir, DotEnvFile)
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var ignored []string
	for _, key := range keys {
		if dotEnvDenied[strings.ToUpper(key)] {
			ignored = append(ignored, key)
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, vars[key]); err != nil {
			return ignored, fmt.Errorf("failed to set %s from %s: %w", key, path, err)
		}
	}
	return ignored, nil
}

// Overlay merges file settings with JSASSIST_* environment variables and the
// bound flags. Precedence: changed flag > env > file > defaults.
func Overlay(file *Settings, flags *pflag.FlagSet) (*Settings, error) {
	if file == nil {
		file = Defaults()
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyEditor, file.Editor)
	v.SetDefault(KeyPackageManager, file.PackageManager.String())
	v.SetDefault(KeyScriptRunner, file.Extensions.ScriptRunner.String())
	v.SetDefault(KeyLint, file.Extensions.Lint.String())
	v.SetDefault(KeyAssumeYes, file.AssumeYes)

	if flags != nil {
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	pm, err := types.ParsePackageManager(v.GetString(KeyPackageManager))
	if err != nil {
		return nil, ValidationError{Field: KeyPackageManager, Message: err.Error()}
	}

	settings := &Settings{
		Editor:         strings.TrimSpace(v.GetString(KeyEditor)),
		PackageManager: pm,
		Extensions: Extensions{
			ScriptRunner: types.ExtensionID(v.GetString(KeyScriptRunner)),
			Lint:         types.ExtensionID(v.GetString(KeyLint)),
		},
		AssumeYes: v.GetBool(KeyAssumeYes),
	}
	settings.applyDefaults()

	if err := Validate(settings); err != nil {
		return nil, err
	}

	return settings, nil
}
