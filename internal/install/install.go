// Package install triggers dependency and editor extension installation.
// Spawned processes are never awaited.
package install

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adamancini/jsassist/internal/output"
	"github.com/adamancini/jsassist/internal/packagejson"
	"github.com/adamancini/jsassist/internal/questions"
	"github.com/adamancini/jsassist/internal/types"
)

// Spawner starts a process without waiting for it.
type Spawner interface {
	Spawn(dir, name string, args ...string) error
}

// DefaultSpawner starts processes with os/exec. Children inherit the
// assistant's stdout and stderr.
type DefaultSpawner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Spawn implements Spawner. The child is released immediately.
func (s *DefaultSpawner) Spawn(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Spawned records one triggered process.
type Spawned struct {
	Question types.QuestionID `json:"question" yaml:"question"`
	Command  string           `json:"command" yaml:"command"`
	Started  bool             `json:"started" yaml:"started"`
}

// Trigger starts the installers for confirmed install questions.
type Trigger struct {
	Dir            string
	Editor         string
	PackageManager types.PackageManager
	Extensions     questions.Extensions
	Spawner        Spawner
	Log            *output.Logger
}

// Fire spawns exactly one process per request and returns immediately.
// Start failures are only reported in verbose mode; they never fail the run.
func (t *Trigger) Fire(requests []types.QuestionID) []Spawned {
	spawner := t.Spawner
	if spawner == nil {
		spawner = &DefaultSpawner{}
	}

	var spawned []Spawned
	for _, id := range requests {
		name, args, ok := t.command(id)
		if !ok {
			continue
		}
		line := strings.Join(append([]string{name}, args...), " ")
		err := spawner.Spawn(t.Dir, name, args...)
		if err != nil {
			t.Log.Verbosef("Failed to start %s: %v", line, err)
		}
		spawned = append(spawned, Spawned{Question: id, Command: line, Started: err == nil})
	}
	return spawned
}

// command returns the process for an install question.
func (t *Trigger) command(id types.QuestionID) (string, []string, bool) {
	switch id {
	case types.QuestionAcquireTypes:
		pm := t.PackageManager.Default()
		return pm.String(), pm.InstallArgs(), true
	case types.QuestionInstallScriptRunner:
		return t.Editor, []string{"--install-extension", t.Extensions.ScriptRunner.String()}, true
	case types.QuestionInstallESLint:
		return t.Editor, []string{"--install-extension", t.Extensions.Lint.String()}, true
	default:
		return "", nil, false
	}
}

// Lockfiles mapped to the package manager that writes them, in lookup order.
var lockfiles = []struct {
	name string
	pm   types.PackageManager
}{
	{"pnpm-lock.yaml", types.PackageManagerPNPM},
	{"yarn.lock", types.PackageManagerYarn},
	{"package-lock.json", types.PackageManagerNPM},
}

// DetectPackageManager picks the installer for dir: the configured override,
// then the manifest's packageManager field, then a lockfile, then npm.
// A packageManager field naming an unsupported tool or an unparseable
// version is reported on log and skipped.
func DetectPackageManager(dir string, override types.PackageManager, manifest *packagejson.Manifest, log *output.Logger) (types.PackageManager, error) {
	if override != "" {
		if err := override.Validate(); err != nil {
			return "", err
		}
		return override, nil
	}

	if manifest != nil {
		spec, err := manifest.PackageManager()
		switch {
		case err != nil:
			log.Warnf("Ignoring package.json packageManager: %v", err)
		case spec != nil:
			return spec.Name, nil
		}
	}

	for _, lf := range lockfiles {
		_, err := os.Stat(filepath.Join(dir, lf.name))
		if err == nil {
			return lf.pm, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to check %s: %w", lf.name, err)
		}
	}

	return types.PackageManagerNPM, nil
}
