// Package git reports uncommitted changes in files the assistant is about to overwrite.
package git

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandRunner is an interface for running external commands.
// This allows for mocking in tests.
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, error)
	RunInDir(dir, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner uses os/exec to run commands.
type DefaultCommandRunner struct{}

// Run executes a command in the current directory.
func (r *DefaultCommandRunner) Run(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

// RunInDir executes a command in the specified directory.
func (r *DefaultCommandRunner) RunInDir(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// FileStatus is the porcelain status of one path.
type FileStatus struct {
	Path string // Path relative to the project directory
	Code string // Two-letter porcelain code, e.g. " M" or "??"
}

// Untracked reports whether git does not track the file yet.
func (f FileStatus) Untracked() bool {
	return f.Code == "??"
}

// Checker checks git status for the project directory.
type Checker struct {
	runner CommandRunner
}

// NewChecker creates a new Checker with the default command runner.
func NewChecker() *Checker {
	return &Checker{runner: &DefaultCommandRunner{}}
}

// NewCheckerWithRunner creates a Checker with a custom command runner (for testing).
func NewCheckerWithRunner(runner CommandRunner) *Checker {
	return &Checker{runner: runner}
}

// GitAvailable checks if git is installed and available.
func (c *Checker) GitAvailable() bool {
	_, err := c.runner.Run("git", "--version")
	return err == nil
}

// isGitRepo checks if the path is inside a git work tree.
func (c *Checker) isGitRepo(dir string) bool {
	output, err := c.runner.RunInDir(dir, "git", "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == "true"
}

// status returns the porcelain status of the given files in dir.
func (c *Checker) status(dir string, files []string) ([]FileStatus, error) {
	args := append([]string{"status", "--porcelain", "--"}, files...)
	output, err := c.runner.RunInDir(dir, "git", args...)
	if err != nil {
		return nil, fmt.Errorf("git status failed: %w", err)
	}
	return parsePorcelain(string(output)), nil
}

// parsePorcelain parses `git status --porcelain` v1 output.
func parsePorcelain(output string) []FileStatus {
	var statuses []FileStatus
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		// Renames are reported as "old -> new".
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		statuses = append(statuses, FileStatus{
			Path: filepath.FromSlash(strings.Trim(path, `"`)),
			Code: line[:2],
		})
	}
	return statuses
}
