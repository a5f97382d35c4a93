package state

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/adamancini/jsassist/internal/types"
)

// CommandRunner runs an external command and returns its stdout.
// This allows for mocking in tests.
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner uses os/exec to run commands.
type DefaultCommandRunner struct{}

// Output implements CommandRunner.
func (r *DefaultCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CLIReader reads installed extensions by invoking the editor CLI.
type CLIReader struct {
	Editor string
	Runner CommandRunner
}

// NewCLIReader creates a CLIReader for editor using os/exec.
func NewCLIReader(editor string) *CLIReader {
	return &CLIReader{Editor: editor, Runner: &DefaultCommandRunner{}}
}

// ListExtensions runs `<editor> --list-extensions` once.
func (r *CLIReader) ListExtensions(ctx context.Context) (ExtensionSet, error) {
	if r.Editor == "" {
		return nil, fmt.Errorf("no editor configured")
	}
	runner := r.Runner
	if runner == nil {
		runner = &DefaultCommandRunner{}
	}

	output, err := runner.Output(ctx, r.Editor, "--list-extensions")
	if err != nil {
		return nil, fmt.Errorf("failed to run %s --list-extensions: %w", r.Editor, err)
	}

	return parseExtensionList(output), nil
}

var lineBreak = regexp.MustCompile(`[\r\n]`)

// parseExtensionList splits --list-extensions output into ids.
// Output is trimmed, split on CR or LF, and blank lines are dropped.
// The result is non-nil even when no extension is installed.
func parseExtensionList(output []byte) ExtensionSet {
	set := make(ExtensionSet)
	for _, line := range lineBreak.Split(strings.TrimSpace(string(output)), -1) {
		id := strings.TrimSpace(line)
		if id == "" {
			continue
		}
		set[types.ExtensionID(id).Normalize()] = true
	}
	return set
}
