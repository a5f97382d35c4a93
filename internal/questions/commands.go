package questions

import (
	"fmt"
	"strings"

	"github.com/adamancini/jsassist/internal/state"
	"github.com/adamancini/jsassist/internal/types"
)

// CommandKind tells file writes apart from spawned processes.
type CommandKind string

const (
	KindWrite CommandKind = "write"
	KindSpawn CommandKind = "spawn"
)

// Command describes one step the answers lead to.
type Command struct {
	Kind        CommandKind `json:"kind" yaml:"kind"`
	Command     string      `json:"command" yaml:"command"`
	Description string      `json:"description" yaml:"description"`
}

// PlanOptions are the tools used by spawned commands.
type PlanOptions struct {
	Editor         string
	PackageManager types.PackageManager
	Extensions     Extensions
}

// Plan lists the writes and spawns the answers imply, in execution order.
func Plan(s *state.State, answers Answers, opts PlanOptions) []Command {
	var commands []Command

	// 1. File writes
	if answers.Confirmed(types.QuestionCreateJSConfig) {
		commands = append(commands, Command{
			Kind:        KindWrite,
			Command:     "# write " + state.JSConfigFile,
			Description: "Create jsconfig.json from template",
		})
	} else if answers.AllowJs() {
		commands = append(commands, Command{
			Kind:        KindWrite,
			Command:     "# write " + state.TSConfigFile,
			Description: "Set compilerOptions.allowJs to true in tsconfig.json",
		})
	}

	if answers.Confirmed(types.QuestionAcquireTypes) {
		commands = append(commands, Command{
			Kind:        KindWrite,
			Command:     "# write package.json",
			Description: fmt.Sprintf("Add optionalDependencies: %s", strings.Join(s.MissingTypes, ", ")),
		})
	}

	if answers.Confirmed(types.QuestionInstallESLint) {
		commands = append(commands, Command{
			Kind:        KindWrite,
			Command:     "# write " + state.ESLintFile,
			Description: "Create .eslintrc from template",
		})
	}

	// 2. Detached installs
	if answers.Confirmed(types.QuestionAcquireTypes) {
		pm := opts.PackageManager.Default()
		commands = append(commands, Command{
			Kind:        KindSpawn,
			Command:     strings.Join(append([]string{pm.String()}, pm.InstallArgs()...), " "),
			Description: "Install type-definition packages",
		})
	}

	if answers.Confirmed(types.QuestionInstallScriptRunner) {
		commands = append(commands, Command{
			Kind:        KindSpawn,
			Command:     fmt.Sprintf("%s --install-extension %s", opts.Editor, opts.Extensions.ScriptRunner),
			Description: "Install extension: " + opts.Extensions.ScriptRunner.String(),
		})
	}

	if answers.Confirmed(types.QuestionInstallESLint) {
		commands = append(commands, Command{
			Kind:        KindSpawn,
			Command:     fmt.Sprintf("%s --install-extension %s", opts.Editor, opts.Extensions.Lint),
			Description: "Install extension: " + opts.Extensions.Lint.String(),
		})
	}

	return commands
}

// FormatCommands formats commands for shell execution.
func FormatCommands(commands []Command, includeComments bool) string {
	var output strings.Builder

	for _, cmd := range commands {
		if includeComments {
			output.WriteString(fmt.Sprintf("# %s\n", cmd.Description))
		}
		output.WriteString(fmt.Sprintf("%s\n", cmd.Command))
		if includeComments {
			output.WriteString("\n")
		}
	}

	return output.String()
}
