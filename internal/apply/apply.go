// Package apply performs the file writes the confirmed answers call for.
package apply

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adamancini/jsassist/internal/jsondoc"
	"github.com/adamancini/jsassist/internal/packagejson"
	"github.com/adamancini/jsassist/internal/questions"
	"github.com/adamancini/jsassist/internal/state"
	"github.com/adamancini/jsassist/internal/templates"
	"github.com/adamancini/jsassist/internal/types"
)

// Operation actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// Operation records one file write.
type Operation struct {
	Type        string `json:"type" yaml:"type"`
	Name        string `json:"name" yaml:"name"`
	Action      string `json:"action" yaml:"action"`
	Description string `json:"description" yaml:"description"`
	Path        string `json:"path" yaml:"path"`
	Success     bool   `json:"success" yaml:"success"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result is the outcome of Apply.
type Result struct {
	Operations []Operation        `json:"operations" yaml:"operations"`
	Installs   []types.QuestionID `json:"installs" yaml:"installs"`
}

// Written returns the number of successful writes.
func (r *Result) Written() int {
	n := 0
	for _, op := range r.Operations {
		if op.Success {
			n++
		}
	}
	return n
}

// Executor writes project files.
type Executor struct{}

// NewExecutor creates an Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Apply performs the writes implied by answers, in order, into s.Dir.
// Writes are independent file replacements: the first failure stops
// and is returned, earlier writes stay in place.
func (e *Executor) Apply(s *state.State, answers questions.Answers) (*Result, error) {
	result := &Result{Installs: Installs(answers)}

	for _, step := range steps(s, answers) {
		op, err := step()
		result.Operations = append(result.Operations, op)
		if err != nil {
			return result, fmt.Errorf("failed to write %s: %w", op.Name, err)
		}
	}

	return result, nil
}

// Installs returns the confirmed install questions in spawn order.
func Installs(answers questions.Answers) []types.QuestionID {
	var installs []types.QuestionID
	for _, id := range types.AllQuestionIDs() {
		if id.IsInstall() && answers.Confirmed(id) {
			installs = append(installs, id)
		}
	}
	return installs
}

// Targets returns the paths Apply would write for answers.
func Targets(s *state.State, answers questions.Answers) []string {
	var paths []string
	if answers.Confirmed(types.QuestionCreateJSConfig) {
		paths = append(paths, filepath.Join(s.Dir, state.JSConfigFile))
	} else if answers.AllowJs() {
		paths = append(paths, filepath.Join(s.Dir, state.TSConfigFile))
	}
	if answers.Confirmed(types.QuestionAcquireTypes) {
		paths = append(paths, packagejson.Path(s.Dir))
	}
	if answers.Confirmed(types.QuestionInstallESLint) {
		paths = append(paths, filepath.Join(s.Dir, state.ESLintFile))
	}
	return paths
}

type step func() (Operation, error)

func steps(s *state.State, answers questions.Answers) []step {
	var out []step

	// A project takes one of these branches only.
	if answers.Confirmed(types.QuestionCreateJSConfig) {
		out = append(out, func() (Operation, error) { return copyTemplate(s.Dir, templates.JSConfig) })
	} else if answers.AllowJs() {
		out = append(out, func() (Operation, error) { return enableAllowJS(s) })
	}

	if answers.Confirmed(types.QuestionAcquireTypes) {
		out = append(out, func() (Operation, error) { return writeManifest(s) })
	}

	if answers.Confirmed(types.QuestionInstallESLint) {
		out = append(out, func() (Operation, error) { return copyTemplate(s.Dir, templates.ESLint) })
	}

	return out
}

// copyTemplate copies an embedded template into dir, overwriting.
func copyTemplate(dir, name string) (Operation, error) {
	tmpl, err := templates.Get(name)
	if err != nil {
		return failed(Operation{Type: "template", Name: name, Action: ActionCreate}, err)
	}

	op := Operation{
		Type:        "template",
		Name:        tmpl.Destination,
		Action:      actionFor(filepath.Join(dir, tmpl.Destination)),
		Description: tmpl.Description,
	}

	path, err := templates.Copy(name, dir)
	if err != nil {
		return failed(op, err)
	}
	op.Path = path
	op.Success = true
	return op, nil
}

// enableAllowJS sets compilerOptions.allowJs on a copy of tsconfig.json and
// rewrites the file. A non-object compilerOptions is replaced.
func enableAllowJS(s *state.State) (Operation, error) {
	path := filepath.Join(s.Dir, state.TSConfigFile)
	op := Operation{
		Type:        "tsconfig",
		Name:        state.TSConfigFile,
		Action:      ActionUpdate,
		Description: "Set compilerOptions.allowJs to true",
		Path:        path,
	}

	if s.TSConfig == nil {
		return failed(op, errors.New("tsconfig.json was not read"))
	}

	doc := s.TSConfig.Clone()
	opts, ok := doc.Object(state.CompilerOptionsKey)
	if !ok {
		opts = jsondoc.New()
		if err := doc.Set(state.CompilerOptionsKey, opts); err != nil {
			return failed(op, err)
		}
	}
	if err := opts.Set(state.AllowJSKey, true); err != nil {
		return failed(op, err)
	}

	if err := doc.WriteFile(path, 0644); err != nil {
		return failed(op, err)
	}
	op.Success = true
	return op, nil
}

// writeManifest replaces package.json with the pending manifest.
func writeManifest(s *state.State) (Operation, error) {
	path := packagejson.Path(s.Dir)
	op := Operation{
		Type:        "package",
		Name:        packagejson.FileName,
		Action:      ActionUpdate,
		Description: "Add missing type definitions to optionalDependencies",
		Path:        path,
	}

	if s.PendingManifest == nil {
		return failed(op, errors.New("no type definitions are missing"))
	}

	if err := s.PendingManifest.WriteFile(path); err != nil {
		return failed(op, err)
	}
	op.Success = true
	return op, nil
}

func failed(op Operation, err error) (Operation, error) {
	op.Success = false
	op.Error = err.Error()
	return op, err
}

func actionFor(path string) string {
	if _, err := os.Stat(path); err == nil {
		return ActionUpdate
	}
	return ActionCreate
}
