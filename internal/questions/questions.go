// Package questions holds the ordered confirmation questions the assistant
// asks about a project and evaluates them against an inspected state.
package questions

import (
	"errors"
	"fmt"

	"github.com/adamancini/jsassist/internal/state"
	"github.com/adamancini/jsassist/internal/types"
)

// ErrAborted is returned by an Asker when the user quits the session.
var ErrAborted = errors.New("aborted by user")

// Predicate decides whether a question applies. It sees the answers given to
// earlier questions of the same pass.
type Predicate func(s *state.State, answers Answers) bool

// Question is one yes/no confirmation.
type Question struct {
	ID      types.QuestionID
	Prompt  string
	Applies Predicate
}

// Answers maps question ids to the user's answer. Questions that did not
// apply are absent, which means "no action", never "declined".
type Answers map[types.QuestionID]bool

// Confirmed reports whether id was asked and answered yes.
func (a Answers) Confirmed(id types.QuestionID) bool {
	return a[id]
}

// Declined reports whether id was asked and answered no.
func (a Answers) Declined(id types.QuestionID) bool {
	v, ok := a[id]
	return ok && !v
}

// AllowJs reports whether allowJs should be enabled in tsconfig.json.
// Confirming the re-ask counts the same as confirming the first question.
func (a Answers) AllowJs() bool {
	return a[types.QuestionSetAllowJS] || a[types.QuestionConfirmAllowJS]
}

// Extensions are the marketplace ids the install questions look for.
type Extensions struct {
	ScriptRunner types.ExtensionID
	Lint         types.ExtensionID
}

// DefaultExtensions returns the npm script runner and eslint ids.
func DefaultExtensions() Extensions {
	return Extensions{
		ScriptRunner: types.ExtensionScriptRunner,
		Lint:         types.ExtensionESLint,
	}
}

// Prompt texts.
const (
	PromptCreateJSConfig = "Create 'jsconfig.json' file?"
	PromptSetAllowJS     = "Should I adjust 'tsconfig.json' to allow for JavaScript files (strongly recommended)?"
	PromptConfirmAllowJS = "Sure about that? The presence of a 'tsconfig.json'-file shadows a 'jsconfig.json'-file " +
		"and without the 'allowJs'-flag there will be no support for JavaScript. Should I add the 'allowJs'-flag?"
	PromptAcquireTypes        = "Install type-definition files (.d.ts) and adjust 'package.json'?"
	PromptInstallScriptRunner = "Install 'npm script runner'-extension?"
	PromptInstallESLint       = "Install 'eslint'-extension?"
)

// needsAllowJS is the applicability of the allowJs question.
func needsAllowJS(s *state.State) bool {
	return s.HasTSConfig() && !s.TSConfigAllowsJS()
}

// Table returns the questions in evaluation order.
func Table(ext Extensions) []Question {
	scriptPrompt := PromptInstallScriptRunner
	if ext.ScriptRunner.Normalize() != types.ExtensionScriptRunner {
		scriptPrompt = fmt.Sprintf("Install '%s'-extension?", ext.ScriptRunner)
	}
	lintPrompt := PromptInstallESLint
	if ext.Lint.Normalize() != types.ExtensionESLint {
		lintPrompt = fmt.Sprintf("Install '%s'-extension?", ext.Lint)
	}

	return []Question{
		{
			ID:     types.QuestionCreateJSConfig,
			Prompt: PromptCreateJSConfig,
			Applies: func(s *state.State, _ Answers) bool {
				return !s.HasJSConfig() && !s.HasTSConfig()
			},
		},
		{
			ID:     types.QuestionSetAllowJS,
			Prompt: PromptSetAllowJS,
			Applies: func(s *state.State, _ Answers) bool {
				return needsAllowJS(s)
			},
		},
		{
			// Asked once more after a decline. There is no third level.
			ID:     types.QuestionConfirmAllowJS,
			Prompt: PromptConfirmAllowJS,
			Applies: func(s *state.State, a Answers) bool {
				return needsAllowJS(s) && a.Declined(types.QuestionSetAllowJS)
			},
		},
		{
			ID:     types.QuestionAcquireTypes,
			Prompt: PromptAcquireTypes,
			Applies: func(s *state.State, _ Answers) bool {
				return s.PendingManifest != nil
			},
		},
		{
			ID:     types.QuestionInstallScriptRunner,
			Prompt: scriptPrompt,
			Applies: func(s *state.State, _ Answers) bool {
				return s.Extensions.Known() && !s.Extensions.Has(ext.ScriptRunner)
			},
		},
		{
			ID:     types.QuestionInstallESLint,
			Prompt: lintPrompt,
			Applies: func(s *state.State, _ Answers) bool {
				return s.Extensions.Known() && !s.Extensions.Has(ext.Lint)
			},
		},
	}
}

// Asker presents a question and returns the user's answer.
type Asker interface {
	Ask(q Question) (bool, error)
}

// AskerFunc adapts a function to the Asker interface.
type AskerFunc func(q Question) (bool, error)

// Ask implements Asker.
func (f AskerFunc) Ask(q Question) (bool, error) {
	return f(q)
}

// AssumeYes answers yes to every question without prompting.
var AssumeYes Asker = AskerFunc(func(Question) (bool, error) { return true, nil })

// Engine evaluates a question table.
type Engine struct {
	Questions []Question
}

// New creates an Engine for the given extension ids.
func New(ext Extensions) *Engine {
	return &Engine{Questions: Table(ext)}
}

// Evaluate walks the table in order and asks every applicable question.
// On an Asker error the answers collected so far are returned with it.
func (e *Engine) Evaluate(s *state.State, asker Asker) (Answers, error) {
	answers := make(Answers)
	for _, q := range e.Questions {
		if !q.Applies(s, answers) {
			continue
		}
		ok, err := asker.Ask(q)
		if err != nil {
			return answers, err
		}
		answers[q.ID] = ok
	}
	return answers, nil
}

// Applicable lists the questions that apply given the partial answers.
func (e *Engine) Applicable(s *state.State, answers Answers) []Question {
	if answers == nil {
		answers = Answers{}
	}
	var applicable []Question
	for _, q := range e.Questions {
		if q.Applies(s, answers) {
			applicable = append(applicable, q)
		}
	}
	return applicable
}

// Evaluate runs the default table.
func Evaluate(s *state.State, asker Asker) (Answers, error) {
	return New(DefaultExtensions()).Evaluate(s, asker)
}

// Applicable runs the default table.
func Applicable(s *state.State, answers Answers) []Question {
	return New(DefaultExtensions()).Applicable(s, answers)
}
