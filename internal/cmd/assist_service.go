package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/adamancini/jsassist/internal/apply"
	"github.com/adamancini/jsassist/internal/config"
	"github.com/adamancini/jsassist/internal/git"
	"github.com/adamancini/jsassist/internal/install"
	"github.com/adamancini/jsassist/internal/interactive"
	"github.com/adamancini/jsassist/internal/output"
	"github.com/adamancini/jsassist/internal/questions"
	"github.com/adamancini/jsassist/internal/state"
	"github.com/adamancini/jsassist/internal/types"
)

// AssistOptions configures a run of the assistant.
type AssistOptions struct {
	AssumeYes    bool   // Answer yes to every applicable question
	ShowCommands bool   // Output the plan instead of executing
	SkipGitCheck bool   // Skip git status checks for files about to be written
	OutputFormat string // Output format (text, json, yaml)
}

// AssistReport is the structured result of a run.
type AssistReport struct {
	Directory  string            `json:"directory" yaml:"directory"`
	Answers    map[string]bool   `json:"answers" yaml:"answers"`
	Operations []apply.Operation `json:"operations" yaml:"operations"`
	Installs   []install.Spawned `json:"installs" yaml:"installs"`
	Warnings   []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AssistService orchestrates inspection, questions, writes and installs.
type AssistService struct {
	dir        string
	settings   *config.Settings
	inspector  *state.Inspector
	engine     *questions.Engine
	executor   *apply.Executor
	gitChecker *git.Checker
	spawner    install.Spawner
	log        *output.Logger
	in         io.Reader
}

// NewAssistService creates an assistant for dir with default dependencies.
func NewAssistService(dir string, settings *config.Settings, log *output.Logger) *AssistService {
	return &AssistService{
		dir:        dir,
		settings:   settings,
		inspector:  state.NewInspector(dir, settings.Editor, log),
		engine:     questions.New(extensionsFor(settings)),
		executor:   apply.NewExecutor(),
		gitChecker: git.NewChecker(),
		spawner:    &install.DefaultSpawner{Stdout: log.Out(), Stderr: os.Stderr},
		log:        log,
		in:         os.Stdin,
	}
}

// NewAssistServiceWithDeps creates an assistant with custom dependencies (for testing).
func NewAssistServiceWithDeps(
	dir string,
	settings *config.Settings,
	inspector *state.Inspector,
	gitChecker *git.Checker,
	spawner install.Spawner,
	in io.Reader,
	log *output.Logger,
) *AssistService {
	return &AssistService{
		dir:        dir,
		settings:   settings,
		inspector:  inspector,
		engine:     questions.New(extensionsFor(settings)),
		executor:   apply.NewExecutor(),
		gitChecker: gitChecker,
		spawner:    spawner,
		log:        log,
		in:         in,
	}
}

func extensionsFor(settings *config.Settings) questions.Extensions {
	return questions.Extensions{
		ScriptRunner: settings.Extensions.ScriptRunner,
		Lint:         settings.Extensions.Lint,
	}
}

// Inspect builds the project context.
func (s *AssistService) Inspect(ctx context.Context) (*state.State, error) {
	st, err := s.inspector.Inspect(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range st.Warnings {
		s.log.Warnf("%s", w)
	}
	return st, nil
}

// Ask evaluates the question table against st.
// Returns questions.ErrAborted when the user quits.
func (s *AssistService) Ask(st *state.State, assumeYes bool) (questions.Answers, *interactive.Prompter, error) {
	if assumeYes {
		answers, err := s.engine.Evaluate(st, questions.AssumeYes)
		return answers, nil, err
	}

	if s.in == os.Stdin && !interactive.IsTerminal() {
		s.log.Verbosef("stdin is not a terminal, reading answers from input")
	}
	prompter := interactive.NewPrompterWithIO(s.in, s.log.Out())
	answers, err := s.engine.Evaluate(st, prompter)
	return answers, prompter, err
}

// PackageManager picks the package manager for the types install.
func (s *AssistService) PackageManager(st *state.State) (types.PackageManager, error) {
	return install.DetectPackageManager(s.dir, s.settings.PackageManager, st.Manifest, s.log)
}

// installerFor detects the package manager only when the types install
// was confirmed; other answers never depend on it.
func (s *AssistService) installerFor(st *state.State, answers questions.Answers) (types.PackageManager, error) {
	if !answers.Confirmed(types.QuestionAcquireTypes) {
		return "", nil
	}
	return s.PackageManager(st)
}

// ValidateGitStatus checks the files about to be written for uncommitted changes.
func (s *AssistService) ValidateGitStatus(st *state.State, answers questions.Answers) *git.CheckResult {
	if s.gitChecker == nil {
		return nil
	}
	return s.gitChecker.CheckFiles(s.dir, apply.Targets(st, answers))
}

// Trigger returns the installer for the confirmed installs.
func (s *AssistService) Trigger(pm types.PackageManager) *install.Trigger {
	return &install.Trigger{
		Dir:            s.dir,
		Editor:         s.settings.Editor,
		PackageManager: pm,
		Extensions:     extensionsFor(s.settings),
		Spawner:        s.spawner,
		Log:            s.log,
	}
}

// FormatOutput formats the output according to the specified format.
func (s *AssistService) FormatOutput(format output.Format, data any) error {
	writer := output.NewWriter(s.log.Out(), format)
	return writer.Write(data)
}

// Run executes the complete assistant workflow.
// This is the main entry point that orchestrates all the steps.
func (s *AssistService) Run(ctx context.Context, opts AssistOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := output.ParseFormat(opts.OutputFormat)
	if err != nil {
		return err
	}

	// 1. Greet
	greet(s.log, format)

	// 2. Inspect
	st, err := s.Inspect(ctx)
	if err != nil {
		return err
	}
	s.log.Verbosef("Project: %s (%d JavaScript, %d TypeScript sources)", st.Dir, st.Sources.JavaScript, st.Sources.TypeScript)

	// 3. Ask
	answers, prompter, err := s.Ask(st, opts.AssumeYes)
	if errors.Is(err, questions.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}

	pm, err := s.installerFor(st, answers)
	if err != nil {
		return err
	}

	// 4. Handle --show-commands flag
	if opts.ShowCommands {
		return s.handleShowCommands(st, answers, pm, format)
	}

	// 5. Check git status
	var warnings []string
	if !opts.SkipGitCheck {
		warnings = s.handleGitCheck(st, answers)
	}

	// 6. Write files
	result, err := s.executor.Apply(st, answers)
	if err != nil {
		return err
	}

	// 7. Trigger installs
	spawned := s.Trigger(pm).Fire(result.Installs)

	if prompter != nil && format == output.FormatText && !s.log.Quiet() {
		prompter.PrintSummary()
	}

	// 8. Format and display output
	return s.handleOutput(&AssistReport{
		Directory:  st.Dir,
		Answers:    answerMap(answers),
		Operations: result.Operations,
		Installs:   spawned,
		Warnings:   warnings,
	}, format)
}

// handleShowCommands handles the --show-commands flag.
func (s *AssistService) handleShowCommands(st *state.State, answers questions.Answers, pm types.PackageManager, format output.Format) error {
	commands := questions.Plan(st, answers, questions.PlanOptions{
		Editor:         s.settings.Editor,
		PackageManager: pm,
		Extensions:     extensionsFor(s.settings),
	})

	if format != output.FormatText {
		return s.FormatOutput(format, commands)
	}
	if len(commands) == 0 {
		_, _ = fmt.Fprintln(s.log.Out(), "# Nothing to do")
		return nil
	}
	_, _ = fmt.Fprintln(s.log.Out(), questions.FormatCommands(commands, true))
	return nil
}

// handleGitCheck reports uncommitted changes in files about to be overwritten.
func (s *AssistService) handleGitCheck(st *state.State, answers questions.Answers) []string {
	gitResult := s.ValidateGitStatus(st, answers)
	if gitResult == nil {
		return nil
	}

	for _, warning := range gitResult.Warnings {
		s.log.Warnf("%s", warning)
	}
	for _, info := range gitResult.Info {
		s.log.Verbosef("%s", info)
	}
	return gitResult.Warnings
}

// handleOutput formats and displays the run result.
func (s *AssistService) handleOutput(report *AssistReport, format output.Format) error {
	if format != output.FormatText {
		if err := s.FormatOutput(format, report); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	for _, op := range report.Operations {
		s.log.Infof("%s %s", titleAction(op.Action), op.Path)
	}
	for _, sp := range report.Installs {
		if sp.Started {
			s.log.Infof("Started %s", sp.Command)
		}
	}
	if len(report.Operations) == 0 && len(report.Installs) == 0 {
		s.log.Infof("Nothing to do.")
	}
	return nil
}

func answerMap(answers questions.Answers) map[string]bool {
	m := make(map[string]bool, len(answers))
	for id, v := range answers {
		m[id.String()] = v
	}
	return m
}

// titleAction returns "Created" or "Updated".
func titleAction(action string) string {
	switch action {
	case apply.ActionCreate:
		return "Created"
	case apply.ActionUpdate:
		return "Updated"
	default:
		return action
	}
}
