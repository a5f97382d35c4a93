package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamancini/jsassist/internal/output"
	"github.com/adamancini/jsassist/internal/questions"
	"github.com/adamancini/jsassist/internal/state"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [editor]",
		Short: "Show the inspected project and the questions that apply",
		Long: `Inspect reads jsconfig.json, tsconfig.json and package.json, lists the
editor's installed extensions and prints the questions the assistant would ask.
Nothing is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd)

			dir, err := resolveDir()
			if err != nil {
				return err
			}
			settings, err := loadSettings(cmd, dir, args, log)
			if err != nil {
				return err
			}

			service := NewAssistService(dir, settings, log)
			return runInspect(cmd, service)
		},
	}
}

// InspectReport is the inspected project context.
type InspectReport struct {
	Directory      string             `json:"directory" yaml:"directory"`
	JSConfig       bool               `json:"jsconfig" yaml:"jsconfig"`
	TSConfig       bool               `json:"tsconfig" yaml:"tsconfig"`
	AllowJs        bool               `json:"allow_js" yaml:"allow_js"`
	PackageJSON    bool               `json:"package_json" yaml:"package_json"`
	PackageManager string             `json:"package_manager" yaml:"package_manager"`
	Dependencies   []string           `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	TypeDefs       []string           `json:"type_definitions,omitempty" yaml:"type_definitions,omitempty"`
	MissingTypes   []string           `json:"missing_types,omitempty" yaml:"missing_types,omitempty"`
	Extensions     []string           `json:"extensions" yaml:"extensions"`
	Sources        state.SourceCounts `json:"sources" yaml:"sources"`
	Questions      []InspectQuestion  `json:"questions" yaml:"questions"`
	Warnings       []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// InspectQuestion is a question that applies before any answer is given.
type InspectQuestion struct {
	ID     string `json:"id" yaml:"id"`
	Prompt string `json:"prompt" yaml:"prompt"`
}

// runInspect prints the report for the service's project.
func runInspect(cmd *cobra.Command, service *AssistService) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	st, err := service.inspector.Inspect(cmd.Context())
	if err != nil {
		return err
	}
	pm, err := service.PackageManager(st)
	if err != nil {
		return err
	}

	report := buildInspectReport(st, service.engine.Applicable(st, questions.Answers{}))
	report.PackageManager = pm.String()

	return output.NewWriter(cmd.OutOrStdout(), format).Write(report)
}

func buildInspectReport(st *state.State, applicable []questions.Question) *InspectReport {
	report := &InspectReport{
		Directory:    st.Dir,
		JSConfig:     st.HasJSConfig(),
		TSConfig:     st.HasTSConfig(),
		AllowJs:      st.TSConfigAllowsJS(),
		PackageJSON:  st.Manifest != nil,
		MissingTypes: st.MissingTypes,
		Sources:      st.Sources,
		Warnings:     st.Warnings,
	}
	if st.Extensions.Known() {
		report.Extensions = st.Extensions.Sorted()
	}
	if st.Dependencies != nil {
		report.Dependencies = st.Dependencies.RuntimeNames()
		report.TypeDefs = st.Dependencies.TypesNames()
	}
	for _, q := range applicable {
		report.Questions = append(report.Questions, InspectQuestion{ID: q.ID.String(), Prompt: q.Prompt})
	}
	return report
}

// WriteText implements output.TextWriter.
func (r *InspectReport) WriteText(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "Project: %s\n", r.Directory)
	_, _ = fmt.Fprintf(w, "  jsconfig.json: %s\n", presence(r.JSConfig))
	if r.TSConfig {
		_, _ = fmt.Fprintf(w, "  tsconfig.json: present (allowJs: %t)\n", r.AllowJs)
	} else {
		_, _ = fmt.Fprintf(w, "  tsconfig.json: %s\n", presence(false))
	}
	_, _ = fmt.Fprintf(w, "  package.json: %s\n", presence(r.PackageJSON))
	_, _ = fmt.Fprintf(w, "  Package manager: %s\n", r.PackageManager)
	_, _ = fmt.Fprintf(w, "  Sources: %d JavaScript, %d TypeScript\n", r.Sources.JavaScript, r.Sources.TypeScript)

	if len(r.Dependencies) > 0 {
		_, _ = fmt.Fprintf(w, "  Dependencies: %s\n", strings.Join(r.Dependencies, ", "))
	}
	if len(r.MissingTypes) > 0 {
		_, _ = fmt.Fprintf(w, "  Missing type definitions: %s\n", strings.Join(r.MissingTypes, ", "))
	}
	if r.Extensions == nil {
		_, _ = fmt.Fprintln(w, "  Extensions: unknown")
	} else {
		_, _ = fmt.Fprintf(w, "  Extensions: %d installed\n", len(r.Extensions))
	}

	for _, warning := range r.Warnings {
		_, _ = fmt.Fprintf(w, "  Warning: %s\n", warning)
	}

	if len(r.Questions) == 0 {
		_, err := fmt.Fprintln(w, "\nNothing to ask.")
		return err
	}
	_, _ = fmt.Fprintln(w, "\nQuestions:")
	for _, q := range r.Questions {
		_, _ = fmt.Fprintf(w, "  - %s: %s\n", q.ID, q.Prompt)
	}
	return nil
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "absent"
}
