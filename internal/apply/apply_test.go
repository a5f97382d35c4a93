package apply

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/adamancini/jsassist/internal/jsondoc"
	"github.com/adamancini/jsassist/internal/questions"
	"github.com/adamancini/jsassist/internal/state"
	"github.com/adamancini/jsassist/internal/templates"
	"github.com/adamancini/jsassist/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func inspect(t *testing.T, dir string) *state.State {
	t.Helper()
	insp := &state.Inspector{Files: &state.FilesystemReader{Dir: dir}}
	s, err := insp.Inspect(context.Background())
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	return s
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestApplyEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	s := inspect(t, dir)

	answers, err := questions.Evaluate(s, questions.AssumeYes)
	if err != nil {
		t.Fatal(err)
	}

	result, err := NewExecutor().Apply(s, answers)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(result.Installs) != 0 {
		t.Errorf("Installs = %v, want none", result.Installs)
	}
	if got := listDir(t, dir); !reflect.DeepEqual(got, []string{"jsconfig.json"}) {
		t.Errorf("directory = %v, want only jsconfig.json", got)
	}

	written, err := os.ReadFile(filepath.Join(dir, "jsconfig.json"))
	if err != nil {
		t.Fatal(err)
	}
	tmpl, _ := templates.Get(templates.JSConfig)
	if !bytes.Equal(written, tmpl.Content) {
		t.Error("jsconfig.json differs from template")
	}
	if result.Operations[0].Action != ActionCreate || !result.Operations[0].Success {
		t.Errorf("Operation = %+v", result.Operations[0])
	}
}

func TestApplyAllowJSRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tsconfig.json", `{
  "compilerOptions": {"target": "ES2020", "strict": true, "paths": {"@/*": ["src/*"]}},
  "include": ["src"]
}`)
	s := inspect(t, dir)

	if _, err := NewExecutor().Apply(s, questions.Answers{types.QuestionSetAllowJS: true}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	doc, err := jsondoc.ReadFile(filepath.Join(dir, "tsconfig.json"))
	if err != nil {
		t.Fatal(err)
	}
	opts, ok := doc.Object("compilerOptions")
	if !ok {
		t.Fatal("compilerOptions missing")
	}
	if v, _ := opts.Get("allowJs"); v != true {
		t.Errorf("allowJs = %v, want true", v)
	}
	if got := strings.Join(opts.Keys(), ","); got != "target,strict,paths,allowJs" {
		t.Errorf("compilerOptions keys = %s", got)
	}
	if got := strings.Join(doc.Keys(), ","); got != "compilerOptions,include" {
		t.Errorf("top-level keys = %s", got)
	}

	// The inspected document is not mutated.
	if s.TSConfigAllowsJS() {
		t.Error("Apply mutated the inspected tsconfig")
	}
}

func TestApplyConfirmAllowJSIsSameWrite(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	for _, dir := range []string{first, second} {
		writeFile(t, dir, "tsconfig.json", `{"include": ["src"]}`)
	}

	if _, err := NewExecutor().Apply(inspect(t, first), questions.Answers{types.QuestionSetAllowJS: true}); err != nil {
		t.Fatal(err)
	}
	declinedThenConfirmed := questions.Answers{
		types.QuestionSetAllowJS:     false,
		types.QuestionConfirmAllowJS: true,
	}
	if _, err := NewExecutor().Apply(inspect(t, second), declinedThenConfirmed); err != nil {
		t.Fatal(err)
	}

	a, _ := os.ReadFile(filepath.Join(first, "tsconfig.json"))
	b, _ := os.ReadFile(filepath.Join(second, "tsconfig.json"))
	if !bytes.Equal(a, b) {
		t.Errorf("writes differ:\n%s\n%s", a, b)
	}
	want := "{\n    \"include\": [\n        \"src\"\n    ],\n    \"compilerOptions\": {\n        \"allowJs\": true\n    }\n}"
	if string(a) != want {
		t.Errorf("tsconfig.json =\n%s\nwant\n%s", a, want)
	}
}

func TestApplyReplacesNonObjectCompilerOptions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tsconfig.json", `{"compilerOptions": null}`)

	if _, err := NewExecutor().Apply(inspect(t, dir), questions.Answers{types.QuestionSetAllowJS: true}); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(filepath.Join(dir, "tsconfig.json"))
	want := "{\n    \"compilerOptions\": {\n        \"allowJs\": true\n    }\n}"
	if string(got) != want {
		t.Errorf("tsconfig.json = %s", got)
	}
}

func TestApplyLeftPad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {"left-pad": "1.0.0"}}`)
	s := inspect(t, dir)

	result, err := NewExecutor().Apply(s, questions.Answers{types.QuestionAcquireTypes: true})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !reflect.DeepEqual(result.Installs, []types.QuestionID{types.QuestionAcquireTypes}) {
		t.Errorf("Installs = %v", result.Installs)
	}

	got, _ := os.ReadFile(filepath.Join(dir, "package.json"))
	want := `{
    "dependencies": {
        "left-pad": "1.0.0"
    },
    "optionalDependencies": {
        "@types/left-pad": "*"
    }
}`
	if string(got) != want {
		t.Errorf("package.json =\n%s\nwant\n%s", got, want)
	}
}

func TestApplyESLint(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jsconfig.json", `{}`)
	s := inspect(t, dir)

	answers := questions.Answers{
		types.QuestionInstallScriptRunner: true,
		types.QuestionInstallESLint:       true,
	}
	result, err := NewExecutor().Apply(s, answers)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".eslintrc")); err != nil {
		t.Errorf(".eslintrc not written: %v", err)
	}
	want := []types.QuestionID{types.QuestionInstallScriptRunner, types.QuestionInstallESLint}
	if !reflect.DeepEqual(result.Installs, want) {
		t.Errorf("Installs = %v, want %v", result.Installs, want)
	}
	if result.Written() != 1 {
		t.Errorf("Written() = %d, want 1", result.Written())
	}
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	s := &state.State{
		Dir:      filepath.Join(t.TempDir(), "missing"),
		TSConfig: jsondoc.New(),
	}
	answers := questions.Answers{
		types.QuestionSetAllowJS:    true,
		types.QuestionInstallESLint: true,
	}

	result, err := NewExecutor().Apply(s, answers)
	if err == nil {
		t.Fatal("expected write error")
	}
	if !strings.Contains(err.Error(), "tsconfig.json") {
		t.Errorf("error = %v", err)
	}
	if len(result.Operations) != 1 || result.Operations[0].Success || result.Operations[0].Error == "" {
		t.Errorf("Operations = %+v", result.Operations)
	}
}

func TestApplyNothingConfirmed(t *testing.T) {
	dir := t.TempDir()
	s := inspect(t, dir)

	result, err := NewExecutor().Apply(s, questions.Answers{types.QuestionCreateJSConfig: false})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Operations) != 0 || len(listDir(t, dir)) != 0 {
		t.Errorf("declined question wrote files: %+v", result)
	}
}

func TestTargets(t *testing.T) {
	s := &state.State{Dir: "/p"}
	answers := questions.Answers{
		types.QuestionConfirmAllowJS: true,
		types.QuestionAcquireTypes:   true,
		types.QuestionInstallESLint:  true,
	}
	want := []string{
		filepath.Join("/p", "tsconfig.json"),
		filepath.Join("/p", "package.json"),
		filepath.Join("/p", ".eslintrc"),
	}
	if got := Targets(s, answers); !reflect.DeepEqual(got, want) {
		t.Errorf("Targets() = %v, want %v", got, want)
	}
}
