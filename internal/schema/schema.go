// Package schema validates project JSON documents (tsconfig.json, jsconfig.json,
// package.json, .eslintrc) against embedded JSON Schemas.
//
// Validation never blocks the assistant: issues are reported as warnings.
package schema

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/adamancini/jsassist/internal/jsondoc"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Kind selects the schema to validate against.
type Kind string

const (
	KindTSConfig    Kind = "tsconfig"
	KindJSConfig    Kind = "jsconfig"
	KindPackageJSON Kind = "package"
	KindESLint      Kind = "eslintrc"
)

// schemaFile maps a Kind to its embedded schema. jsconfig shares tsconfig's.
var schemaFile = map[Kind]string{
	KindTSConfig:    "tsconfig.schema.json",
	KindJSConfig:    "tsconfig.schema.json",
	KindPackageJSON: "package.schema.json",
	KindESLint:      "eslintrc.schema.json",
}

var (
	compileMu sync.Mutex
	compiled  = make(map[string]*jsonschema.Schema)
	printer   = message.NewPrinter(language.English)
)

// Result contains the outcome of a schema validation.
type Result struct {
	Valid  bool
	Issues []Issue
}

// Issue represents a single validation error.
type Issue struct {
	Path    string // Instance location (e.g., "/compilerOptions/allowJs")
	Message string
	Keyword string
}

// String formats the issue as "path: message".
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// getSchema compiles the embedded schema for kind once.
func getSchema(kind Kind) (*jsonschema.Schema, error) {
	name, ok := schemaFile[kind]
	if !ok {
		return nil, fmt.Errorf("unknown schema kind %q", kind)
	}

	compileMu.Lock()
	defer compileMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}

	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema %s: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	s, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}
	compiled[name] = s
	return s, nil
}

// Validate checks doc against the schema for kind.
// The error return is for schema compilation failures only.
func Validate(kind Kind, doc *jsondoc.Object) (*Result, error) {
	if doc == nil {
		return &Result{Valid: true}, nil
	}

	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return ValidateBytes(kind, data)
}

// ValidateBytes checks raw JSON (or JSONC) against the schema for kind.
func ValidateBytes(kind Kind, data []byte) (*Result, error) {
	s, err := getSchema(kind)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	data, err = jsondoc.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = s.Validate(inst)
	if err == nil {
		return &Result{Valid: true}, nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &Result{Valid: false, Issues: extractIssues(ve)}, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	collectIssues(ve, &issues)

	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}
	return deduplicate(issues)
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	keyword := ""
	msg := ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}

	// Container keywords carry no useful detail on their own.
	if keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
		return
	}

	*issues = append(*issues, Issue{Path: path, Message: msg, Keyword: keyword})
}

func deduplicate(issues []Issue) []Issue {
	seen := make(map[string]bool)
	var result []Issue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
