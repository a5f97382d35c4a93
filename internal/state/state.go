// Package state inspects a JavaScript/TypeScript project directory and the
// editor's installed extensions.
package state

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/adamancini/jsassist/internal/jsondoc"
	"github.com/adamancini/jsassist/internal/packagejson"
	"github.com/adamancini/jsassist/internal/types"
)

// Project file names.
const (
	JSConfigFile = "jsconfig.json"
	TSConfigFile = "tsconfig.json"
	ESLintFile   = ".eslintrc"
)

// CompilerOptionsKey and AllowJSKey locate the allowJs flag in tsconfig.json.
const (
	CompilerOptionsKey = "compilerOptions"
	AllowJSKey         = "allowJs"
)

// State is the inspected project. It is built once by the Inspector and
// treated as read-only afterwards.
type State struct {
	Dir string

	JSConfig *jsondoc.Object // nil when jsconfig.json is absent
	TSConfig *jsondoc.Object // nil when tsconfig.json is absent
	Manifest *packagejson.Manifest

	// Extensions is nil when the editor could not be queried.
	Extensions ExtensionSet

	Dependencies *packagejson.DependencySets
	// PendingManifest is the manifest with missing @types packages added
	// to optionalDependencies. nil when nothing is missing.
	PendingManifest *packagejson.Manifest
	MissingTypes    []string

	Sources  SourceCounts
	Warnings []string
}

// HasJSConfig reports whether jsconfig.json exists.
func (s *State) HasJSConfig() bool {
	return s.JSConfig != nil
}

// HasTSConfig reports whether tsconfig.json exists.
func (s *State) HasTSConfig() bool {
	return s.TSConfig != nil
}

// TSConfigAllowsJS reports whether tsconfig.json has a truthy
// compilerOptions.allowJs. False when tsconfig.json is absent.
func (s *State) TSConfigAllowsJS() bool {
	if s.TSConfig == nil {
		return false
	}
	opts, ok := s.TSConfig.Object(CompilerOptionsKey)
	if !ok {
		return false
	}
	v, _ := opts.Get(AllowJSKey)
	return truthy(v)
}

// truthy mirrors JavaScript truthiness for decoded JSON values.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// ExtensionSet is the set of installed extension ids, lowercased.
type ExtensionSet map[types.ExtensionID]bool

// NewExtensionSet builds a set from ids.
func NewExtensionSet(ids ...types.ExtensionID) ExtensionSet {
	set := make(ExtensionSet, len(ids))
	for _, id := range ids {
		set[id.Normalize()] = true
	}
	return set
}

// Known reports whether the extension list could be read.
func (e ExtensionSet) Known() bool {
	return e != nil
}

// Has reports whether id is installed. Ids compare case-insensitively.
func (e ExtensionSet) Has(id types.ExtensionID) bool {
	return e[id.Normalize()]
}

// Sorted returns the ids in alphabetical order.
func (e ExtensionSet) Sorted() []string {
	ids := make([]string, 0, len(e))
	for id := range e {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return ids
}

// Reader reads part of the project state.
type Reader interface {
	Read(ctx context.Context) (*State, error)
}
