package state

import (
	"context"
	"fmt"

	"github.com/adamancini/jsassist/internal/output"
	"github.com/adamancini/jsassist/internal/packagejson"
)

// ExtensionLister lists the editor's installed extensions.
type ExtensionLister interface {
	ListExtensions(ctx context.Context) (ExtensionSet, error)
}

// Inspector builds the State the question table is evaluated against.
type Inspector struct {
	Files      Reader
	Extensions ExtensionLister
	Sources    *SourceScanner
	Log        *output.Logger
}

// NewInspector creates an Inspector for dir that queries editor.
func NewInspector(dir, editor string, log *output.Logger) *Inspector {
	return &Inspector{
		Files:      &FilesystemReader{Dir: dir},
		Extensions: NewCLIReader(editor),
		Sources:    &SourceScanner{Dir: dir},
		Log:        log,
	}
}

// Inspect reads the project files, classifies dependencies and lists the
// installed extensions. Only file read errors are returned; a failing
// extension listing leaves Extensions nil.
func (i *Inspector) Inspect(ctx context.Context) (*State, error) {
	state, err := i.Files.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect project: %w", err)
	}

	if err := classifyDependencies(state); err != nil {
		return nil, fmt.Errorf("failed to inspect project: %w", err)
	}

	if i.Sources != nil {
		scanner := *i.Sources
		scanner.Dir = state.Dir
		counts, err := scanner.Scan(ctx)
		if err != nil {
			i.Log.Verbosef("Source scan incomplete: %v", err)
		}
		state.Sources = counts
	}

	if i.Extensions != nil {
		set, err := i.Extensions.ListExtensions(ctx)
		if err != nil {
			i.Log.Verbosef("Extension check skipped: %v", err)
			set = nil
		}
		state.Extensions = set
	}

	return state, nil
}

// classifyDependencies fills Dependencies and, when some runtime package has
// no type definitions, PendingManifest.
func classifyDependencies(state *State) error {
	if state.Manifest == nil {
		return nil
	}
	state.Dependencies = packagejson.Classify(state.Manifest)

	pending, missing, err := state.Manifest.WithMissingTypes(state.Dependencies)
	if err != nil {
		return err
	}
	state.PendingManifest, state.MissingTypes = pending, missing
	return nil
}
