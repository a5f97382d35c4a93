package state

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/adamancini/jsassist/internal/jsondoc"
	"github.com/adamancini/jsassist/internal/packagejson"
	"github.com/adamancini/jsassist/internal/schema"
)

// FilesystemReader reads jsconfig.json, tsconfig.json and package.json from
// the project directory.
type FilesystemReader struct {
	Dir string
}

// Read implements Reader using filesystem access.
// Missing files leave the corresponding field nil. A file that exists but
// cannot be parsed is an error.
func (r *FilesystemReader) Read(ctx context.Context) (*State, error) {
	dir := r.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	state := &State{Dir: abs}

	if state.JSConfig, err = readOptional(filepath.Join(abs, JSConfigFile)); err != nil {
		return nil, err
	}
	if state.TSConfig, err = readOptional(filepath.Join(abs, TSConfigFile)); err != nil {
		return nil, err
	}

	manifestDoc, err := readOptional(packagejson.Path(abs))
	if err != nil {
		return nil, err
	}
	if manifestDoc != nil {
		state.Manifest = packagejson.New(manifestDoc)
	}

	state.Warnings = append(state.Warnings, checkSchema(schema.KindJSConfig, JSConfigFile, state.JSConfig)...)
	state.Warnings = append(state.Warnings, checkSchema(schema.KindTSConfig, TSConfigFile, state.TSConfig)...)
	state.Warnings = append(state.Warnings, checkSchema(schema.KindPackageJSON, packagejson.FileName, manifestDoc)...)

	return state, ctx.Err()
}

// readOptional parses path, returning nil without error when it does not exist.
func readOptional(path string) (*jsondoc.Object, error) {
	doc, err := jsondoc.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// checkSchema validates doc and formats issues as warnings.
func checkSchema(kind schema.Kind, name string, doc *jsondoc.Object) []string {
	if doc == nil {
		return nil
	}
	res, err := schema.Validate(kind, doc)
	if err != nil {
		return []string{fmt.Sprintf("%s: schema check skipped: %v", name, err)}
	}
	var warnings []string
	for _, issue := range res.Issues {
		warnings = append(warnings, fmt.Sprintf("%s: %s", name, issue))
	}
	return warnings
}
