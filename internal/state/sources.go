package state

import (
	"context"
	"io/fs"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Source file patterns, relative to the project directory.
const (
	JavaScriptPattern = "**/*.{js,jsx,mjs,cjs}"
	TypeScriptPattern = "**/*.{ts,tsx,mts,cts}"
	DeclarationSuffix = ".d.ts"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// SourceCounts is the number of JavaScript and TypeScript sources found.
type SourceCounts struct {
	JavaScript int `json:"javascript" yaml:"javascript"`
	TypeScript int `json:"typescript" yaml:"typescript"`
}

// SourceScanner counts JS/TS sources below Dir.
type SourceScanner struct {
	Dir string
}

// Scan walks the project, skipping node_modules and .git.
// Declaration files (*.d.ts) are not counted.
func (s *SourceScanner) Scan(ctx context.Context) (SourceCounts, error) {
	var counts SourceCounts
	fsys := os.DirFS(s.Dir)

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != "." && skippedDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		switch {
		case matches(JavaScriptPattern, path):
			counts.JavaScript++
		case matches(TypeScriptPattern, path) && !isDeclaration(path):
			counts.TypeScript++
		}
		return nil
	})

	return counts, err
}

func matches(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}

func isDeclaration(path string) bool {
	return strings.HasSuffix(path, DeclarationSuffix)
}
