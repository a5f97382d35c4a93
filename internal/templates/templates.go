// Package templates provides the embedded config file templates the assistant
// copies into a project.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed files/*.json
var templatesFS embed.FS

// Template names.
const (
	JSConfig = "jsconfig"
	ESLint   = "eslintrc"
)

// Template represents an embedded template with its destination file name.
type Template struct {
	Name        string
	Description string
	Destination string // file name relative to the project directory
	Content     []byte
}

var templateInfo = map[string]struct {
	description string
	destination string
}{
	JSConfig: {"JavaScript language service config", "jsconfig.json"},
	ESLint:   {"ESLint rules for the eslint extension", ".eslintrc"},
}

// List returns all available template names sorted alphabetically.
func List() []string {
	entries, err := templatesFS.ReadDir("files")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}

	sort.Strings(names)
	return names
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	content, err := templatesFS.ReadFile("files/" + name + ".json")
	if err != nil {
		if pathErr, ok := err.(*fs.PathError); ok {
			return nil, fmt.Errorf("template '%s' not found: %w", name, pathErr)
		}
		return nil, fmt.Errorf("failed to read template '%s': %w", name, err)
	}

	info := templateInfo[name]
	dest := info.destination
	if dest == "" {
		dest = name + ".json"
	}

	return &Template{
		Name:        name,
		Description: info.description,
		Destination: dest,
		Content:     content,
	}, nil
}

// GetDescription returns the description for a template.
func GetDescription(name string) string {
	if info, ok := templateInfo[name]; ok {
		return info.description
	}
	return "Custom template"
}

// Copy writes the named template into dir, overwriting any existing file.
// It returns the written path.
func Copy(name, dir string) (string, error) {
	tmpl, err := Get(name)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(dir, tmpl.Destination)
	if err := os.WriteFile(dest, tmpl.Content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return dest, nil
}
