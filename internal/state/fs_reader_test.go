package state

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFilesystemReaderEmptyDir(t *testing.T) {
	dir := t.TempDir()

	s, err := (&FilesystemReader{Dir: dir}).Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if s.JSConfig != nil || s.TSConfig != nil || s.Manifest != nil {
		t.Errorf("Read() on empty dir = %+v, want no documents", s)
	}
	if len(s.Warnings) != 0 {
		t.Errorf("Warnings = %v", s.Warnings)
	}
	if !filepath.IsAbs(s.Dir) {
		t.Errorf("Dir = %s, want absolute", s.Dir)
	}
}

func TestFilesystemReaderReadsDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jsconfig.json", `{"compilerOptions": {"target": "ES6"}}`)
	writeFile(t, dir, "tsconfig.json", "{\n  // comment\n  \"compilerOptions\": {\"strict\": true},\n}")
	writeFile(t, dir, "package.json", `{"name": "demo", "dependencies": {"left-pad": "1.0.0"}}`)

	s, err := (&FilesystemReader{Dir: dir}).Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !s.HasJSConfig() || !s.HasTSConfig() {
		t.Error("config documents not read")
	}
	if s.Manifest == nil || s.Manifest.Name() != "demo" {
		t.Errorf("Manifest = %v", s.Manifest)
	}
	opts, ok := s.TSConfig.Object("compilerOptions")
	if !ok || !opts.Bool("strict") {
		t.Error("tsconfig compilerOptions not parsed")
	}
}

func TestFilesystemReaderInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tsconfig.json", `{"compilerOptions": `)

	_, err := (&FilesystemReader{Dir: dir}).Read(context.Background())
	if err == nil {
		t.Fatal("expected error for invalid tsconfig.json")
	}
	if !strings.Contains(err.Error(), "tsconfig.json") {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestFilesystemReaderSchemaWarnings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tsconfig.json", `{"compilerOptions": {"allowJs": "yes"}}`)
	writeFile(t, dir, "package.json", `{"dependencies": {"a": 1}}`)

	s, err := (&FilesystemReader{Dir: dir}).Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(s.Warnings) != 2 {
		t.Fatalf("Warnings = %v, want 2", s.Warnings)
	}
	if !strings.HasPrefix(s.Warnings[0], "tsconfig.json: /compilerOptions/allowJs") {
		t.Errorf("Warnings[0] = %q", s.Warnings[0])
	}
	if !strings.HasPrefix(s.Warnings[1], "package.json: /dependencies/a") {
		t.Errorf("Warnings[1] = %q", s.Warnings[1])
	}
}
