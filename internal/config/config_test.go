package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adamancini/jsassist/internal/types"
)

func TestFindSettingsExplicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte(`editor = "code"`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := FindSettings(path)
	if err != nil || got != path {
		t.Errorf("FindSettings() = %q, %v", got, err)
	}

	if _, err := FindSettings(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit path")
	}
}

func TestFindSettingsXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("JSASSIST_CONFIG", "")

	got, err := FindSettings("")
	if err != nil {
		t.Fatalf("FindSettings() error = %v", err)
	}
	if got != "" {
		t.Errorf("FindSettings() = %q, want none", got)
	}

	dir := filepath.Join(xdg, "jsassist")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("editor: code\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err = FindSettings("")
	if err != nil || got != path {
		t.Errorf("FindSettings() = %q, %v, want %q", got, err, path)
	}
}

func TestFindSettingsEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jsassist.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JSASSIST_CONFIG", path)

	got, err := FindSettings("")
	if err != nil || got != path {
		t.Errorf("FindSettings() = %q, %v, want %q", got, err, path)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte("editor: codium\npackage_manager: yarn\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Editor != "codium" || s.PackageManager != types.PackageManagerYarn {
		t.Errorf("Load() = %+v", s)
	}
	// Unset fields fall back to the defaults.
	if s.Extensions.Lint != types.ExtensionESLint {
		t.Errorf("Extensions.Lint = %q, want default", s.Extensions.Lint)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *s != *Defaults() {
		t.Errorf("Load(\"\") = %+v, want defaults", s)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	invalid := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(invalid, []byte("package_manager: bower\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error for bower")
	}

	unknown := filepath.Join(dir, "config")
	if err := os.WriteFile(unknown, []byte("editor"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(unknown); err == nil {
		t.Error("expected format detection error")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
