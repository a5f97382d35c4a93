package packagejson

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/adamancini/jsassist/internal/types"
)

// PackageManagerField is the corepack "packageManager" key.
const PackageManagerField = "packageManager"

// PackageManagerSpec is a parsed "packageManager" value such as "pnpm@8.6.0".
type PackageManagerSpec struct {
	Name    types.PackageManager
	Version *semver.Version
}

// String returns name@version.
func (s PackageManagerSpec) String() string {
	if s.Version == nil {
		return s.Name.String()
	}
	return s.Name.String() + "@" + s.Version.String()
}

// ParsePackageManagerSpec parses "name@version[+hash]".
func ParsePackageManagerSpec(value string) (*PackageManagerSpec, error) {
	name, version, ok := strings.Cut(strings.TrimSpace(value), "@")
	if !ok || name == "" || version == "" {
		return nil, fmt.Errorf("invalid packageManager %q (expected name@version)", value)
	}

	pm, err := types.ParsePackageManager(name)
	if err != nil {
		return nil, fmt.Errorf("invalid packageManager %q: %w", value, err)
	}

	// Strip the integrity hash corepack appends: pnpm@8.6.0+sha512.abc
	version, _, _ = strings.Cut(version, "+sha")
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid packageManager version %q: %w", version, err)
	}

	return &PackageManagerSpec{Name: pm, Version: v}, nil
}

// PackageManager returns the parsed "packageManager" field.
// The first result is nil when the field is absent.
func (m *Manifest) PackageManager() (*PackageManagerSpec, error) {
	v, ok := m.doc.Get(PackageManagerField)
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("invalid packageManager: expected string, got %T", v)
	}
	return ParsePackageManagerSpec(s)
}
