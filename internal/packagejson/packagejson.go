// Package packagejson reads package.json manifests and classifies their
// dependencies into runtime packages and type-definition packages.
package packagejson

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adamancini/jsassist/internal/jsondoc"
)

// FileName is the manifest file name inside a project directory.
const FileName = "package.json"

// TypesPrefix marks type-definition packages.
const TypesPrefix = "@types/"

// WildcardConstraint is the version range used for added type packages.
const WildcardConstraint = "*"

// Dependency groupings, in the order they are visited.
const (
	GroupDependencies         = "dependencies"
	GroupDevDependencies      = "devDependencies"
	GroupOptionalDependencies = "optionalDependencies"
)

// Groups returns the dependency groupings in visiting order.
func Groups() []string {
	return []string{GroupDependencies, GroupDevDependencies, GroupOptionalDependencies}
}

// Manifest is a parsed package.json that keeps the author's key order.
type Manifest struct {
	doc *jsondoc.Object
}

// New wraps an already parsed document.
func New(doc *jsondoc.Object) *Manifest {
	if doc == nil {
		doc = jsondoc.New()
	}
	return &Manifest{doc: doc}
}

// Parse parses package.json data.
func Parse(data []byte) (*Manifest, error) {
	doc, err := jsondoc.Parse(data)
	if err != nil {
		return nil, err
	}
	return New(doc), nil
}

// ReadFile parses a package.json file.
func ReadFile(path string) (*Manifest, error) {
	doc, err := jsondoc.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(doc), nil
}

// Document returns the underlying ordered document.
func (m *Manifest) Document() *jsondoc.Object {
	return m.doc
}

// Name returns the package name, or "" if unset.
func (m *Manifest) Name() string {
	name, _ := m.doc.Get("name")
	s, _ := name.(string)
	return s
}

// Dependencies returns the name -> range mapping of one grouping.
// Entries whose range is not a string are skipped; a missing or malformed
// grouping yields nil.
func (m *Manifest) Dependencies(group string) map[string]string {
	obj, ok := m.doc.Object(group)
	if !ok {
		return nil
	}
	deps := make(map[string]string, obj.Len())
	for _, name := range obj.Keys() {
		v, _ := obj.Get(name)
		if r, ok := v.(string); ok {
			deps[name] = r
		}
	}
	return deps
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	return &Manifest{doc: m.doc.Clone()}
}

// SetDependency sets name to rng in group, creating the grouping at the end
// of the document if absent. A non-object grouping is replaced.
func (m *Manifest) SetDependency(group, name, rng string) error {
	obj, ok := m.doc.Object(group)
	if !ok {
		obj = jsondoc.New()
		if err := m.doc.Set(group, obj); err != nil {
			return err
		}
	}
	return obj.Set(name, rng)
}

// Marshal renders the manifest with 4-space indentation.
func (m *Manifest) Marshal() ([]byte, error) {
	return m.doc.Marshal()
}

// WriteFile overwrites path with the rendered manifest.
func (m *Manifest) WriteFile(path string) error {
	return m.doc.WriteFile(path, 0644)
}

// IsTypesPackage reports whether name is a type-definition package.
func IsTypesPackage(name string) bool {
	return strings.HasPrefix(name, TypesPrefix)
}

// TypesPackageFor returns the type-definition package name for dep.
// Scoped packages follow the DefinitelyTyped convention:
// "@scope/pkg" becomes "@types/scope__pkg".
func TypesPackageFor(dep string) string {
	if strings.HasPrefix(dep, "@") {
		if scope, pkg, ok := strings.Cut(dep[1:], "/"); ok {
			return TypesPrefix + scope + "__" + pkg
		}
	}
	return TypesPrefix + dep
}

// DependencySets is the classification of a manifest's dependency names.
// Runtime and Types are disjoint.
type DependencySets struct {
	Runtime map[string]bool
	Types   map[string]bool
}

// Classify sorts every dependency name of every grouping into Runtime or Types.
func Classify(m *Manifest) *DependencySets {
	sets := &DependencySets{
		Runtime: make(map[string]bool),
		Types:   make(map[string]bool),
	}
	if m == nil {
		return sets
	}

	for _, group := range Groups() {
		for name := range m.Dependencies(group) {
			if IsTypesPackage(name) {
				sets.Types[name] = true
			} else {
				sets.Runtime[name] = true
			}
		}
	}
	return sets
}

// HasTypes reports whether dep's type-definition package is declared.
func (s *DependencySets) HasTypes(dep string) bool {
	return s.Types[TypesPackageFor(dep)]
}

// Missing returns the runtime dependencies without a type-definition entry, sorted.
func (s *DependencySets) Missing() []string {
	var missing []string
	for dep := range s.Runtime {
		if !s.HasTypes(dep) {
			missing = append(missing, dep)
		}
	}
	sort.Strings(missing)
	return missing
}

// RuntimeNames returns the runtime dependency names, sorted.
func (s *DependencySets) RuntimeNames() []string {
	return sortedKeys(s.Runtime)
}

// TypesNames returns the type-definition dependency names, sorted.
func (s *DependencySets) TypesNames() []string {
	return sortedKeys(s.Types)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithMissingTypes returns a copy of m whose optionalDependencies gain a
// wildcard entry for every missing type-definition package, plus the added
// package names. The copy is only made when something is missing; otherwise
// it returns nil, nil, nil.
//
// Entries are appended in alphabetical order of the runtime dependency, not
// in the order the dependencies appear in the manifest.
func (m *Manifest) WithMissingTypes(sets *DependencySets) (*Manifest, []string, error) {
	var pending *Manifest
	var added []string

	for _, dep := range sets.Missing() {
		if pending == nil {
			pending = m.Clone()
		}
		typesName := TypesPackageFor(dep)
		if err := pending.SetDependency(GroupOptionalDependencies, typesName, WildcardConstraint); err != nil {
			return nil, nil, fmt.Errorf("failed to add %s: %w", typesName, err)
		}
		added = append(added, typesName)
	}

	return pending, added, nil
}

// Path returns the manifest path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// String implements fmt.Stringer for log output.
func (m *Manifest) String() string {
	if name := m.Name(); name != "" {
		return fmt.Sprintf("package.json (%s)", name)
	}
	return "package.json"
}
