package packagejson

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/adamancini/jsassist/internal/types"
)

func mustParse(t *testing.T, data string) *Manifest {
	t.Helper()
	m, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return m
}

func TestClassify(t *testing.T) {
	m := mustParse(t, `{
		"dependencies": {"left-pad": "1.0.0", "@types/node": "^20"},
		"devDependencies": {"mocha": "*", "@types/mocha": "*"},
		"optionalDependencies": {"fsevents": "2"}
	}`)

	sets := Classify(m)

	if got, want := sets.RuntimeNames(), []string{"fsevents", "left-pad", "mocha"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RuntimeNames() = %v, want %v", got, want)
	}
	if got, want := sets.TypesNames(), []string{"@types/mocha", "@types/node"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TypesNames() = %v, want %v", got, want)
	}

	for name := range sets.Runtime {
		if sets.Types[name] {
			t.Errorf("%s present in both sets", name)
		}
	}
}

func TestClassifyNilAndMalformed(t *testing.T) {
	if sets := Classify(nil); len(sets.Runtime) != 0 || len(sets.Types) != 0 {
		t.Errorf("Classify(nil) = %+v, want empty", sets)
	}

	m := mustParse(t, `{"dependencies": "oops", "devDependencies": {"a": 1, "b": "1.0.0"}}`)
	sets := Classify(m)
	if got, want := sets.RuntimeNames(), []string{"b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RuntimeNames() = %v, want %v", got, want)
	}
}

func TestTypesPackageFor(t *testing.T) {
	tests := []struct {
		dep  string
		want string
	}{
		{"left-pad", "@types/left-pad"},
		{"express", "@types/express"},
		{"@babel/core", "@types/babel__core"},
		{"@weird", "@types/@weird"},
	}

	for _, tt := range tests {
		t.Run(tt.dep, func(t *testing.T) {
			if got := TypesPackageFor(tt.dep); got != tt.want {
				t.Errorf("TypesPackageFor(%q) = %q, want %q", tt.dep, got, tt.want)
			}
		})
	}
}

func TestMissingAllTyped(t *testing.T) {
	m := mustParse(t, `{
		"dependencies": {"express": "4", "@babel/core": "7"},
		"devDependencies": {"@types/express": "*"},
		"optionalDependencies": {"@types/babel__core": "*"}
	}`)

	sets := Classify(m)
	if missing := sets.Missing(); len(missing) != 0 {
		t.Errorf("Missing() = %v, want none", missing)
	}

	pending, added, err := m.WithMissingTypes(sets)
	if err != nil {
		t.Fatal(err)
	}
	if pending != nil || added != nil {
		t.Errorf("WithMissingTypes() = %v, %v, want nil, nil", pending, added)
	}
}

func TestWithMissingTypesLeftPad(t *testing.T) {
	m := mustParse(t, `{"name": "demo", "dependencies": {"left-pad": "1.0.0"}}`)
	sets := Classify(m)

	pending, added, err := m.WithMissingTypes(sets)
	if err != nil {
		t.Fatal(err)
	}
	if pending == nil {
		t.Fatal("expected a pending manifest")
	}
	if !reflect.DeepEqual(added, []string{"@types/left-pad"}) {
		t.Errorf("added = %v", added)
	}

	opt := pending.Dependencies(GroupOptionalDependencies)
	if !reflect.DeepEqual(opt, map[string]string{"@types/left-pad": "*"}) {
		t.Errorf("optionalDependencies = %v", opt)
	}

	// The original manifest is untouched.
	if m.Document().Has(GroupOptionalDependencies) {
		t.Error("original manifest gained optionalDependencies")
	}

	data, err := pending.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{
    "name": "demo",
    "dependencies": {
        "left-pad": "1.0.0"
    },
    "optionalDependencies": {
        "@types/left-pad": "*"
    }
}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
}

func TestWithMissingTypesAccumulates(t *testing.T) {
	m := mustParse(t, `{
		"dependencies": {"a": "1", "b": "1", "c": "1"},
		"devDependencies": {"@types/b": "*"},
		"optionalDependencies": {"fsevents": "2", "@types/fsevents": "*"}
	}`)

	pending, added, err := m.WithMissingTypes(Classify(m))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(added, []string{"@types/a", "@types/c"}) {
		t.Errorf("added = %v", added)
	}

	opt := pending.Dependencies(GroupOptionalDependencies)
	want := map[string]string{
		"fsevents":        "2",
		"@types/fsevents": "*",
		"@types/a":        "*",
		"@types/c":        "*",
	}
	if !reflect.DeepEqual(opt, want) {
		t.Errorf("optionalDependencies = %v, want %v", opt, want)
	}
	if _, ok := opt["@types/b"]; ok {
		t.Error("typed dependency b should not get an entry")
	}

	// Existing keys keep their order, new ones are appended.
	obj, _ := pending.Document().Object(GroupOptionalDependencies)
	if got := strings.Join(obj.Keys(), ","); got != "fsevents,@types/fsevents,@types/a,@types/c" {
		t.Errorf("optionalDependencies key order = %s", got)
	}
}

func TestReadFileAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir)
	if err := os.WriteFile(path, []byte(`{"name":"x","dependencies":{"lodash":"4"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if m.Name() != "x" {
		t.Errorf("Name() = %q", m.Name())
	}

	pending, _, err := m.WithMissingTypes(Classify(m))
	if err != nil {
		t.Fatal(err)
	}
	if err := pending.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	again, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.Dependencies(GroupOptionalDependencies)["@types/lodash"] != "*" {
		t.Error("@types/lodash not written")
	}
	if filepath.Base(path) != FileName {
		t.Errorf("Path() = %s", path)
	}
}

func TestParsePackageManagerSpec(t *testing.T) {
	tests := []struct {
		input   string
		want    types.PackageManager
		version string
		wantErr bool
	}{
		{"pnpm@8.6.0", types.PackageManagerPNPM, "8.6.0", false},
		{"yarn@4.1.0+sha512.deadbeef", types.PackageManagerYarn, "4.1.0", false},
		{"npm@10.2.4", types.PackageManagerNPM, "10.2.4", false},
		{"pnpm", "", "", true},
		{"bower@1.8.0", "", "", true},
		{"pnpm@latest", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := ParsePackageManagerSpec(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePackageManagerSpec(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if spec.Name != tt.want {
				t.Errorf("Name = %s, want %s", spec.Name, tt.want)
			}
			if spec.Version.String() != tt.version {
				t.Errorf("Version = %s, want %s", spec.Version, tt.version)
			}
		})
	}
}

func TestManifestPackageManager(t *testing.T) {
	spec, err := mustParse(t, `{"name": "x"}`).PackageManager()
	if err != nil || spec != nil {
		t.Errorf("absent field: spec = %v, err = %v", spec, err)
	}

	spec, err = mustParse(t, `{"packageManager": "pnpm@9.0.0"}`).PackageManager()
	if err != nil {
		t.Fatalf("PackageManager() error = %v", err)
	}
	if spec.String() != "pnpm@9.0.0" {
		t.Errorf("String() = %s", spec)
	}

	if _, err := mustParse(t, `{"packageManager": 3}`).PackageManager(); err == nil {
		t.Error("expected error for non-string packageManager")
	}
}
