package git

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

// MockCommandRunner mocks command execution for testing.
type MockCommandRunner struct {
	// Commands maps "dir:command args..." to output
	Commands map[string]struct {
		Output []byte
		Error  error
	}
}

// NewMockCommandRunner creates a new MockCommandRunner.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		Commands: make(map[string]struct {
			Output []byte
			Error  error
		}),
	}
}

// AddCommand adds a command response.
func (m *MockCommandRunner) AddCommand(dir, cmd string, output []byte, err error) {
	key := dir + ":" + cmd
	m.Commands[key] = struct {
		Output []byte
		Error  error
	}{Output: output, Error: err}
}

// Run executes a command (not in a specific directory).
func (m *MockCommandRunner) Run(name string, args ...string) ([]byte, error) {
	return m.RunInDir("", name, args...)
}

// RunInDir executes a command in a directory.
func (m *MockCommandRunner) RunInDir(dir, name string, args ...string) ([]byte, error) {
	cmd := name
	for _, arg := range args {
		cmd += " " + arg
	}
	key := dir + ":" + cmd
	if resp, ok := m.Commands[key]; ok {
		return resp.Output, resp.Error
	}
	// Also try without dir for global commands
	key = ":" + cmd
	if resp, ok := m.Commands[key]; ok {
		return resp.Output, resp.Error
	}
	return nil, errors.New("command not mocked: " + key)
}

func TestCheckerGitAvailable(t *testing.T) {
	tests := []struct {
		name      string
		gitOutput []byte
		gitError  error
		want      bool
	}{
		{
			name:      "git available",
			gitOutput: []byte("git version 2.40.0"),
			want:      true,
		},
		{
			name:     "git not available",
			gitError: errors.New("git not found"),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockCommandRunner()
			mock.AddCommand("", "git --version", tt.gitOutput, tt.gitError)

			checker := NewCheckerWithRunner(mock)
			if got := checker.GitAvailable(); got != tt.want {
				t.Errorf("GitAvailable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePorcelain(t *testing.T) {
	output := " M tsconfig.json\n?? jsconfig.json\nR  old.json -> package.json\nMM \"src dir/.eslintrc\"\n\n"

	want := []FileStatus{
		{Path: "tsconfig.json", Code: " M"},
		{Path: "jsconfig.json", Code: "??"},
		{Path: "package.json", Code: "R "},
		{Path: filepath.FromSlash("src dir/.eslintrc"), Code: "MM"},
	}
	if got := parsePorcelain(output); !reflect.DeepEqual(got, want) {
		t.Errorf("parsePorcelain() = %+v, want %+v", got, want)
	}
}

func TestCheckFiles(t *testing.T) {
	dir := "/project"
	paths := []string{filepath.Join(dir, "tsconfig.json"), filepath.Join(dir, "package.json")}
	statusCmd := "git status --porcelain -- tsconfig.json package.json"

	tests := []struct {
		name      string
		setup     func(m *MockCommandRunner)
		wantDirty []string
		wantInfo  bool
	}{
		{
			name: "git not available",
			setup: func(m *MockCommandRunner) {
				m.AddCommand("", "git --version", nil, errors.New("not found"))
			},
			wantInfo: true,
		},
		{
			name: "not a repository",
			setup: func(m *MockCommandRunner) {
				m.AddCommand("", "git --version", []byte("git version 2.40.0"), nil)
				m.AddCommand(dir, "git rev-parse --is-inside-work-tree", nil, errors.New("fatal: not a git repository"))
			},
		},
		{
			name: "clean",
			setup: func(m *MockCommandRunner) {
				m.AddCommand("", "git --version", []byte("git version 2.40.0"), nil)
				m.AddCommand(dir, "git rev-parse --is-inside-work-tree", []byte("true\n"), nil)
				m.AddCommand(dir, statusCmd, []byte(""), nil)
			},
		},
		{
			name: "dirty tsconfig",
			setup: func(m *MockCommandRunner) {
				m.AddCommand("", "git --version", []byte("git version 2.40.0"), nil)
				m.AddCommand(dir, "git rev-parse --is-inside-work-tree", []byte("true\n"), nil)
				m.AddCommand(dir, statusCmd, []byte(" M tsconfig.json\n?? package.json\n"), nil)
			},
			wantDirty: []string{"tsconfig.json"},
		},
		{
			name: "status failure",
			setup: func(m *MockCommandRunner) {
				m.AddCommand("", "git --version", []byte("git version 2.40.0"), nil)
				m.AddCommand(dir, "git rev-parse --is-inside-work-tree", []byte("true\n"), nil)
				m.AddCommand(dir, statusCmd, nil, errors.New("index locked"))
			},
			wantInfo: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockCommandRunner()
			tt.setup(mock)

			result := NewCheckerWithRunner(mock).CheckFiles(dir, paths)

			var dirty []string
			for _, st := range result.Dirty {
				dirty = append(dirty, st.Path)
			}
			if !reflect.DeepEqual(dirty, tt.wantDirty) {
				t.Errorf("Dirty = %v, want %v", dirty, tt.wantDirty)
			}
			if result.HasWarnings() != (len(tt.wantDirty) > 0) {
				t.Errorf("Warnings = %v", result.Warnings)
			}
			if result.HasInfo() != tt.wantInfo {
				t.Errorf("Info = %v, want info %v", result.Info, tt.wantInfo)
			}
		})
	}
}

func TestCheckFilesNoPaths(t *testing.T) {
	mock := NewMockCommandRunner()
	result := NewCheckerWithRunner(mock).CheckFiles("/project", nil)
	if result.HasWarnings() || result.HasInfo() {
		t.Errorf("result = %+v, want empty", result)
	}
}
