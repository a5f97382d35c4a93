package git

import (
	"fmt"
	"path/filepath"
)

// CheckResult holds git status results for the files about to be written.
type CheckResult struct {
	Dirty    []FileStatus // Tracked files with uncommitted changes
	Warnings []string     // Files whose local edits would be overwritten
	Info     []string     // Informational messages
}

// HasWarnings returns true if there are any warnings.
func (r *CheckResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// HasInfo returns true if there are any informational messages.
func (r *CheckResult) HasInfo() bool {
	return len(r.Info) > 0
}

// CheckFiles reports which of paths have uncommitted changes in dir.
// Untracked files are ignored. The check never fails the run: problems
// running git become Info messages.
func (c *Checker) CheckFiles(dir string, paths []string) *CheckResult {
	result := &CheckResult{}
	if len(paths) == 0 {
		return result
	}

	if !c.GitAvailable() {
		result.Info = append(result.Info, "git not available - skipping git status checks")
		return result
	}
	if !c.isGitRepo(dir) {
		return result
	}

	files := make([]string, 0, len(paths))
	for _, p := range paths {
		if rel, err := filepath.Rel(dir, p); err == nil {
			p = rel
		}
		files = append(files, filepath.ToSlash(p))
	}

	statuses, err := c.status(dir, files)
	if err != nil {
		result.Info = append(result.Info, fmt.Sprintf("could not check git status: %v", err))
		return result
	}

	for _, st := range statuses {
		if st.Untracked() {
			continue
		}
		result.Dirty = append(result.Dirty, st)
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s has uncommitted changes and will be overwritten", st.Path))
	}
	return result
}
