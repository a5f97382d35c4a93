// Package types provides type-safe constants for the jsassist question table,
// editor extensions, and package managers.
//
// This package centralizes the enumerated values used throughout the codebase,
// replacing magic strings with typed constants that provide validation methods.
//
// SYNC REQUIREMENT: These types must stay in sync with:
//   - internal/questions/questions.go (question table order)
//   - internal/config/validate.go (settings validation)
package types

import (
	"fmt"
	"regexp"
	"strings"
)

// QuestionID identifies one confirmation question of the assistant.
type QuestionID string

const (
	// QuestionCreateJSConfig offers to create jsconfig.json.
	QuestionCreateJSConfig QuestionID = "createJsConfig"
	// QuestionSetAllowJS offers to enable compilerOptions.allowJs in tsconfig.json.
	QuestionSetAllowJS QuestionID = "setAllowJs"
	// QuestionConfirmAllowJS re-asks after QuestionSetAllowJS was declined.
	QuestionConfirmAllowJS QuestionID = "confirmAllowJs"
	// QuestionAcquireTypes offers to add missing @types packages.
	QuestionAcquireTypes QuestionID = "acquireTypes"
	// QuestionInstallScriptRunner offers to install the npm script runner extension.
	QuestionInstallScriptRunner QuestionID = "installNpmScriptRunner"
	// QuestionInstallESLint offers to install the eslint extension.
	QuestionInstallESLint QuestionID = "installEsLint"
)

// AllQuestionIDs returns all question ids in evaluation order.
func AllQuestionIDs() []QuestionID {
	return []QuestionID{
		QuestionCreateJSConfig,
		QuestionSetAllowJS,
		QuestionConfirmAllowJS,
		QuestionAcquireTypes,
		QuestionInstallScriptRunner,
		QuestionInstallESLint,
	}
}

// Validate checks if the QuestionID is a known value.
func (q QuestionID) Validate() error {
	for _, id := range AllQuestionIDs() {
		if q == id {
			return nil
		}
	}
	if q == "" {
		return fmt.Errorf("question id is required")
	}
	return fmt.Errorf("unknown question id '%s'", q)
}

// String returns the string representation of the QuestionID.
func (q QuestionID) String() string {
	return string(q)
}

// IsInstall returns true if confirming the question leads to an installer spawn.
func (q QuestionID) IsInstall() bool {
	switch q {
	case QuestionAcquireTypes, QuestionInstallScriptRunner, QuestionInstallESLint:
		return true
	default:
		return false
	}
}

// ParseQuestionID parses a string into a QuestionID.
// Matching is case-insensitive because ids are camelCase.
func ParseQuestionID(s string) (QuestionID, error) {
	for _, id := range AllQuestionIDs() {
		if strings.EqualFold(s, string(id)) {
			return id, nil
		}
	}
	q := QuestionID(s)
	return "", q.Validate()
}

// ExtensionID is an editor marketplace extension identifier (publisher.name).
type ExtensionID string

const (
	// ExtensionScriptRunner is the npm script runner extension.
	ExtensionScriptRunner ExtensionID = "eg2.vscode-npm-script"
	// ExtensionESLint is the eslint extension.
	ExtensionESLint ExtensionID = "dbaeumer.vscode-eslint"
)

var extensionIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*\.[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Validate checks that the ExtensionID has the publisher.name shape.
func (e ExtensionID) Validate() error {
	if e == "" {
		return fmt.Errorf("extension id is required")
	}
	if !extensionIDPattern.MatchString(string(e)) {
		return fmt.Errorf("invalid extension id '%s' (must be publisher.name)", e)
	}
	return nil
}

// String returns the string representation of the ExtensionID.
func (e ExtensionID) String() string {
	return string(e)
}

// Normalize returns the lowercase form used for set membership.
// Editors report extension ids case-insensitively.
func (e ExtensionID) Normalize() ExtensionID {
	return ExtensionID(strings.ToLower(string(e)))
}

// PackageManager is the tool used to install dependencies.
type PackageManager string

const (
	// PackageManagerNPM is npm, the default.
	PackageManagerNPM PackageManager = "npm"
	// PackageManagerYarn is yarn.
	PackageManagerYarn PackageManager = "yarn"
	// PackageManagerPNPM is pnpm.
	PackageManagerPNPM PackageManager = "pnpm"
)

// AllPackageManagers returns all supported package managers.
func AllPackageManagers() []PackageManager {
	return []PackageManager{PackageManagerNPM, PackageManagerYarn, PackageManagerPNPM}
}

// Validate checks if the PackageManager is supported.
// Empty is valid and means "detect".
func (p PackageManager) Validate() error {
	switch p {
	case PackageManagerNPM, PackageManagerYarn, PackageManagerPNPM, "":
		return nil
	case "bower":
		return fmt.Errorf("package manager 'bower' is not supported")
	default:
		return fmt.Errorf("invalid package manager '%s' (must be npm, yarn, or pnpm)", p)
	}
}

// String returns the string representation of the PackageManager.
func (p PackageManager) String() string {
	return string(p)
}

// Default returns npm if empty, otherwise the current value.
func (p PackageManager) Default() PackageManager {
	if p == "" {
		return PackageManagerNPM
	}
	return p
}

// InstallArgs returns the arguments that install everything in package.json.
func (p PackageManager) InstallArgs() []string {
	return []string{"install"}
}

// ParsePackageManager parses a string into a PackageManager.
func ParsePackageManager(s string) (PackageManager, error) {
	pm := PackageManager(strings.ToLower(strings.TrimSpace(s)))
	if err := pm.Validate(); err != nil {
		return "", err
	}
	return pm, nil
}
