package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a settings validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the settings for required fields and valid values.
// All problems are reported together.
func Validate(s *Settings) error {
	var errors []string

	if strings.TrimSpace(s.Editor) == "" {
		errors = append(errors, ValidationError{
			Field:   "editor",
			Message: "editor is required",
		}.Error())
	}

	if err := s.PackageManager.Validate(); err != nil {
		errors = append(errors, ValidationError{
			Field:   "package_manager",
			Message: err.Error(),
		}.Error())
	}

	if err := s.Extensions.ScriptRunner.Validate(); err != nil {
		errors = append(errors, ValidationError{
			Field:   "extensions.script_runner",
			Message: err.Error(),
		}.Error())
	}

	if err := s.Extensions.Lint.Validate(); err != nil {
		errors = append(errors, ValidationError{
			Field:   "extensions.lint",
			Message: err.Error(),
		}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
