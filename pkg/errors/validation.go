package errors

import (
	"slices"
	"strings"
	"unicode"
)

// Templates lists the skeleton configurations a new test can start from.
var Templates = []string{"nogui", "2d", "3d"}

// ValidateTestName validates a test name relative to the tests directory.
// It rejects names that would escape that directory.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 256 characters
//   - No null bytes or control characters
//   - No absolute paths
//   - No path traversal sequences (..)
//   - No backslashes
func ValidateTestName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "test name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPath, "test name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "test name contains invalid control characters")
		}
	}

	if strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidPath, "test name must be relative (cannot start with /)")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "test name cannot contain path traversal sequences (..)")
	}

	if strings.Contains(name, "\\") {
		return New(ErrCodeInvalidPath, "test name cannot contain backslashes")
	}

	return nil
}

// ValidateTemplate checks that template names a known skeleton.
func ValidateTemplate(template string) error {
	if !slices.Contains(Templates, template) {
		return New(ErrCodeInvalidTemplate, "invalid template: %q (must be one of %s)", template, strings.Join(Templates, ", "))
	}
	return nil
}
