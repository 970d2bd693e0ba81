package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputBase validates the base name (without extension) that
// rendered artifacts are written to.
//
// Validation rules:
//   - Base cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must name a file, not a directory (no trailing separator, not "." or "..")
func ValidateOutputBase(base string) error {
	if base == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}

	const maxPathLength = 500
	if len(base) > maxPathLength {
		return New(ErrCodeInvalidPath, "output name too long (max %d characters)", maxPathLength)
	}

	for _, r := range base {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output name contains invalid characters")
		}
	}

	if strings.HasSuffix(base, "/") || strings.HasSuffix(base, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output name must be a file, not a directory: %q", base)
	}

	switch filepath.Base(base) {
	case ".", "..":
		return New(ErrCodeInvalidPath, "output name must be a file, not a directory: %q", base)
	}

	return nil
}
