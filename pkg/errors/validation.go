package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputPath validates an output file path for a rendered plat.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must carry a file extension (used to pick the image format)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "output path too long (max 500 characters)")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid control characters")
		}
	}
	if filepath.Ext(path) == "" {
		return New(ErrCodeInvalidPath, "output path %q has no file extension", path)
	}
	return nil
}

// ValidatePresetName validates a settings preset name.
// Preset names are simple lowercase identifiers; path components are rejected.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSettings, "preset name cannot be empty")
	}
	if strings.ContainsAny(name, `/\.`) {
		return New(ErrCodeInvalidSettings, "preset name %q cannot contain path characters", name)
	}
	for _, r := range name {
		if !(unicode.IsLower(r) || unicode.IsDigit(r) || r == '_') {
			return New(ErrCodeInvalidSettings, "preset name %q must be lowercase letters, digits or underscores", name)
		}
	}
	return nil
}
