package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputPath validates a file path an exporter is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}

// ValidateColor performs a cheap shape check on a user supplied colour
// before it reaches a renderer: no line breaks, quotes or markup.
// Full CSS parsing happens in the style package.
func ValidateColor(c string) error {
	if c == "" {
		return nil
	}
	if strings.ContainsAny(c, "\t\r\n\"'<>&;") {
		return New(ErrCodeInvalidInput, "invalid colour %q", c)
	}
	return nil
}
