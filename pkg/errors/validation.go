package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateInputPath checks that path names an existing regular file.
// Directories and missing paths are rejected with ErrCodeInvalidPath so the
// CLI can skip them and keep processing the remaining arguments.
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "%s isn't a file", path)
	}
	if !info.Mode().IsRegular() {
		return New(ErrCodeInvalidPath, "%s isn't a file", path)
	}
	return nil
}

// ValidateIdentifier validates an element identifier used as a seed override
// or generated by the renumbering writer.
//
// Validation rules:
//   - Identifier cannot be empty
//   - Maximum length of 256 characters
//   - No whitespace, control characters, quotes or markup characters
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidConfig, "identifier cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidConfig, "identifier too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "identifier %q contains whitespace or control characters", id)
		}
	}

	if strings.ContainsAny(id, `<>&"'`) {
		return New(ErrCodeInvalidConfig, "identifier %q contains markup characters", id)
	}

	return nil
}

// ValidateBackupSuffix validates the suffix appended to the original file
// name when it is preserved before an overwrite.
func ValidateBackupSuffix(suffix string) error {
	if suffix == "" {
		return New(ErrCodeInvalidConfig, "backup suffix cannot be empty")
	}

	if strings.ContainsAny(suffix, "/\\\x00") {
		return New(ErrCodeInvalidConfig, "backup suffix cannot contain path separators")
	}

	return nil
}
