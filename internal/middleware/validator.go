package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// ValidateCodebasePath rejects obviously malformed scan targets before the
// orchestrator ever touches the filesystem. The orchestrator still performs
// the authoritative exists/is-directory check.
func ValidateCodebasePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("codebase_path cannot be empty")
	}

	// Null bytes break filesystem calls and have no legitimate use in paths
	if strings.ContainsRune(path, '\x00') {
		return fmt.Errorf("invalid characters in codebase_path")
	}

	return nil
}

// ValidateProjectID validates the optional external project identifier
func ValidateProjectID(projectID string) error {
	if projectID == "" {
		return fmt.Errorf("project ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars); covers UUIDs
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, projectID)
	if !matched {
		return fmt.Errorf("invalid project ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ClampPageSize validates pagination page size
func ClampPageSize(size int) int {
	if size <= 0 {
		return 20 // default
	}
	if size > 100 {
		return 100 // max
	}
	return size
}
