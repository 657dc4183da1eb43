package analysis

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates no stored analysis matches the query.
var ErrNotFound = errors.New("analysis not found")

// ErrNotStored indicates the insert reported no stored row; callers fall back
// to the in-memory record.
var ErrNotStored = errors.New("analysis not stored")

// InvalidPathError rejects a scan target before any analysis runs.
// Hint carries a remediation message surfaced to the caller.
type InvalidPathError struct {
	Path   string
	Reason string
	Hint   string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

// NewPathNotFoundError builds the missing-path error. When the process runs
// inside a container the hint explains the filesystem boundary.
func NewPathNotFoundError(path string, inContainer bool) *InvalidPathError {
	hint := "Ensure codebase_path is an absolute path to an existing directory"
	if inContainer {
		hint = "The server is running inside a container and cannot see host filesystem paths. " +
			"Mount the project directory as a volume (e.g. /host-filesystem/...) and use the mounted path, " +
			"or run the server directly on the host."
	}
	return &InvalidPathError{Path: path, Reason: "path does not exist", Hint: hint}
}

// NewNotDirectoryError builds the not-a-directory error.
func NewNotDirectoryError(path string) *InvalidPathError {
	return &InvalidPathError{
		Path:   path,
		Reason: "path is not a directory",
		Hint:   "codebase_path must point to the root directory of a project, not a file",
	}
}
