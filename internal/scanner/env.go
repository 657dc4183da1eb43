package scanner

import "os"

// InContainer reports whether the process runs inside a Docker container,
// using the standard markers: the /.dockerenv file or the DOCKER_CONTAINER
// environment variable.
func InContainer() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return os.Getenv("DOCKER_CONTAINER") != ""
}
