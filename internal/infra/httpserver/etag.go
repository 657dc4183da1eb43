package httpserver

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GenerateETag computes a strong entity tag over the marshaled response body.
func GenerateETag(body []byte) string {
	return fmt.Sprintf("\"%x\"", md5.Sum(body))
}

// ETagMatches checks an If-None-Match header value against the current tag.
// Weak validators compare by content; "*" matches anything.
func ETagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}
