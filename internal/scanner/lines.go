package scanner

import (
	"bytes"
	"log"
	"os"
	"unicode/utf8"
)

// CountLines sums line counts across files. Files that cannot be read or are
// not valid UTF-8 are skipped; a skip never aborts the scan.
func CountLines(files []string) int {
	total := 0
	for _, f := range files {
		content, ok := readText(f)
		if !ok {
			continue
		}
		total += countLines(content)
	}
	return total
}

// countLines matches the split-on-newlines semantic: trailing content without
// a final newline still counts as a line, and an empty file has zero lines.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

// readText reads a file as UTF-8 text. The second return is false when the
// file is unreadable or not valid text.
func readText(path string) ([]byte, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("scanner: could not read %s: %v", path, err)
		return nil, false
	}
	if !utf8.Valid(content) {
		log.Printf("scanner: %s is not valid UTF-8, skipping", path)
		return nil, false
	}
	return content, true
}
