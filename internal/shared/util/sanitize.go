package util

import (
	"errors"
	"strings"
	"unicode"
)

// SanitizeFileName turns a display name into a single path segment safe for
// a Content-Disposition header. Traversal patterns are rejected.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || unicode.IsSpace(r):
			return '_'
		case r == '"' || r == ';' || unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	s = strings.Trim(s, "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
