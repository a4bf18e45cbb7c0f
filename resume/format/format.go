// Package format turns raw resume field values into display strings.
// Every function is pure and returns an empty string for input it cannot use.
package format

import (
	"net/url"
	"strings"
	"time"
)

const yearMonthLayout = "Jan 2006"

// Accepted input layouts, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"2006/01",
	"2006-1",
	"2006/1",
	yearMonthLayout,
	"January 2006",
}

// YearMonth formats a date-like value as "Jan 2021". It accepts its own
// output, so applying it twice gives the same string. Empty or unparseable
// input yields "".
func YearMonth(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(yearMonthLayout)
		}
	}
	return ""
}

// Range formats a start/end pair as "Jan 2020 – Mar 2022". When only one side
// formats, that side is returned alone.
func Range(start, end string) string {
	from, to := YearMonth(start), YearMonth(end)
	switch {
	case from != "" && to != "":
		return from + " – " + to
	case from != "":
		return from
	default:
		return to
	}
}

// Bullets splits newline-delimited text into trimmed lines, dropping blanks.
func Bullets(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// JoinTags comma-joins non-empty tags.
func JoinTags(tags []string) string {
	kept := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			kept = append(kept, tag)
		}
	}
	return strings.Join(kept, ", ")
}

// DisplayURL strips the scheme and any trailing slash: "https://ada.dev/" -> "ada.dev".
func DisplayURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "//"); i >= 0 && !strings.Contains(raw[:i], ".") {
		raw = raw[i+2:]
	}
	return strings.TrimSuffix(raw, "/")
}

// ProfileHandle returns the last non-empty path segment of a profile URL,
// e.g. "https://github.com/ada/" -> "ada". Bare handles are returned as-is.
func ProfileHandle(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	path := raw
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		path = u.Path
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	return segments[len(segments)-1]
}
