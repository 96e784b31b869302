package portfolio

import (
	"fmt"
	"strings"
	"time"
)

// Brokerage exports are not consistent about timestamp formatting: the same
// column can hold "2024-02-16", "2024-02-16 GMT+0800" or a full RFC3339
// instant depending on the platform that produced the file. The free-text
// timezone label in particular trips strict date parsers, so ParseTxTime
// normalizes first and only then falls back to the raw string.

// cleanedLayouts are tried against the normalized (slash-separated) string.
var cleanedLayouts = []string{
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006/1/2",
}

// rawLayouts are the second-attempt layouts for the unmodified input.
var rawLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTxTime parses a transaction timestamp from the export.
//
// It makes two attempts: first on a normalized copy of the input with any
// " GMT..." suffix stripped and dashes replaced by slashes, then on the
// original string. The result is always in UTC. Callers must skip the row
// (never abort the import) when both attempts fail.
func ParseTxTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	// Handle "2024-02-16 GMT+0800": the timezone label is free text, drop it.
	cleaned, _, _ := strings.Cut(s, " GMT")
	cleaned = strings.ReplaceAll(strings.TrimSpace(cleaned), "-", "/")

	for _, layout := range cleanedLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}

	// Last ditch attempt: the raw string may already be a well-formed
	// instant that the cleaning mangled.
	for _, layout := range rawLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
