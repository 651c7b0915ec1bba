package parse

import (
	"regexp"
	"strings"
	"sync"
)

// Field extraction works on the labeled lines the reservation form
// emits, e.g. "Vorname: Maria". A label may carry a trailing required
// marker ("Telefon*:") which is tolerated but never part of the match.

var (
	patternMu sync.Mutex
	patterns  = map[string]*regexp.Regexp{}
)

// fieldPattern returns the compiled pattern for label, caching it so
// repeated scans do not recompile.
func fieldPattern(label string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()

	if re, ok := patterns[label]; ok {
		return re
	}

	re := regexp.MustCompile(regexp.QuoteMeta(label) + `\*?:[^\S\r\n]*([^\r\n]*)`)
	patterns[label] = re
	return re
}

// Extract locates the first occurrence of label followed by a colon in
// body and returns the trimmed text up to the end of that line. The
// second return value reports whether the label was found at all; a
// label that matches with empty trailing content yields ("", true).
func Extract(label, body string) (string, bool) {
	m := fieldPattern(label).FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// ExtractClean extracts the field for label, optionally stripping HTML
// markup from the captured text. When the label is absent, fallback is
// returned unmodified (no markup stripping is applied to it).
func ExtractClean(label, body, fallback string, stripMarkup bool) string {
	raw, ok := Extract(label, body)
	if !ok {
		return fallback
	}
	if stripMarkup {
		return StripHTML(raw)
	}
	return raw
}
