package parse

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultCountryCode is prepended to phone numbers submitted without an
// international prefix. The form's audience is German.
const DefaultCountryCode = "+49"

// FormatName canonicalizes a submitted name: trim, lower-case, then
// upper-case the first rune only. Multi-word names ("von Berg") and
// locale-specific capitalization are knowingly mishandled; the form
// asks for one name per field and this matches the upstream behavior.
func FormatName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// FormatPhone normalizes a phone number to +<country><number> form.
// Numbers already carrying a + prefix pass through unchanged; otherwise
// at most one leading zero is stripped and countryCode is prepended.
func FormatPhone(phone, countryCode string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return countryCode + strings.TrimPrefix(phone, "0")
}

var nonDigits = regexp.MustCompile(`\D`)

// ParseGuests extracts the party size from a raw field like
// "4 Personen". Non-digit characters are removed before parsing; an
// empty or unparsable result defaults to 1.
func ParseGuests(raw string) int {
	digits := nonDigits.ReplaceAllString(raw, "")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 1
	}
	return n
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// StripHTML removes tag-shaped substrings, decodes HTML entities, and
// trims surrounding whitespace.
func StripHTML(text string) string {
	clean := htmlTagPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(html.UnescapeString(clean))
}
