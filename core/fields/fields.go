// Package fields parses the raw text of newsletter fields into typed values
// and derives the slug used to name every artifact of an issue.
//
// Parse failures are never errors: an unparseable field becomes nil and
// processing carries on.
package fields

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNames = [...]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// lookupMonth accepts full month names and prefixes of at least three
// letters ("Mar", "Sept").
func lookupMonth(word string) (time.Month, bool) {
	w := strings.ToLower(word)
	if len(w) < 3 {
		return 0, false
	}
	for i, name := range monthNames {
		if strings.HasPrefix(name, w) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// monthYearRegex matches "<month name> <four digit year>", tolerating a
// trailing period or comma after abbreviations ("Sept. 2024", "Mar, 2024").
var monthYearRegex = regexp.MustCompile(`(?i)\b([a-z]+)[.,]?\s+(\d{4})\b`)

// ParseDate reads a month and year from text and returns the first day of
// that month in UTC. It returns nil when no month/year pair is found.
func ParseDate(text string) *time.Time {
	for _, m := range monthYearRegex.FindAllStringSubmatch(text, -1) {
		month, ok := lookupMonth(m[1])
		if !ok {
			continue
		}
		year, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return &d
	}
	return nil
}

// ParseIssueNumber reads the issue number from the second whitespace
// delimited token of text ("Issue 42" -> 42). Like parseInt, only the
// leading digits of the token count, so "42," is 42 and "#42" is nil.
func ParseIssueNumber(text string) *int {
	tokens := strings.Fields(text)
	if len(tokens) < 2 {
		return nil
	}
	tok := tokens[1]
	end := 0
	if end < len(tok) && (tok[0] == '-' || tok[0] == '+') {
		end++
	}
	digits := end
	for end < len(tok) && tok[end] >= '0' && tok[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	n, err := strconv.Atoi(tok[:end])
	if err != nil {
		return nil
	}
	return &n
}

// Slug derives the artifact base name from the issue date and number.
// month is the zero-based month index (0 = January). The result only
// contains [a-z0-9-].
func Slug(year, month int, issue *int) string {
	base := fmt.Sprintf("%04d-%02d", year, month+1)
	if issue == nil {
		return base
	}
	return fmt.Sprintf("%s-issue-%d", base, *issue)
}

// SlugFor derives the slug for a parsed record. Records without a date fall
// back to "undated-issue-<N>", and records with neither date nor issue number
// fall back to the sanitized base name of the source file.
func SlugFor(date *time.Time, issue *int, source string) string {
	switch {
	case date != nil:
		return Slug(date.Year(), int(date.Month())-1, issue)
	case issue != nil:
		return fmt.Sprintf("undated-issue-%d", *issue)
	default:
		name := filepath.Base(source)
		return Sanitize(strings.TrimSuffix(name, filepath.Ext(name)))
	}
}

// Sanitize lowercases s and replaces every run of characters outside
// [a-z0-9] with a single hyphen.
func Sanitize(s string) string {
	var b strings.Builder
	dash := false
	for _, ch := range strings.ToLower(s) {
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteRune('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "untitled"
	}
	return out
}
