// Package normalize cleans text extracted from PDF fragments so that field
// values compare and serialize predictably.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds compatibility characters (ligatures, full-width digits,
// non-breaking spaces) with NFKC and collapses runs of whitespace into a
// single space.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}
