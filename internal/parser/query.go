package parser

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeQuery trims a search term, collapses inner whitespace and converts it to NFC,
// so visually identical input produces the same request.
func NormalizeQuery(query string) string {
	return norm.NFC.String(strings.Join(strings.Fields(query), " "))
}

// QueryKey returns a case-folded form of the query used to share cache entries
// between searches that only differ by letter case.
func QueryKey(query string) string {
	return cases.Fold().String(NormalizeQuery(query))
}
