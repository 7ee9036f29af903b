package listing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeLocation lower-cases a location and keeps only the part before
// the first comma, so "Falkirk, Central" and "Falkirk" compare equal.
// Surrounding whitespace is kept: the result feeds the fingerprint and must
// hash the same as entries already in the ledger.
func NormalizeLocation(location string) string {
	location = cases.Lower(language.BritishEnglish).String(location)

	if i := strings.Index(location, ","); i >= 0 {
		return location[:i]
	}

	return location
}
