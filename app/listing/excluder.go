package listing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Excluder drops listings whose location mentions an unwanted area.
type Excluder struct {
	excludes []string
}

func NewExcluder(excludes []string) *Excluder {
	lower := cases.Lower(language.BritishEnglish)

	e := &Excluder{excludes: make([]string, 0, len(excludes))}
	for _, exclude := range excludes {
		exclude = strings.TrimSpace(exclude)
		if exclude == "" {
			continue
		}
		e.excludes = append(e.excludes, lower.String(exclude))
	}
	return e
}

// IsExcluded reports whether location contains any excluded substring,
// ignoring case. It also returns the matching entry.
func (e *Excluder) IsExcluded(location string) (bool, string) {
	if e == nil || len(e.excludes) == 0 {
		return false, ""
	}

	value := cases.Lower(language.BritishEnglish).String(location)
	for _, exclude := range e.excludes {
		if strings.Contains(value, exclude) {
			return true, exclude
		}
	}

	return false, ""
}
