package domain

import "strings"

// NewFilterState returns the state a fresh catalog view starts with.
func NewFilterState() FilterState {
	return FilterState{Domain: Wildcard, Language: Wildcard}
}

// WithDomain replaces the domain selection and keeps the language selection.
func (s FilterState) WithDomain(v string) FilterState {
	s.Domain = v
	return s
}

// WithLanguage replaces the language selection and keeps the domain selection.
func (s FilterState) WithLanguage(v string) FilterState {
	s.Language = v
	return s
}

// Normalize trims surrounding whitespace and maps an empty value to the wildcard.
// Matching stays exact: no case folding.
func (s FilterState) Normalize() FilterState {
	return FilterState{
		Domain:   normalizeValue(s.Domain),
		Language: normalizeValue(s.Language),
	}
}

func normalizeValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return Wildcard
	}
	return v
}

// Matches reports whether r satisfies both selections.
func (s FilterState) Matches(r ProjectRecord) bool {
	return (s.Domain == Wildcard || r.Domain == s.Domain) &&
		(s.Language == Wildcard || r.Language == s.Language)
}

// IsWildcard reports whether neither field restricts the result.
func (s FilterState) IsWildcard() bool {
	return s.Domain == Wildcard && s.Language == Wildcard
}

// FilterCatalog returns the records matching state, in input order.
// The result is always a fresh slice; records is never modified.
func FilterCatalog(records []ProjectRecord, state FilterState) []ProjectRecord {
	out := make([]ProjectRecord, 0, len(records))
	for _, r := range records {
		if state.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
