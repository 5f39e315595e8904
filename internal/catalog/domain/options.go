package domain

import (
	"fmt"
	"strings"
)

// NewFilterOptions prefixes both lists with the wildcard.
func NewFilterOptions(domains, languages []string) FilterOptions {
	return FilterOptions{
		Domains:   withWildcard(domains),
		Languages: withWildcard(languages),
	}
}

// DefaultFilterOptions is the hand-maintained option set the site ships with.
func DefaultFilterOptions() FilterOptions {
	return NewFilterOptions(DefaultDomains, DefaultLanguages)
}

// DeriveOptions builds the option lists from the data, in first-seen order.
func DeriveOptions(records []ProjectRecord) FilterOptions {
	var domains, languages []string
	seenD := make(map[string]struct{})
	seenL := make(map[string]struct{})
	for _, r := range records {
		if _, ok := seenD[r.Domain]; !ok {
			seenD[r.Domain] = struct{}{}
			domains = append(domains, r.Domain)
		}
		if _, ok := seenL[r.Language]; !ok {
			seenL[r.Language] = struct{}{}
			languages = append(languages, r.Language)
		}
	}
	return NewFilterOptions(domains, languages)
}

// States lists every selector combination, wildcards included.
func (o FilterOptions) States() []FilterState {
	out := make([]FilterState, 0, len(o.Domains)*len(o.Languages))
	for _, d := range o.Domains {
		for _, l := range o.Languages {
			out = append(out, FilterState{Domain: d, Language: l})
		}
	}
	return out
}

func withWildcard(values []string) []string {
	out := make([]string, 0, len(values)+1)
	out = append(out, Wildcard)
	for _, v := range values {
		if v == Wildcard {
			continue
		}
		out = append(out, v)
	}
	return out
}

// padded values could never match a normalized selector.
func padded(v string) bool { return strings.TrimSpace(v) != v }

// Validate rejects collections with missing required fields or repeated ids.
func Validate(records []ProjectRecord) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		switch {
		case strings.TrimSpace(r.ID) == "":
			return fmt.Errorf("record %d: id required: %w", i, ErrInvalidRecord)
		case strings.TrimSpace(r.Title) == "":
			return fmt.Errorf("record %q: title required: %w", r.ID, ErrInvalidRecord)
		case strings.TrimSpace(r.Domain) == "":
			return fmt.Errorf("record %q: domain required: %w", r.ID, ErrInvalidRecord)
		case strings.TrimSpace(r.Language) == "":
			return fmt.Errorf("record %q: language required: %w", r.ID, ErrInvalidRecord)
		case padded(r.ID), padded(r.Domain), padded(r.Language):
			return fmt.Errorf("record %q: id, domain and language must not have surrounding whitespace: %w", r.ID, ErrInvalidRecord)
		case r.Domain == Wildcard || r.Language == Wildcard:
			return fmt.Errorf("record %q: %q is reserved: %w", r.ID, Wildcard, ErrInvalidRecord)
		}
		if j, ok := seen[r.ID]; ok {
			return fmt.Errorf("records %d and %d share id %q: %w", j, i, r.ID, ErrDuplicateID)
		}
		seen[r.ID] = i
	}
	return nil
}
