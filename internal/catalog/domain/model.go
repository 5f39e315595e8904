package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Wildcard is the filter value that matches every value of a field.
const Wildcard = "All"

// EmptyResultMessage is shown instead of the card grid when a filter matches nothing.
const EmptyResultMessage = "No projects found matching your criteria."

var (
	ErrNotFound      = errors.New("project not found")
	ErrDuplicateID   = errors.New("duplicate project id")
	ErrInvalidRecord = errors.New("invalid project record")
)

// ProjectRecord is one catalog entry offered for display and synopsis download.
// Records are reference data: loaded once and shared read-only.
type ProjectRecord struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Domain      string `json:"domain" yaml:"domain"`
	Language    string `json:"language" yaml:"language"`
	Description string `json:"description" yaml:"description"`
}

// UnmarshalJSON accepts the id as a JSON string or number, matching what
// the YAML decoder does with a scalar id.
func (r *ProjectRecord) UnmarshalJSON(b []byte) error {
	type plain ProjectRecord
	aux := struct {
		ID json.RawMessage `json:"id"`
		*plain
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.ID)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		r.ID = ""
	case raw[0] == '"':
		return json.Unmarshal(raw, &r.ID)
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("project id must be a string or number: %w", err)
		}
		r.ID = n.String()
	}
	return nil
}

// FilterState is the pair of selector values for the catalog view.
type FilterState struct {
	Domain   string `json:"domain"`
	Language string `json:"language"`
}

// FilterOptions are the values offered by the two selector controls.
// Both lists start with the wildcard.
type FilterOptions struct {
	Domains   []string `json:"domains"`
	Languages []string `json:"languages"`
}

var (
	DefaultDomains   = []string{"AI", "Web", "IoT"}
	DefaultLanguages = []string{"Python", "Java"}
)
