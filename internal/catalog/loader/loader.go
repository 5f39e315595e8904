package loader

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
)

//go:embed data/projects.json
var embeddedProjects []byte

// Format is the encoding of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// envelope is the wrapped file shape: {"projects": [...]}.
type envelope struct {
	Projects []domain.ProjectRecord `json:"projects" yaml:"projects"`
}

// LoadEmbedded returns the catalog bundled with the binary.
func LoadEmbedded() ([]domain.ProjectRecord, error) {
	return Load(embeddedProjects, FormatJSON)
}

// LoadFile reads a catalog from disk. The format follows the extension:
// .yaml/.yml is YAML, everything else JSON.
func LoadFile(path string) ([]domain.ProjectRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	records, err := Load(b, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return records, nil
}

func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load decodes and validates a catalog. Both a bare list and the
// {"projects": [...]} envelope are accepted.
func Load(b []byte, format Format) ([]domain.ProjectRecord, error) {
	var (
		records []domain.ProjectRecord
		err     error
	)
	switch format {
	case FormatYAML:
		records, err = decodeYAML(b)
	case FormatJSON:
		records, err = decodeJSON(b)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if err := domain.Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}

func decodeJSON(b []byte) ([]domain.ProjectRecord, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return []domain.ProjectRecord{}, nil
	}
	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
		return nonNil(env.Projects), nil
	}
	var records []domain.ProjectRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode json catalog: %w", err)
	}
	return nonNil(records), nil
}

func decodeYAML(b []byte) ([]domain.ProjectRecord, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, fmt.Errorf("decode yaml catalog: %w", err)
	}
	if len(node.Content) == 0 {
		return []domain.ProjectRecord{}, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.MappingNode {
		var env envelope
		if err := root.Decode(&env); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
		return nonNil(env.Projects), nil
	}
	var records []domain.ProjectRecord
	if err := root.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode yaml catalog: %w", err)
	}
	return nonNil(records), nil
}

func nonNil(records []domain.ProjectRecord) []domain.ProjectRecord {
	if records == nil {
		return []domain.ProjectRecord{}
	}
	return records
}
