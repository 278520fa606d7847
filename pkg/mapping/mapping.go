// Package mapping reads and writes the externally owned field-mapping store
// shape: a list of {svgLayerId, standardFieldName, customValue?} entries.
// The core never owns this data; operators' tools produce it. Both
// sides must agree on the wire format, so the codec lives here next to its
// validation helpers.
package mapping

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardgen/pkg/model"
	"github.com/goliatone/go-cardgen/pkg/naming"
)

// DecodeYAML reads a mapping list from YAML.
func DecodeYAML(r io.Reader) ([]model.FieldMapping, error) {
	var out []model.FieldMapping
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("mapping: decode yaml: %w", err)
	}
	return out, nil
}

// EncodeYAML writes a mapping list as YAML.
func EncodeYAML(w io.Writer, mappings []model.FieldMapping) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(mappings); err != nil {
		return fmt.Errorf("mapping: encode yaml: %w", err)
	}
	return enc.Close()
}

// DecodeJSON reads a mapping list from JSON.
func DecodeJSON(r io.Reader) ([]model.FieldMapping, error) {
	var out []model.FieldMapping
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("mapping: decode json: %w", err)
	}
	return out, nil
}

// EncodeJSON writes a mapping list as indented JSON.
func EncodeJSON(w io.Writer, mappings []model.FieldMapping) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(mappings); err != nil {
		return fmt.Errorf("mapping: encode json: %w", err)
	}
	return nil
}

// LoadFile reads a mapping file, choosing the codec by extension (.json, or
// .yaml/.yml and anything else as YAML).
func LoadFile(path string) ([]model.FieldMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapping: open: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeJSON(f)
	}
	return DecodeYAML(f)
}

// SaveFile writes a mapping file, choosing the codec by extension.
func SaveFile(path string, mappings []model.FieldMapping) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mapping: create: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return EncodeJSON(f, mappings)
	}
	return EncodeYAML(f, mappings)
}

// Validate checks a mapping list for the mistakes tools can catch before
// render time: empty or duplicate layer ids, custom entries missing their
// literal value, and field names the grammar will silently resolve to
// nothing. The resolver itself stays permissive; this exists so interactive
// tools can warn about probable typos.
func Validate(mappings []model.FieldMapping) error {
	seen := make(map[string]struct{}, len(mappings))
	var problems []string
	for i, m := range mappings {
		switch {
		case m.SVGLayerID == "":
			problems = append(problems, fmt.Sprintf("entry %d: empty svgLayerId", i))
		default:
			if _, dup := seen[m.SVGLayerID]; dup {
				problems = append(problems, fmt.Sprintf("entry %d: duplicate svgLayerId %q", i, m.SVGLayerID))
			}
			seen[m.SVGLayerID] = struct{}{}
		}

		if m.StandardFieldName == naming.CustomSentinel {
			if m.CustomValue == "" {
				problems = append(problems, fmt.Sprintf("entry %d: custom mapping without customValue", i))
			}
			continue
		}
		if !naming.IsKnown(m.StandardFieldName) {
			problems = append(problems, fmt.Sprintf("entry %d: unknown field name %q", i, m.StandardFieldName))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("mapping: %s", strings.Join(problems, "; "))
	}
	return nil
}
