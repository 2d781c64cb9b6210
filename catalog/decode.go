package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Format identifies the serialization format of a catalog export.
type Format int

const (
	// FormatYAML indicates a YAML-encoded export.
	FormatYAML Format = iota
	// FormatJSON indicates a JSON-encoded export.
	FormatJSON
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// DetectFormat sniffs whether data is JSON or YAML. JSON documents start
// with '{' or '[' after leading whitespace; everything else is treated as
// YAML (which is a superset of JSON anyway).
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a catalog export (JSON or YAML) and extracts its endpoint
// view. The source format is recorded on the result so callers can write
// the document back in the format it arrived in.
func Decode(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("catalog: empty document")
	}

	raw := make(map[string]any)
	format := DetectFormat(data)
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("catalog: decoding JSON document: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("catalog: decoding YAML document: %w", err)
		}
	}

	return &Document{
		Raw:       raw,
		Endpoints: extractEndpoints(raw),
		Format:    format,
	}, nil
}

// Marshal serializes the document's raw form in the given format.
func (d *Document) Marshal(format Format) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(d.Raw, "", "  ")
	}
	return yaml.Marshal(d.Raw)
}
