package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormatType defines the format types for the inventory.
type OutputFormatType string

const (
	// OutputFormatTypeJSON represents JSON output format
	OutputFormatTypeJSON OutputFormatType = "JSON"
	// OutputFormatTypeYAML represents YAML output format
	OutputFormatTypeYAML OutputFormatType = "YAML"
)

// ParseOutputFormat converts a user supplied string to an OutputFormatType.
// Empty input selects JSON.
func ParseOutputFormat(s string) (OutputFormatType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(OutputFormatTypeJSON):
		return OutputFormatTypeJSON, nil
	case string(OutputFormatTypeYAML), "YML":
		return OutputFormatTypeYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Render serialises v in the given format.
func Render(v any, format OutputFormatType) ([]byte, error) {
	switch format {
	case OutputFormatTypeJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error marshaling inventory to JSON: %w", err)
		}
		return append(data, '\n'), nil
	case OutputFormatTypeYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("error marshaling inventory to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("error marshaling inventory to YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DefaultPrinter is the default implementation of the inventory printer
type DefaultPrinter struct{}

// Print renders doc fully before writing it, so a failure never leaves partial output.
func (p DefaultPrinter) Print(w io.Writer, doc *Document, format OutputFormatType) error {
	data, err := Render(doc, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// PrintHost writes the variables of a single host, or an empty mapping if it is unknown.
func (p DefaultPrinter) PrintHost(w io.Writer, doc *Document, host string, format OutputFormatType) error {
	var v any = map[string]string{}
	if doc.Meta != nil {
		if hv, ok := doc.Meta.HostVars[host]; ok {
			v = hv
		}
	}

	data, err := Render(v, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
