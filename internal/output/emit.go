// Package output writes request records for display.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatYAML)}
}

// Emitter writes records to w in a fixed format.
type Emitter struct {
	w      io.Writer
	format Format
}

func NewEmitter(w io.Writer, format Format) *Emitter {
	return &Emitter{w: w, format: format}
}

// Emit writes v. Records are first encoded with their own JSON
// marshalling so YAML output uses the same field names as the wire format.
func (e *Emitter) Emit(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	switch e.format {
	case FormatJSON, "":
		_, err = fmt.Fprintf(e.w, "%s\n", data)
		return err
	case FormatYAML:
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("failed to decode record: %w", err)
		}
		enc := yaml.NewEncoder(e.w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return fmt.Errorf("failed to write yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", e.format)
	}
}
