package output

import (
	"encoding/json"
	"io"

	"github.com/reglet-dev/shaderbuild/internal/domain/execution"
)

// JSONFormatter formats compile reports as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
// If indent is true, the output will be pretty-printed with indentation.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{
		writer: w,
		indent: indent,
	}
}

// Format writes the report as JSON.
func (f *JSONFormatter) Format(report *execution.CompileReport) error {
	encoder := json.NewEncoder(f.writer)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	// Encode appends the trailing newline.
	return encoder.Encode(report)
}
