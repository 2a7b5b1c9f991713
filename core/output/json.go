package output

import (
	"encoding/json"
	"io"

	"buildcost/core/estimate"
)

// JSONFormatter writes the full result as JSON
type JSONFormatter struct {
	Indent bool
}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render produces output for the given result
func (f *JSONFormatter) Render(w io.Writer, result *estimate.Result) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
