// Package output provides output formatting for estimates.
// This package produces human and machine-readable outputs.
package output

import (
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"buildcost/core/estimate"
	"buildcost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatXLSX is an Excel workbook
	FormatXLSX Format = "xlsx"

	// FormatPDF is a printable PDF report
	FormatPDF Format = "pdf"
)

// Binary reports whether the format must not be written to a terminal
func (f Format) Binary() bool {
	return f == FormatXLSX || f == FormatPDF
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *estimate.Result) error
}

// Options tune the builtin formatters
type Options struct {
	NoColor bool
	Verbose bool
	Version string
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry holding every builtin formatter
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	r.Register(&CLIFormatter{NoColor: opts.NoColor, Verbose: opts.Verbose})
	r.Register(&JSONFormatter{Indent: true})
	r.Register(&MarkdownFormatter{})
	r.Register(&XLSXFormatter{})
	r.Register(&PDFFormatter{Version: opts.Version})
	return r
}

// Register adds a formatter, replacing any with the same format
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	f, ok := r.formatters[Format(strings.ToLower(string(format)))]
	if !ok {
		return nil, errors.NotFound("output format", string(format)).
			WithContext("available", r.Formats())
	}
	return f, nil
}

// Formats lists the registered formats, sorted
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FormatMoney renders an amount with thousands separators and two decimals
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + frac
}

// FormatQuantity renders a quantity to two decimals
func FormatQuantity(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
