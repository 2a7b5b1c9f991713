package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Measure is a numeric quantity that may not be computable yet.
// A partially filled form produces invalid measures, never zeros.
type Measure struct {
	Value float64
	Valid bool
}

// None is the not-computable measure
var None = Measure{}

// Some wraps a value. NaN and infinities are never valid.
func Some(v float64) Measure {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return None
	}
	return Measure{Value: v, Valid: true}
}

// Get returns the value and whether it is set
func (m Measure) Get() (float64, bool) {
	return m.Value, m.Valid
}

// Positive reports whether the measure is set and greater than zero
func (m Measure) Positive() bool {
	return m.Valid && m.Value > 0
}

// Or returns the value, or def when the measure is not set
func (m Measure) Or(def float64) float64 {
	if !m.Valid {
		return def
	}
	return m.Value
}

// Round rounds a valid measure to the given number of decimal places
func (m Measure) Round(places int32) Measure {
	if !m.Valid {
		return None
	}
	return Some(Round(m.Value, places))
}

// String renders the value with two decimals, or "" when not computable
func (m Measure) String() string {
	if !m.Valid {
		return ""
	}
	return strconv.FormatFloat(m.Value, 'f', 2, 64)
}

// MarshalJSON encodes a not-computable measure as null
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts numbers, numeric strings, blank strings and null
func (m *Measure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = None
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = parseMeasure(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Some(v)
	return nil
}

// MarshalYAML encodes a not-computable measure as null
func (m Measure) MarshalYAML() (interface{}, error) {
	if !m.Valid {
		return nil, nil
	}
	return m.Value, nil
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON
func (m *Measure) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		*m = None
		return nil
	}
	*m = parseMeasure(node.Value)
	return nil
}

func parseMeasure(s string) Measure {
	s = strings.TrimSpace(s)
	if s == "" {
		return None
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return None
	}
	return Some(v)
}

// Round rounds half away from zero on the decimal representation of v,
// so 1.005 rounds to 1.01 rather than to the binary neighbour 1.00.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
