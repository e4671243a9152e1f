package planner

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is a numeric setting kept exactly as the user entered it. It is
// parsed on use: empty, unparsable or non-finite text resolves to zero and
// never aborts a computation. A decimal comma ("2,5") is accepted.
type Field string

// Float parses the field as a decimal number.
func (f Field) Float() float64 {
	s := strings.ReplaceAll(strings.TrimSpace(string(f)), ",", ".")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Int parses the field as a whole number. Decimal input is truncated toward zero.
func (f Field) Int() int {
	s := strings.TrimSpace(string(f))
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	v := f.Float()
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0
	}
	return int(v)
}

// FloatField formats v the way a user would type it.
func FloatField(v float64) Field {
	return Field(strconv.FormatFloat(v, 'f', -1, 64))
}

// IntField formats n as a Field.
func IntField(n int) Field {
	return Field(strconv.Itoa(n))
}

// UnmarshalJSON accepts both JSON strings and bare numbers.
func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	*f = Field(b)
	return nil
}

// UnmarshalYAML keeps the scalar's text whatever its resolved YAML type.
func (f *Field) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		*f = ""
		return nil
	}
	*f = Field(n.Value)
	return nil
}
