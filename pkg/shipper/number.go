package shipper

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Number is a loosely typed numeric input. It accepts JSON numbers, numeric
// strings and null, and keeps the raw text until it is coerced.
type Number string

// NumberOf formats a float as a Number.
func NumberOf(f float64) Number {
	return Number(cast.ToString(f))
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
	default:
		*n = Number(data)
	}
	return nil
}

var errNotFinite = errors.New("number is not finite")

// MarshalJSON implements json.Marshaler. Numeric values are emitted as
// canonical JSON numbers, anything else as a string.
func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	if f, err := n.Float(); err == nil {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return json.Marshal(string(n))
}

// Float coerces the value to a float64. An empty value is zero. NaN and
// infinities are rejected.
func (n Number) Float() (float64, error) {
	if n == "" {
		return 0, nil
	}
	f, err := cast.ToFloat64E(string(n))
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}

// Int coerces the value to a base 10 int. An empty value is zero.
func (n Number) Int() (int, error) {
	if n == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(cast.ToString(string(n))))
}

// IsZero reports whether the value is missing or numerically zero.
func (n Number) IsZero() bool {
	if n == "" {
		return true
	}
	f, err := n.Float()
	return err == nil && f == 0
}
