package entity

import (
	"bytes"
	"math"
	"strconv"
)

// FlexFloat is a float64 that tolerates the shapes upstream feeds use for numbers:
// JSON numbers, numeric strings, null and garbage all decode without error,
// the latter two as 0. NaN and infinities count as garbage so that every decoded
// value stays JSON-encodable.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			*f = 0
			return nil
		}
		data = []byte(unquoted)
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// Float64 returns the plain value.
func (f FlexFloat) Float64() float64 { return float64(f) }

// Ptr returns a pointer to the value, for optional fields that treat a decoded zero as present.
func (f FlexFloat) Ptr() *float64 {
	v := float64(f)
	return &v
}
