package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

var nullLiteral = []byte("null")

// NullFloat64 is a float64 that may be absent.
// An absent value is never represented by NaN or zero.
type NullFloat64 struct {
	Float64 float64
	Valid   bool
}

// Some returns a defined value.
func Some(v float64) NullFloat64 {
	return NullFloat64{Float64: v, Valid: true}
}

// Null returns the undefined value.
func Null() NullFloat64 {
	return NullFloat64{}
}

// Get returns the value and whether it is defined.
func (n NullFloat64) Get() (float64, bool) {
	return n.Float64, n.Valid
}

// Or returns the value, or fallback if it is undefined.
func (n NullFloat64) Or(fallback float64) float64 {
	if !n.Valid {
		return fallback
	}
	return n.Float64
}

func (n NullFloat64) String() string {
	if !n.Valid {
		return "-"
	}
	return strconv.FormatFloat(n.Float64, 'f', -1, 64)
}

func (n NullFloat64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return nullLiteral, nil
	}
	return json.Marshal(n.Float64)
}

func (n *NullFloat64) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		*n = NullFloat64{}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*n = Some(v)
	return nil
}
