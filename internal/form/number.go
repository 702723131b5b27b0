package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrNotFinite = errors.New("number must be finite")

// IsFinite is false for NaN and ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Number is a numeric form value that may not have been entered yet.
// The zero value is empty, which is different from an entered 0.
type Number struct {
	value float64
	set   bool
}

func NewNumber(v float64) Number {
	return Number{value: v, set: true}
}

func Empty() Number {
	return Number{}
}

func (n Number) IsEmpty() bool {
	return !n.set
}

// Float returns the value and whether it was entered.
func (n Number) Float() (float64, bool) {
	return n.value, n.set
}

// Or returns the value, or def when empty.
func (n Number) Or(def float64) float64 {
	if !n.set {
		return def
	}
	return n.value
}

func (n Number) String() string {
	if !n.set {
		return ""
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

// ParseNumber accepts "" (empty) or a decimal number; a comma decimal
// separator is accepted too since people type "70,5".
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty(), nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return Empty(), fmt.Errorf("parse number %q: %w", s, err)
	}
	if !IsFinite(v) {
		return Empty(), fmt.Errorf("parse number %q: %w", s, ErrNotFinite)
	}
	return NewNumber(v), nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte(`""`), nil
	}
	return json.Marshal(n.value)
}

// UnmarshalJSON takes a number, a numeric string, "" or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Empty()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseNumber(s)
		if err != nil {
			return err
		}
		*n = parsed
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("form number: %w", err)
	}
	if !IsFinite(v) {
		return fmt.Errorf("form number: %w", ErrNotFinite)
	}
	*n = NewNumber(v)
	return nil
}
