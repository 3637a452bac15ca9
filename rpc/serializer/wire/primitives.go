package wire

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Read primitives
// --------------------------------------------------------------------------

// Every primitive consumes exactly the value at the cursor. Absent values (null,
// "" or a structure where a scalar was expected) yield the zero value or nil.
// Malformed values are treated as absent.

// ReadString reads the text of the value at the cursor
func ReadString(r IReader) (string, error) {
	return r.ReadText()
}

// ReadInt reads an integer, 0 when absent
func ReadInt(r IReader) (int, error) {
	v, err := ReadNullableInt(r)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

// ReadNullableInt reads an integer, nil when absent
func ReadNullableInt(r IReader) (*int, error) {
	text, err := r.ReadText()
	if err != nil {
		return nil, err
	}
	return ParseInt(text), nil
}

// ReadBool reads a boolean, false when absent
func ReadBool(r IReader) (bool, error) {
	v, err := ReadNullableBool(r)
	if err != nil || v == nil {
		return false, err
	}
	return *v, nil
}

// ReadNullableBool reads a boolean, nil when absent
func ReadNullableBool(r IReader) (*bool, error) {
	text, err := r.ReadText()
	if err != nil {
		return nil, err
	}
	return ParseBool(text), nil
}

// ReadFloat reads a float, 0 when absent
func ReadFloat(r IReader) (float64, error) {
	v, err := ReadNullableFloat(r)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

// ReadNullableFloat reads a float, nil when absent
func ReadNullableFloat(r IReader) (*float64, error) {
	text, err := r.ReadText()
	if err != nil {
		return nil, err
	}
	return ParseFloat(text), nil
}

// ReadDecimal reads a decimal amount (hours) without rounding, 0 when absent
func ReadDecimal(r IReader) (float64, error) {
	return ReadFloat(r)
}

// ReadDateTime reads a timestamp, the zero time when absent or unparsable
func ReadDateTime(r IReader) (time.Time, error) {
	v, err := ReadNullableDateTime(r)
	if err != nil || v == nil {
		return time.Time{}, err
	}
	return *v, nil
}

// ReadNullableDateTime reads a timestamp or a date, nil when absent or unparsable
func ReadNullableDateTime(r IReader) (*time.Time, error) {
	text, err := r.ReadText()
	if err != nil {
		return nil, err
	}
	t, ok := ParseDateTime(text)
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// ReadNullableDate reads a calendar date (time of day dropped), nil when absent
func ReadNullableDate(r IReader) (*time.Time, error) {
	t, err := ReadNullableDateTime(r)
	if err != nil || t == nil {
		return nil, err
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d, nil
}

// ReadDate reads a calendar date, the zero time when absent
func ReadDate(r IReader) (time.Time, error) {
	v, err := ReadNullableDate(r)
	if err != nil || v == nil {
		return time.Time{}, err
	}
	return *v, nil
}

// --------------------------------------------------------------------------
// Parsers
// --------------------------------------------------------------------------

// ParseInt parses an invariant integer. Integral floats ("5.0") are accepted.
func ParseInt(text string) *int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if i, err := strconv.Atoi(text); err == nil {
		return &i
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt || f < math.MinInt {
		return nil
	}
	i := int(f)
	return &i
}

// ParseBool parses true/false/1/0 in any case
func ParseBool(text string) *bool {
	b, err := strconv.ParseBool(strings.TrimSpace(text))
	if err != nil {
		return nil
	}
	return &b
}

// ParseFloat parses an invariant float
func ParseFloat(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &f
}

var isoLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", DateLayout}

// ParseDateTime tries the ISO 8601 layouts first and FallbackDateTimeLayout second
func ParseDateTime(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	if t, err := time.ParseInLocation(FallbackDateTimeLayout, text, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// --------------------------------------------------------------------------
// Write primitives
// --------------------------------------------------------------------------

// WriteIfNotDefault writes the field unless v equals its zero value
func WriteIfNotDefault[T comparable](w IWriter, name string, v T, scalar func(T) Scalar) {
	var zero T
	if v != zero {
		w.Field(name, scalar(v))
	}
}

// WriteOrEmpty writes v, or the empty marker when v equals its zero value
func WriteOrEmpty[T comparable](w IWriter, name string, v T, scalar func(T) Scalar) {
	var zero T
	if v == zero {
		w.Field(name, Empty())
		return
	}
	w.Field(name, scalar(v))
}

// WriteIfNotNil writes *v unless v is nil
func WriteIfNotNil[T any](w IWriter, name string, v *T, scalar func(T) Scalar) {
	if v != nil {
		w.Field(name, scalar(*v))
	}
}

// WriteDateOrEmpty writes the date of v, or the empty marker when v is nil or zero
func WriteDateOrEmpty(w IWriter, name string, v *time.Time) {
	if v == nil || v.IsZero() {
		w.Field(name, Empty())
		return
	}
	w.Field(name, Date(*v))
}

// WriteAttrIfNotDefault is WriteIfNotDefault for XML attributes
func WriteAttrIfNotDefault[T comparable](w IWriter, name string, v T, scalar func(T) Scalar) {
	var zero T
	if v != zero {
		w.Attr(name, scalar(v))
	}
}
