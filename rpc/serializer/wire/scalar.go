package wire

import (
	"strconv"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = time.RFC3339
	// FallbackDateTimeLayout is used by some journal and attachment timestamps
	FallbackDateTimeLayout = "2006-01-02 15:04:05 UTC"
)

type scalarKind uint8

const (
	scalarString scalarKind = iota
	scalarNumber
	scalarBool
	scalarDate
	scalarDateTime
	scalarEmpty
)

// Scalar is a leaf value ready to be written. JSON uses the kind to decide
// between quoted strings and raw numbers/bools; XML only uses the text.
type Scalar struct {
	kind scalarKind
	text string
	time time.Time
}

func String(s string) Scalar {
	return Scalar{kind: scalarString, text: s}
}

func Int(i int) Scalar {
	return Scalar{kind: scalarNumber, text: strconv.Itoa(i)}
}

func Float(f float64) Scalar {
	return Scalar{kind: scalarNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

func Bool(b bool) Scalar {
	return Scalar{kind: scalarBool, text: strconv.FormatBool(b)}
}

// Date writes the calendar date of t (yyyy-MM-dd)
func Date(t time.Time) Scalar {
	return Scalar{kind: scalarDate, time: t}
}

// DateTime writes t in UTC using the writer's date-time layout
func DateTime(t time.Time) Scalar {
	return Scalar{kind: scalarDateTime, time: t}
}

// Empty is the explicit empty marker: "" in JSON, an empty element in XML.
func Empty() Scalar {
	return Scalar{kind: scalarEmpty}
}

// IsEmpty reports whether the scalar is the empty marker
func (s Scalar) IsEmpty() bool {
	return s.kind == scalarEmpty
}

// Text returns the canonical text form of the scalar
func (s Scalar) Text(dateTimeLayout string) string {
	switch s.kind {
	case scalarDate:
		return s.time.Format(DateLayout)
	case scalarDateTime:
		return s.time.UTC().Format(dateTimeLayout)
	case scalarEmpty:
		return ""
	default:
		return s.text
	}
}

// quoted reports whether JSON writes the scalar as a string
func (s Scalar) quoted() bool {
	return s.kind != scalarNumber && s.kind != scalarBool
}
