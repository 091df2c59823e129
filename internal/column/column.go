// Package column implements the columnar materializer (spec.md §4.E): it
// walks the flat field ranges a internal/token.ParsedBuffer recorded for
// one column and builds a single typed, densely-packed Column, promoting
// through int64 -> float64 -> bool -> string as values force it to.
package column

import "github.com/tablon/tablon/internal/buffer"

// Kind identifies which of Column's value slices is populated.
type Kind int

const (
	KindInt64 Kind = iota
	KindFloat64
	KindBool
	KindString
	KindFactor
)

func (k Kind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindFactor:
		return "factor"
	default:
		return "unknown"
	}
}

// Column is one materialized, type-homogeneous column. Exactly one of the
// value slices matches Kind; the others are nil. Missing tracks NA values
// as a parallel packed mask rather than overloading a sentinel in the
// value slice itself.
type Column struct {
	Kind    Kind
	Missing *buffer.Bits

	Int64s   []int64
	Float64s []float64
	Bools    []bool
	Strings  []string

	// Factor (dictionary-encoded string) representation, populated only
	// when Kind == KindFactor. Codes[i] == -1 marks a missing entry.
	Levels []string
	Codes  []int32
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case KindInt64:
		return len(c.Int64s)
	case KindFloat64:
		return len(c.Float64s)
	case KindBool:
		return len(c.Bools)
	case KindFactor:
		return len(c.Codes)
	default:
		return len(c.Strings)
	}
}
