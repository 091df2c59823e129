// Package writer implements spec.md §6's three output interfaces —
// delimited text, HTML, and a binary snapshot — over a materialized
// internal/table.Table. All three follow the teacher's own writer.go
// idiom: a plain Config struct, a NewXxxWriter constructor that fills in
// defaults, and a Write method.
package writer

import (
	"strconv"

	"github.com/tablon/tablon/internal/column"
	"github.com/tablon/tablon/internal/table"
)

// cellString renders row r (0-based) of col as plain text, with no
// delimiter- or markup-specific escaping. A missing value renders as
// naString.
func cellString(col *column.Column, r int, naString string) string {
	if col.Missing.Get(r) {
		return naString
	}
	switch col.Kind {
	case column.KindInt64:
		return strconv.FormatInt(col.Int64s[r], 10)
	case column.KindFloat64:
		return strconv.FormatFloat(col.Float64s[r], 'g', -1, 64)
	case column.KindBool:
		if col.Bools[r] {
			return "TRUE"
		}
		return "FALSE"
	case column.KindFactor:
		code := col.Codes[r]
		if code < 0 {
			return naString
		}
		return col.Levels[code]
	default: // column.KindString
		return col.Strings[r]
	}
}

// isNumericKind reports whether col's cells render as bare numeric
// literals, the "quoting of non-numeric fields" split spec.md §6 calls for.
func isNumericKind(k column.Kind) bool {
	return k == column.KindInt64 || k == column.KindFloat64
}

func rowCount(t *table.Table) int {
	if len(t.Columns) == 0 {
		return t.NRows
	}
	return t.Columns[0].Len()
}
