package column

import (
	"fmt"

	"github.com/tablon/tablon/internal/buffer"
	"github.com/tablon/tablon/internal/extract"
	"github.com/tablon/tablon/internal/options"
	"github.com/tablon/tablon/internal/token"
)

// Sets bundles the three marker-string fast-reject tables every
// materialized column consults, resolved once per parse from Options.
type Sets struct {
	NA    extract.StringSet
	True  extract.StringSet
	False extract.StringSet
}

// NewSets builds a Sets from resolved Options.
func NewSets(o *options.Options) Sets {
	return Sets{
		NA:    extract.NewStringSet(o.NAStrings),
		True:  extract.NewStringSet(o.TrueStrings),
		False: extract.NewStringSet(o.FalseStrings),
	}
}

// fieldString returns the trimmed (per ignorepadding) content of body row r
// (0-based, relative to rowOffset) in column colIdx (0-based).
func fieldString(buf *token.ParsedBuffer, rowOffset, colIdx int, ignorePadding bool) string {
	first, _ := buf.RowFields(rowOffset + 1)
	k := first + colIdx
	raw := buf.FieldBytes(k)
	if ignorePadding && !buf.FieldQuoted(k) {
		raw = extract.TrimPadding(raw)
	}
	return string(raw)
}

// fieldQuoted reports whether the field at body row rowOffset (0-based),
// column colIdx (0-based) had at least one quote mark open during
// tokenization (token.ParsedBuffer's quoted bitmap).
func fieldQuoted(buf *token.ParsedBuffer, rowOffset, colIdx int) bool {
	first, _ := buf.RowFields(rowOffset + 1)
	return buf.FieldQuoted(first + colIdx)
}

// Materialize builds the column at colIdx across nRows body rows starting
// at 1-based row rowOffset+1. If declared is not options.Unset, the
// promotion ladder is skipped entirely and every value is parsed directly
// as that type (spec.md §6 eltypes): a non-NA value that won't parse as
// the declared type is a hard error, since the caller asked for it
// explicitly rather than leaving it to inference.
func Materialize(buf *token.ParsedBuffer, colIdx, rowOffset, nRows int, declared options.ElType, opts *options.Options, sets Sets) (*Column, error) {
	if declared != options.Unset {
		return materializeDeclared(buf, colIdx, rowOffset, nRows, declared, opts, sets)
	}

	col, restart, err := scanNumeric(buf, colIdx, rowOffset, nRows, opts, sets)
	if err != nil {
		return nil, err
	}
	if !restart {
		return col, nil
	}

	col, restart, err = scanBool(buf, colIdx, rowOffset, nRows, opts, sets)
	if err != nil {
		return nil, err
	}
	if !restart {
		return col, nil
	}

	return scanStringWithNA(buf, colIdx, rowOffset, nRows, opts, sets.NA), nil
}

// scanNumeric tries int64 first, promoting in place to float64 the moment a
// value doesn't fit int64 but does fit float64 (no rescan: values already
// collected just get widened). A value that fits neither signals the
// caller to restart the whole column from row 0 as bool.
func scanNumeric(buf *token.ParsedBuffer, colIdx, rowOffset, nRows int, opts *options.Options, sets Sets) (*Column, bool, error) {
	missing := buffer.NewBits(nRows)
	ints := make([]int64, 0, nRows)
	var floats []float64
	isFloat := false

	for r := 0; r < nRows; r++ {
		s := fieldString(buf, rowOffset+r, colIdx, opts.IgnorePadding)
		if sets.NA.Contains(s) {
			missing.Push(true)
			if isFloat {
				floats = append(floats, 0)
			} else {
				ints = append(ints, 0)
			}
			continue
		}
		missing.Push(false)

		if !isFloat {
			if v, ok := extract.Int64([]byte(s)); ok {
				ints = append(ints, v)
				continue
			}
			if v, ok := extract.Float64([]byte(s)); ok {
				floats = make([]float64, len(ints))
				for i, iv := range ints {
					floats[i] = float64(iv)
				}
				floats = append(floats, v)
				isFloat = true
				continue
			}
			return nil, true, nil
		}

		if v, ok := extract.Float64([]byte(s)); ok {
			floats = append(floats, v)
			continue
		}
		return nil, true, nil
	}

	if isFloat {
		return &Column{Kind: KindFloat64, Missing: missing, Float64s: floats}, false, nil
	}
	return &Column{Kind: KindInt64, Missing: missing, Int64s: ints}, false, nil
}

// scanBool restarts numeric promotion's work from row 0: unlike int->float,
// a float value has no canonical bool reading, so there is nothing to
// widen in place.
func scanBool(buf *token.ParsedBuffer, colIdx, rowOffset, nRows int, opts *options.Options, sets Sets) (*Column, bool, error) {
	missing := buffer.NewBits(nRows)
	vals := make([]bool, 0, nRows)

	for r := 0; r < nRows; r++ {
		s := fieldString(buf, rowOffset+r, colIdx, opts.IgnorePadding)
		if sets.NA.Contains(s) {
			missing.Push(true)
			vals = append(vals, false)
			continue
		}
		missing.Push(false)
		v, ok := extract.Bool(s, sets.True, sets.False)
		if !ok {
			return nil, true, nil
		}
		vals = append(vals, v)
	}

	return &Column{Kind: KindBool, Missing: missing, Bools: vals}, false, nil
}

// scanStringWithNA is the ladder's terminal rung: every byte sequence is
// valid string content, so this never restarts, but NA markers still need
// recognizing so they surface as missing rather than as the literal text
// "NA". An empty field that was quoted (`""`) is never an NA match: an
// empty quoted string is the literal empty string, non-missing, even when
// the NA set contains "" (spec.md §4.D's was_quoted exception).
func scanStringWithNA(buf *token.ParsedBuffer, colIdx, rowOffset, nRows int, opts *options.Options, na extract.StringSet) *Column {
	missing := buffer.NewBits(nRows)

	if opts.MakeFactors {
		levelIdx := make(map[string]int32)
		var levels []string
		codes := make([]int32, 0, nRows)
		for r := 0; r < nRows; r++ {
			s := fieldString(buf, rowOffset+r, colIdx, opts.IgnorePadding)
			if s == "" && fieldQuoted(buf, rowOffset+r, colIdx) {
				missing.Push(false)
				codes = append(codes, resolveLevel(s, levelIdx, &levels))
				continue
			}
			if na.Contains(s) {
				missing.Push(true)
				codes = append(codes, -1)
				continue
			}
			missing.Push(false)
			codes = append(codes, resolveLevel(s, levelIdx, &levels))
		}
		return &Column{Kind: KindFactor, Missing: missing, Levels: levels, Codes: codes}
	}

	strs := make([]string, 0, nRows)
	for r := 0; r < nRows; r++ {
		s := fieldString(buf, rowOffset+r, colIdx, opts.IgnorePadding)
		if s == "" && fieldQuoted(buf, rowOffset+r, colIdx) {
			missing.Push(false)
			strs = append(strs, "")
			continue
		}
		if na.Contains(s) {
			missing.Push(true)
			strs = append(strs, "")
			continue
		}
		missing.Push(false)
		strs = append(strs, s)
	}
	return &Column{Kind: KindString, Missing: missing, Strings: strs}
}

func resolveLevel(s string, levelIdx map[string]int32, levels *[]string) int32 {
	if idx, ok := levelIdx[s]; ok {
		return idx
	}
	idx := int32(len(*levels))
	*levels = append(*levels, s)
	levelIdx[s] = idx
	return idx
}

// materializeDeclared parses every value directly as the user-declared
// type, bypassing the promotion ladder.
func materializeDeclared(buf *token.ParsedBuffer, colIdx, rowOffset, nRows int, declared options.ElType, opts *options.Options, sets Sets) (*Column, error) {
	missing := buffer.NewBits(nRows)

	switch declared {
	case options.Int64:
		vals := make([]int64, 0, nRows)
		for r := 0; r < nRows; r++ {
			s := fieldString(buf, rowOffset+r, colIdx, opts.IgnorePadding)
			if sets.NA.Contains(s) {
				missing.Push(true)
				vals = append(vals, 0)
				continue
			}
			missing.Push(false)
			v, ok := extract.Int64([]byte(s))
			if !ok {
				return nil, fmt.Errorf("tablon: row %d: %q does not parse as declared type i64", rowOffset+r+1, s)
			}
			vals = append(vals, v)
		}
		return &Column{Kind: KindInt64, Missing: missing, Int64s: vals}, nil

	case options.Float64:
		vals := make([]float64, 0, nRows)
		for r := 0; r < nRows; r++ {
			s := fieldString(buf, rowOffset+r, colIdx, opts.IgnorePadding)
			if sets.NA.Contains(s) {
				missing.Push(true)
				vals = append(vals, 0)
				continue
			}
			missing.Push(false)
			v, ok := extract.Float64([]byte(s))
			if !ok {
				return nil, fmt.Errorf("tablon: row %d: %q does not parse as declared type f64", rowOffset+r+1, s)
			}
			vals = append(vals, v)
		}
		return &Column{Kind: KindFloat64, Missing: missing, Float64s: vals}, nil

	case options.Bool:
		vals := make([]bool, 0, nRows)
		for r := 0; r < nRows; r++ {
			s := fieldString(buf, rowOffset+r, colIdx, opts.IgnorePadding)
			if sets.NA.Contains(s) {
				missing.Push(true)
				vals = append(vals, false)
				continue
			}
			missing.Push(false)
			v, ok := extract.Bool(s, sets.True, sets.False)
			if !ok {
				return nil, fmt.Errorf("tablon: row %d: %q does not parse as declared type bool", rowOffset+r+1, s)
			}
			vals = append(vals, v)
		}
		return &Column{Kind: KindBool, Missing: missing, Bools: vals}, nil

	default: // options.String
		return scanStringWithNA(buf, colIdx, rowOffset, nRows, opts, sets.NA), nil
	}
}
