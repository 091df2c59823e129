// Package header resolves column names (spec.md §4.F) from either the
// tokenized header row or a synthetic default, and checks that every body
// row tokenized to the same field count before the columnar materializer
// ever runs.
package header

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/tablon/tablon/internal/extract"
	"github.com/tablon/tablon/internal/options"
	"github.com/tablon/tablon/internal/token"
)

var invalidIdentChar = regexp.MustCompile(`[^A-Za-z0-9_.]`)

// Resolve returns the final column names: opts.Names (unsanitized, but with
// repeats deduplicated) if supplied, else the sanitized and deduplicated
// header row if opts.Header is set, else a synthetic "V1".."Vn" sequence.
func Resolve(buf *token.ParsedBuffer, nCols int, opts *options.Options) ([]string, error) {
	if len(opts.Names) != 0 {
		if len(opts.Names) != nCols {
			return nil, fmt.Errorf("tablon: names has %d entries, want %d (column count)", len(opts.Names), nCols)
		}
		return dedupe(append([]string(nil), opts.Names...)), nil
	}

	if !opts.Header {
		return synthesize(nCols), nil
	}

	if buf.Rows() < 1 {
		return nil, fmt.Errorf("tablon: header=true but input has no rows")
	}
	first, last := buf.RowFields(1)
	if last-first+1 != nCols {
		return nil, fmt.Errorf("tablon: header row has %d fields, want %d", last-first+1, nCols)
	}

	names := make([]string, 0, nCols)
	for k := first; k <= last; k++ {
		raw := buf.FieldBytes(k)
		if opts.IgnorePadding && !buf.FieldQuoted(k) {
			raw = extract.TrimPadding(raw)
		}
		names = append(names, sanitize(string(raw), len(names)+1))
	}
	return dedupe(names), nil
}

func synthesize(nCols int) []string {
	names := make([]string, nCols)
	for i := range names {
		names[i] = "V" + strconv.Itoa(i+1)
	}
	return names
}

// sanitize turns raw header text into a valid bare identifier: non-empty,
// starting with a letter, dot, or underscore, containing only letters,
// digits, underscores, and dots. An empty name becomes "V<position>"; any
// other disallowed character becomes '.', and a name that would start with
// anything else gets an "X" prefix.
func sanitize(name string, position int) string {
	if name == "" {
		return "V" + strconv.Itoa(position)
	}
	name = invalidIdentChar.ReplaceAllString(name, ".")
	if !(isAlpha(name[0]) || name[0] == '.' || name[0] == '_') {
		name = "X" + name
	}
	return name
}

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// dedupe appends ".1", ".2", ... to repeated names, matching the
// make.unique idiom most tabular readers use to keep column names usable
// as identifiers/map keys downstream.
func dedupe(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		count := seen[n]
		seen[n] = count + 1
		if count == 0 {
			out[i] = n
			continue
		}
		out[i] = fmt.Sprintf("%s.%d", n, count)
	}
	return out
}

// InconsistentRowError reports the first body row whose field count
// didn't match the table's column count (spec.md §4.F).
type InconsistentRowError struct {
	Row      int
	Observed int
	Want     int
	Median   int
	Total    int
}

func (e *InconsistentRowError) Error() string {
	return fmt.Sprintf("tablon: row %d has %d fields, want %d (median %d across %d rows)",
		e.Row, e.Observed, e.Want, e.Median, e.Total)
}

// CheckConsistency verifies that every body row (1-based rows
// [firstRow, buf.Rows()]) tokenized to exactly nCols fields. On mismatch it
// reports the first offending row along with the median field count
// observed, for a more actionable error than the lone bad count.
func CheckConsistency(buf *token.ParsedBuffer, firstRow, nCols int) error {
	total := buf.Rows() - firstRow + 1
	if total <= 0 {
		return nil
	}
	counts := make([]int, 0, total)
	firstBad := -1
	firstBadCount := 0
	for r := firstRow; r <= buf.Rows(); r++ {
		first, last := buf.RowFields(r)
		n := last - first + 1
		counts = append(counts, n)
		if n != nCols && firstBad == -1 {
			firstBad = r
			firstBadCount = n
		}
	}
	if firstBad == -1 {
		return nil
	}
	sort.Ints(counts)
	return &InconsistentRowError{
		Row:      firstBad,
		Observed: firstBadCount,
		Want:     nCols,
		Median:   counts[len(counts)/2],
		Total:    total,
	}
}
