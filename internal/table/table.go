// Package table is the orchestrator (spec.md §4.G): it drives the
// tokenizer across the header and body, checks row consistency, and hands
// each column off to internal/column's materializer, wrapping the result
// in a Table. It also owns the two ambient concerns spec.md leaves
// implicit for a complete reader: a schema-cache sidecar (adapted from the
// teacher's schema.Schema) that skips re-running the promotion ladder on a
// repeat read of the same file, and 1-second progress reporting (adapted
// from the teacher's Indexer.startReporting) over structured logrus output
// instead of a raw carriage-return status line.
package table

import "github.com/tablon/tablon/internal/column"

// Table is a fully materialized parse result: one name and one typed
// Column per input column, all the same length.
type Table struct {
	Names   []string
	Columns []*column.Column
	NRows   int
}

// Column returns the column named n, if present.
func (t *Table) Column(n string) (*column.Column, bool) {
	for i, name := range t.Names {
		if name == n {
			return t.Columns[i], true
		}
	}
	return nil, false
}
