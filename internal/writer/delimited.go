package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/tablon/tablon/internal/table"
)

// DelimitedConfig configures the delimited text writer (spec.md §6): a
// configurable separator, which fields get quoted, and how a quote mark
// embedded in a value is represented.
type DelimitedConfig struct {
	Path            string
	Separator       byte
	Quote           byte
	QuoteNonNumeric bool // quote every string/bool/factor cell, not just ones containing Separator/Quote/newline
	UseEscapes      bool // escape an embedded Quote as \Quote instead of doubling it
	NAString        string
}

// DefaultDelimitedConfig mirrors options.Default()'s separator/quote
// choices.
func DefaultDelimitedConfig(path string) DelimitedConfig {
	return DelimitedConfig{
		Path:            path,
		Separator:       ',',
		Quote:           '"',
		QuoteNonNumeric: true,
		NAString:        "NA",
	}
}

// DelimitedWriter handles writing a Table to a delimited text file.
type DelimitedWriter struct {
	config DelimitedConfig
}

// NewDelimitedWriter builds a DelimitedWriter, filling in the separator
// and quote mark if left at their zero value.
func NewDelimitedWriter(config DelimitedConfig) *DelimitedWriter {
	if config.Separator == 0 {
		config.Separator = ','
	}
	if config.Quote == 0 {
		config.Quote = '"'
	}
	return &DelimitedWriter{config: config}
}

// Write appends t to the writer's configured path. A new file gets a
// header row; an existing file's header is validated to match t's column
// names before any row is appended. The append is guarded by an exclusive
// file lock so concurrent writers can't interleave partial rows (the
// teacher's CsvWriter.Write does the same locked-append dance for its own
// single hard-coded format).
func (w *DelimitedWriter) Write(t *table.Table) error {
	dir := filepath.Dir(w.config.Path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("writer: create directory: %w", err)
		}
	}

	file, err := os.OpenFile(w.config.Path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("writer: open file: %w", err)
	}
	defer file.Close()

	if err := lockFile(file); err != nil {
		return fmt.Errorf("writer: lock file: %w", err)
	}
	defer unlockFile(file)

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	if stat.Size() == 0 {
		if err := w.writeHeader(file, t.Names); err != nil {
			return err
		}
	} else if err := w.checkHeader(file, t.Names); err != nil {
		return err
	}

	return w.WriteRows(file, t)
}

func (w *DelimitedWriter) writeHeader(wr io.Writer, names []string) error {
	bw := bufio.NewWriter(wr)
	if err := w.writeRecordQuoted(bw, names, make([]bool, len(names))); err != nil {
		return err
	}
	return bw.Flush()
}

// checkHeader reads the existing file's first line (without disturbing
// the append position, since the file was opened O_APPEND) and verifies
// it still matches names.
func (w *DelimitedWriter) checkHeader(f *os.File, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("writer: seek: %w", err)
	}
	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("writer: read existing header: %w", err)
	}
	existing := strings.Split(strings.TrimRight(line, "\r\n"), string(w.config.Separator))
	if !reflect.DeepEqual(existing, names) {
		return fmt.Errorf("writer: header mismatch: file has %v, table has %v", existing, names)
	}
	return nil
}

// WriteStream writes t's header followed by its rows to wr, with no file
// locking or existing-header validation. Use this for a one-shot stream
// (stdout, an HTTP response body); use Write to append to a file on disk.
func (w *DelimitedWriter) WriteStream(wr io.Writer, t *table.Table) error {
	if err := w.writeHeader(wr, t.Names); err != nil {
		return err
	}
	return w.WriteRows(wr, t)
}

// WriteRows writes t's rows, without any header, to wr. Exported so a
// caller writing a fresh stream (rather than appending to a file) can use
// it directly.
func (w *DelimitedWriter) WriteRows(wr io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(wr)
	n := rowCount(t)
	row := make([]string, len(t.Columns))
	numeric := make([]bool, len(t.Columns))
	for c, col := range t.Columns {
		numeric[c] = isNumericKind(col.Kind)
	}
	for r := 0; r < n; r++ {
		for c, col := range t.Columns {
			row[c] = cellString(col, r, w.config.NAString)
		}
		quoteField := make([]bool, len(row))
		for c := range row {
			quoteField[c] = w.config.QuoteNonNumeric && !numeric[c]
		}
		if err := w.writeRecordQuoted(bw, row, quoteField); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (w *DelimitedWriter) writeRecordQuoted(bw *bufio.Writer, fields []string, quoteField []bool) error {
	sep := w.config.Separator
	for i, field := range fields {
		if i > 0 {
			if err := bw.WriteByte(sep); err != nil {
				return err
			}
		}
		needsQuote := (len(quoteField) > i && quoteField[i]) || w.mustQuote(field)
		if !needsQuote {
			if _, err := bw.WriteString(field); err != nil {
				return err
			}
			continue
		}
		if err := w.writeQuoted(bw, field); err != nil {
			return err
		}
	}
	return bw.WriteByte('\n')
}

func (w *DelimitedWriter) mustQuote(field string) bool {
	return strings.IndexByte(field, w.config.Separator) >= 0 ||
		strings.IndexByte(field, w.config.Quote) >= 0 ||
		strings.ContainsAny(field, "\n\r")
}

func (w *DelimitedWriter) writeQuoted(bw *bufio.Writer, field string) error {
	q := w.config.Quote
	if err := bw.WriteByte(q); err != nil {
		return err
	}
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == q {
			if w.config.UseEscapes {
				if err := bw.WriteByte('\\'); err != nil {
					return err
				}
			} else if err := bw.WriteByte(q); err != nil {
				return err
			}
		}
		if err := bw.WriteByte(c); err != nil {
			return err
		}
	}
	return bw.WriteByte(q)
}
