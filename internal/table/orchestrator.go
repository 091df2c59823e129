package table

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tablon/tablon/internal/column"
	"github.com/tablon/tablon/internal/header"
	"github.com/tablon/tablon/internal/ingest"
	"github.com/tablon/tablon/internal/options"
	"github.com/tablon/tablon/internal/token"
)

// StructuralError reports input that tokenized to nothing at all: zero
// bytes, rows, and fields read (spec.md §4.G step 5 / §7's Structural
// error). Distinct from header.InconsistentRowError, which covers a
// per-row field-count mismatch within otherwise-nonempty input.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("tablon: structural error: %s", e.Reason)
}

// ReadReader runs the full spec.md §4.G sequence over an already-open
// stream: validate options, skip the configured leading lines, tokenize
// the header row (if any), tokenize the body, check row consistency,
// resolve column names, and materialize every column.
func ReadReader(r io.Reader, opts *options.Options, cfg *Config) (*Table, error) {
	return readFrom(r, opts, cfg, 0)
}

// ReadFile opens path via internal/ingest (suffix-dispatched decompression)
// and runs the same sequence as ReadReader, with an optional schema-cache
// fast path and byte-progress reporting. If opts.Separator was left at its
// zero value, it is inferred from path's suffix before anything else runs.
func ReadFile(path string, opts *options.Options, cfg *Config) (*Table, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	size, mtime := stat.Size(), stat.ModTime().UnixNano()

	var cachedNames []string
	var cachedTypes []options.ElType
	haveCache := false
	if cfg != nil && cfg.UseSchemaCache {
		cachedNames, cachedTypes, haveCache = loadSchemaCache(path, size, mtime)
		if haveCache {
			opts.Names = cachedNames
			opts.ElTypes = cachedTypes
		}
	}

	if opts.Separator == 0 {
		opts.Separator = ingest.InferSeparator(path)
	}

	opened, err := ingest.Open(path)
	if err != nil {
		return nil, err
	}
	defer opened.Close()

	t, err := readFrom(opened.Reader, opts, cfg, opened.SizeHint)
	if err != nil {
		return nil, err
	}

	if cfg != nil && cfg.UseSchemaCache && !haveCache {
		if err := saveSchemaCache(path, t.Names, t.Columns, size, mtime); err != nil {
			return t, fmt.Errorf("tablon: parsed successfully but failed to write schema cache: %w", err)
		}
	}
	return t, nil
}

func readFrom(r io.Reader, opts *options.Options, cfg *Config, sizeHint int64) (*Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var cr *countingReader
	var progress *progressReporter
	if cfg != nil && cfg.Verbose {
		cr = &countingReader{r: r}
		progress = startProgress(cr, sizeHint)
		defer progress.Stop()
		r = cr
	}

	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, bufio.MaxScanTokenSize)
	}

	if err := skipLines(br, opts.SkipStart); err != nil && err != io.EOF {
		return nil, err
	}

	tk := token.New(opts)
	buf := token.NewParsedBuffer()

	var next byte
	var hasNext bool
	var err error
	if opts.Header {
		next, hasNext, err = tk.Run(br, buf, 1, 0, false)
		if err != nil {
			return nil, err
		}
	}
	if _, _, err = tk.Run(br, buf, opts.NRows, next, hasNext); err != nil {
		return nil, err
	}

	if buf.Rows() == 0 || buf.Fields() == 0 {
		return nil, &StructuralError{Reason: "zero bytes/rows/fields read (empty or all-comment/blank input)"}
	}

	firstBodyRow := 1
	if opts.Header {
		firstBodyRow = 2
	}
	nBodyRows := buf.Rows() - firstBodyRow + 1
	if nBodyRows < 0 {
		nBodyRows = 0
	}

	var nCols int
	if nBodyRows > 0 {
		first, last := buf.RowFields(firstBodyRow)
		nCols = last - first + 1
	} else if opts.Header && buf.Rows() >= 1 {
		first, last := buf.RowFields(1)
		nCols = last - first + 1
	} else if len(opts.Names) != 0 {
		nCols = len(opts.Names)
	}

	if nBodyRows > 0 {
		if cerr := header.CheckConsistency(buf, firstBodyRow, nCols); cerr != nil {
			return nil, cerr
		}
	}

	names, err := header.Resolve(buf, nCols, opts)
	if err != nil {
		return nil, err
	}

	sets := column.NewSets(opts)
	columns := make([]*column.Column, nCols)
	for c := 0; c < nCols; c++ {
		var declared options.ElType
		if c < len(opts.ElTypes) {
			declared = opts.ElTypes[c]
		}
		col, err := column.Materialize(buf, c, firstBodyRow-1, nBodyRows, declared, opts, sets)
		if err != nil {
			return nil, err
		}
		columns[c] = col
	}

	return &Table{Names: names, Columns: columns, NRows: nBodyRows}, nil
}

// skipLines consumes n leading physical lines (terminator-inclusive)
// before the tokenizer ever sees the stream, for spec.md §6's skipstart
// option. It is a raw, quoting-unaware line skip, matching the option's
// documented purpose of dropping boilerplate banner lines above the real
// header.
func skipLines(r *bufio.Reader, n int) error {
	for i := 0; i < n; i++ {
		if _, err := r.ReadString('\n'); err != nil {
			return err
		}
	}
	return nil
}
