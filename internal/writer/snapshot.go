package writer

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/pierrec/lz4/v4"

	"github.com/tablon/tablon/internal/buffer"
	"github.com/tablon/tablon/internal/column"
	"github.com/tablon/tablon/internal/common"
	"github.com/tablon/tablon/internal/table"
)

func floatBits(v float64) uint64 { return math.Float64bits(v) }
func bitsFloat(v uint64) float64 { return math.Float64frombits(v) }

func newBitsFromBytes(raw []byte) *buffer.Bits {
	bits := buffer.NewBits(len(raw))
	for _, b := range raw {
		bits.Push(b != 0)
	}
	return bits
}

// snapshotMagic tags the format so ReadSnapshot can reject a file that
// isn't one of these before trying to decode it.
const snapshotMagic = "TBLN"

const snapshotVersion = 1

// WriteSnapshot serializes t as spec.md §6's "binary snapshot via opaque
// framework-provided serializer": an lz4-framed stream of length-prefixed
// column blocks, the same "wrap the file in lz4.NewWriter, write fixed
// records, Close()" shape internal/indexer/sorter.go's flushChunk uses for
// its own chunk spills.
func WriteSnapshot(w io.Writer, t *table.Table) error {
	lzw := lz4.NewWriter(w)
	bw := bufio.NewWriterSize(lzw, 256*1024)

	if _, err := bw.WriteString(snapshotMagic); err != nil {
		return err
	}
	if err := common.WriteUint64(bw, snapshotVersion); err != nil {
		return err
	}
	if err := common.WriteUint64(bw, uint64(len(t.Columns))); err != nil {
		return err
	}
	if err := common.WriteUint64(bw, uint64(t.NRows)); err != nil {
		return err
	}

	for i, col := range t.Columns {
		if err := common.WriteString(bw, t.Names[i]); err != nil {
			return err
		}
		if err := writeColumn(bw, col); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		lzw.Close()
		return err
	}
	return lzw.Close()
}

func writeColumn(bw *bufio.Writer, col *column.Column) error {
	if err := common.WriteUint64(bw, uint64(col.Kind)); err != nil {
		return err
	}
	n := col.Len()
	missing := make([]byte, n)
	for i := 0; i < n; i++ {
		if col.Missing.Get(i) {
			missing[i] = 1
		}
	}
	if err := common.WriteBytes(bw, missing); err != nil {
		return err
	}

	switch col.Kind {
	case column.KindInt64:
		for _, v := range col.Int64s {
			if err := common.WriteUint64(bw, uint64(v)); err != nil {
				return err
			}
		}
	case column.KindFloat64:
		for _, v := range col.Float64s {
			if err := common.WriteUint64(bw, floatBits(v)); err != nil {
				return err
			}
		}
	case column.KindBool:
		bools := make([]byte, len(col.Bools))
		for i, v := range col.Bools {
			if v {
				bools[i] = 1
			}
		}
		if err := common.WriteBytes(bw, bools); err != nil {
			return err
		}
	case column.KindFactor:
		if err := common.WriteUint64(bw, uint64(len(col.Levels))); err != nil {
			return err
		}
		for _, lvl := range col.Levels {
			if err := common.WriteString(bw, lvl); err != nil {
				return err
			}
		}
		for _, code := range col.Codes {
			if err := common.WriteUint64(bw, uint64(int64(code))); err != nil {
				return err
			}
		}
	default: // column.KindString
		for _, s := range col.Strings {
			if err := common.WriteString(bw, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadSnapshot reverses WriteSnapshot.
func ReadSnapshot(r io.Reader) (*table.Table, error) {
	lzr := lz4.NewReader(r)
	br := bufio.NewReaderSize(lzr, 64*1024)

	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("writer: read snapshot magic: %w", err)
	}
	if string(magic) != snapshotMagic {
		return nil, fmt.Errorf("writer: not a tablon snapshot (bad magic %q)", magic)
	}
	version, err := common.ReadUint64(br)
	if err != nil {
		return nil, err
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("writer: unsupported snapshot version %d", version)
	}

	nCols64, err := common.ReadUint64(br)
	if err != nil {
		return nil, err
	}
	nRows64, err := common.ReadUint64(br)
	if err != nil {
		return nil, err
	}
	nCols, nRows := int(nCols64), int(nRows64)

	names := make([]string, nCols)
	columns := make([]*column.Column, nCols)
	for i := 0; i < nCols; i++ {
		name, err := common.ReadString(br)
		if err != nil {
			return nil, err
		}
		names[i] = name
		col, err := readColumn(br, nRows)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}

	return &table.Table{Names: names, Columns: columns, NRows: nRows}, nil
}

func readColumn(br *bufio.Reader, n int) (*column.Column, error) {
	kind64, err := common.ReadUint64(br)
	if err != nil {
		return nil, err
	}
	kind := column.Kind(kind64)

	missingBytes, err := common.ReadBytes(br)
	if err != nil {
		return nil, err
	}
	if len(missingBytes) != n {
		return nil, fmt.Errorf("writer: missing mask has %d entries, want %d", len(missingBytes), n)
	}

	col := &column.Column{Kind: kind}
	col.Missing = newBitsFromBytes(missingBytes)

	switch kind {
	case column.KindInt64:
		vals := make([]int64, n)
		for i := range vals {
			v, err := common.ReadUint64(br)
			if err != nil {
				return nil, err
			}
			vals[i] = int64(v)
		}
		col.Int64s = vals

	case column.KindFloat64:
		vals := make([]float64, n)
		for i := range vals {
			v, err := common.ReadUint64(br)
			if err != nil {
				return nil, err
			}
			vals[i] = bitsFloat(v)
		}
		col.Float64s = vals

	case column.KindBool:
		raw, err := common.ReadBytes(br)
		if err != nil {
			return nil, err
		}
		if len(raw) != n {
			return nil, fmt.Errorf("writer: bool column has %d entries, want %d", len(raw), n)
		}
		vals := make([]bool, n)
		for i, b := range raw {
			vals[i] = b != 0
		}
		col.Bools = vals

	case column.KindFactor:
		nLevels64, err := common.ReadUint64(br)
		if err != nil {
			return nil, err
		}
		levels := make([]string, nLevels64)
		for i := range levels {
			s, err := common.ReadString(br)
			if err != nil {
				return nil, err
			}
			levels[i] = s
		}
		codes := make([]int32, n)
		for i := range codes {
			v, err := common.ReadUint64(br)
			if err != nil {
				return nil, err
			}
			codes[i] = int32(int64(v))
		}
		col.Levels = levels
		col.Codes = codes

	default: // column.KindString
		vals := make([]string, n)
		for i := range vals {
			s, err := common.ReadString(br)
			if err != nil {
				return nil, err
			}
			vals[i] = s
		}
		col.Strings = vals
	}

	return col, nil
}
