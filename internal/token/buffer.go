// Package token implements the single-pass byte-level tokenizer (spec.md
// §4.C) and its output, ParsedBuffer (spec.md §3). The tokenizer scans a
// byte stream exactly once, classifying bytes with internal/classify
// against a small set of specialization flags (comments, blank-skipping,
// C-style escapes, space-separated mode), and records field and line
// boundaries into the flat buffer.Indexes/buffer.Bits arrays without ever
// materializing a field string — that happens later, in internal/extract,
// against a [left,right] byte range.
package token

import "github.com/tablon/tablon/internal/buffer"

// ParsedBuffer is the shared intermediate the tokenizer writes and the
// header/materializer packages read. Offsets are 0-based: bytes[0] is the
// leading sentinel, bounds[k] is the index of the sentinel terminating
// field k (1-based), bounds[0]=0 points at the leading sentinel, and field
// k's content is bytes[bounds[k-1]+1 : bounds[k]]. lines[r] is the
// cumulative number of fields at the end of row r (lines[0]=0).
type ParsedBuffer struct {
	Bytes  *buffer.Bytes
	Bounds *buffer.Indexes
	Lines  *buffer.Indexes
	Quoted *buffer.Bits
}

// NewParsedBuffer allocates an empty ParsedBuffer and writes the dummy
// bounds[0]=0, lines[0]=0, and leading sentinel byte that every parse
// begins with (spec.md §4.C "Initialization").
func NewParsedBuffer() *ParsedBuffer {
	pb := &ParsedBuffer{
		Bytes:  buffer.NewBytes(4096),
		Bounds: buffer.NewIndexes(256),
		Lines:  buffer.NewIndexes(64),
		Quoted: buffer.NewBits(256),
	}
	pb.Bytes.WriteByte('\n')
	pb.Bounds.Push(0)
	pb.Lines.Push(0)
	return pb
}

// Fields returns the number of fields tokenized so far (excludes the dummy
// bounds[0] entry).
func (pb *ParsedBuffer) Fields() int { return pb.Bounds.Len() - 1 }

// Rows returns the number of rows tokenized so far (excludes the dummy
// lines[0] entry).
func (pb *ParsedBuffer) Rows() int { return pb.Lines.Len() - 1 }

// FieldRange returns the [left,right) byte range of 1-based field k,
// excluding the trailing sentinel. left == right (an empty range) means the
// field is empty; extractors must treat that as "empty", not an error.
func (pb *ParsedBuffer) FieldRange(k int) (left, right int) {
	left = pb.Bounds.At(k-1) + 1
	right = pb.Bounds.At(k)
	return left, right
}

// FieldBytes returns the raw bytes of 1-based field k (no sentinel, no
// copy). Callers must not retain the slice past further tokenizing.
func (pb *ParsedBuffer) FieldBytes(k int) []byte {
	left, right := pb.FieldRange(k)
	if left > right {
		return nil
	}
	return pb.Bytes.Slice(left, right)
}

// FieldQuoted reports whether 1-based field k was written inside a quoted
// region. Quoted has no leading dummy entry, so field k maps to bit k-1.
func (pb *ParsedBuffer) FieldQuoted(k int) bool { return pb.Quoted.Get(k - 1) }

// RowFields returns the 1-based, inclusive field index range [first,last]
// of 1-based row r, derived from the cumulative field counts in Lines.
func (pb *ParsedBuffer) RowFields(r int) (first, last int) {
	first = pb.Lines.At(r-1) + 1
	last = pb.Lines.At(r)
	return first, last
}
