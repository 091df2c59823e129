package token

import (
	"bufio"
	"io"
)

// window carries the tokenizer's 2-byte lookahead (chr, nextchr, eof) as an
// explicit tiny state threaded through the scan loop, rather than a
// peekable iterator — spec.md §9 calls this out specifically as more
// amenable to inlining and closer to the reference design's intent.
type window struct {
	r *bufio.Reader

	pending    byte
	hasPending bool

	chr   byte
	chrOk bool

	nextchr byte
	nextOk  bool
}

// newWindow constructs a window over r. If hasFirst is true, first is
// treated as an already-consumed byte the caller peeked ahead on a prior
// tokenizer call (the header/body chaining mechanism of spec.md §5/§8
// property 6); it is returned as the first chr without a further read.
func newWindow(r *bufio.Reader, first byte, hasFirst bool) *window {
	return &window{r: r, pending: first, hasPending: hasFirst}
}

// advance consumes one byte into chr (from the pending chain byte if one is
// queued, else from the reader) and re-peeks nextchr. chrOk is false once
// the stream is exhausted.
func (w *window) advance() error {
	if w.hasPending {
		w.chr = w.pending
		w.chrOk = true
		w.hasPending = false
	} else {
		b, err := w.r.ReadByte()
		if err == io.EOF {
			w.chrOk = false
			w.nextOk = false
			return nil
		} else if err != nil {
			return err
		}
		w.chr = b
		w.chrOk = true
	}

	nb, err := w.r.Peek(1)
	if err != nil {
		w.nextOk = false
		return nil
	}
	w.nextOk = true
	w.nextchr = nb[0]
	return nil
}
