package token

import (
	"bufio"

	"github.com/tablon/tablon/internal/classify"
	"github.com/tablon/tablon/internal/options"
)

// Flags are the four specialization knobs spec.md §4.C calls out: an
// implementation SHOULD monomorphize the hot loop on these (16 generated
// routines) to elide dead branches. We take the spec's sanctioned
// alternative instead — runtime booleans guarded by ordinary branches —
// since this core isn't chasing the teacher's mmap/SIMD throughput targets
// (those are explicitly out of scope here); behavior is identical either
// way.
type Flags struct {
	AllowComments  bool
	SkipBlanks     bool
	AllowEscapes   bool
	SpaceSeparated bool
}

// FlagsFrom derives the specialization flags from resolved Options.
func FlagsFrom(o *options.Options) Flags {
	return Flags{
		AllowComments:  o.AllowComments,
		SkipBlanks:     o.SkipBlanks,
		AllowEscapes:   o.AllowEscapes,
		SpaceSeparated: o.SpaceSeparated(),
	}
}

// Tokenizer is the single-pass byte-level state machine of spec.md §4.C.
// It holds nothing but configuration; all mutable scan state lives on the
// stack of a single Run call (or is threaded through ParsedBuffer), so one
// Tokenizer can drive both the header call and the body call of one parse.
type Tokenizer struct {
	separator   byte
	quotes      classify.QuoteSet
	commentMark byte
	flags       Flags
}

// New builds a Tokenizer from resolved Options.
func New(o *options.Options) *Tokenizer {
	return &Tokenizer{
		separator:   o.Separator,
		quotes:      classify.NewQuoteSet(o.Quotemark),
		commentMark: o.CommentMark,
		flags:       FlagsFrom(o),
	}
}

func (tk *Tokenizer) isSeparator(chr byte) bool {
	if tk.flags.SpaceSeparated {
		return chr == ' ' || chr == '\t'
	}
	return chr == tk.separator
}

// Run tokenizes up to maxRows rows (maxRows < 0 means "until EOF") from r
// into buf, appending to whatever buf already contains. first/hasFirst
// chain a byte already peeked by a prior Run call on the same buf (the
// header-then-body handoff of spec.md §5 and §8 property 6). It returns
// the next unconsumed byte for a further chained call, or hasNext=false at
// true EOF.
func (tk *Tokenizer) Run(r *bufio.Reader, buf *ParsedBuffer, maxRows int, first byte, hasFirst bool) (nextByte byte, hasNext bool, err error) {
	w := newWindow(r, first, hasFirst)

	inQuotes := false
	inEscape := false
	curFieldQuoted := false
	fieldStart := true
	lineStart := true
	skipWhite := tk.flags.SpaceSeparated
	rowsThisCall := 0

	closeField := func() {
		buf.Bytes.WriteByte('\n')
		buf.Bounds.Push(buf.Bytes.Len() - 1)
		buf.Quoted.Push(curFieldQuoted)
		curFieldQuoted = false
	}
	closeLine := func() {
		buf.Lines.Push(buf.Fields())
	}
	chain := func() (byte, bool, error) {
		if err := w.advance(); err != nil {
			return 0, false, err
		}
		if !w.chrOk {
			return 0, false, nil
		}
		return w.chr, true, nil
	}

	for {
		if err = w.advance(); err != nil {
			return 0, false, err
		}
		if !w.chrOk {
			// Termination: synthesize a final field/line if the stream
			// ended mid-record rather than exactly on a row boundary.
			if !(fieldStart && lineStart) {
				closeField()
				closeLine()
			}
			return 0, false, nil
		}

		chr := w.chr

		// Step 2: comments. Recognized only when chr is the first byte of
		// a fresh field (immediately after a separator, a line break, or
		// at the very start of input) — see the "comment semantics
		// mid-line" decision in DESIGN.md. A '#' that has already seen
		// field content ahead of it is just a literal byte and falls
		// through to the ordinary state machine below.
		if tk.flags.AllowComments && !inQuotes && fieldStart && chr == tk.commentMark {
			beganAtLineStart := lineStart
			for {
				if classify.AtNewline(w.chr) {
					if w.chr == '\r' && w.nextOk && w.nextchr == '\n' {
						if err = w.advance(); err != nil {
							return 0, false, err
						}
					}
					break
				}
				if err = w.advance(); err != nil {
					return 0, false, err
				}
				if !w.chrOk {
					break
				}
			}
			if beganAtLineStart {
				// Whole line was a comment: no row emitted at all.
				fieldStart, lineStart = true, true
				if !w.chrOk {
					return 0, false, nil
				}
				continue
			}
			// Comment trailed a separator or line break: the field the
			// comment mark itself opened is virgin (fieldStart guarantees
			// zero bytes were written to it) and is discarded outright,
			// not closed as an empty trailing field. The row ends with
			// whichever fields a prior separator already closed.
			closeLine()
			rowsThisCall++
			fieldStart, lineStart = true, true
			if tk.flags.SpaceSeparated {
				skipWhite = true
			}
			if maxRows >= 0 && rowsThisCall == maxRows {
				return chain()
			}
			if !w.chrOk {
				return 0, false, nil
			}
			continue
		}

		nextchr, nextOk := w.nextchr, w.nextOk

		// Step 3: blank-line skipping. A row is blank when, at the
		// position of what would be its own terminator, nothing has been
		// written to it at all.
		if tk.flags.SkipBlanks && !inQuotes && fieldStart && lineStart && classify.IsNewlineByte(chr) {
			if chr == '\r' && nextOk && nextchr == '\n' {
				if err = w.advance(); err != nil {
					return 0, false, err
				}
			}
			continue
		}

		// Step 4: C-style escapes, outside quotes only. The merged byte
		// replaces chr and must not be reinterpreted by the newline/
		// separator/quote classification below (spec.md §4.C edge cases),
		// so inEscape gates straight to a literal append this same pass.
		if tk.flags.AllowEscapes && !inQuotes && !inEscape && classify.AtCEscape(chr, nextchr, nextOk) {
			merged, _ := classify.MergeCEscape(nextchr)
			if err = w.advance(); err != nil { // consume nextchr
				return 0, false, err
			}
			chr = merged
			inEscape = true
		}

		fieldStart = false
		lineStart = false

		switch {
		case inQuotes && inEscape:
			// The byte immediately following an escape introducer
			// (backslash or the first half of a doubled quote mark) is
			// always literal, whether or not it looks like a quote mark
			// or another escape trigger.
			buf.Bytes.WriteByte(chr)
			inEscape = false

		case inQuotes && classify.AtQuoteEscape(chr, nextchr, nextOk, tk.quotes):
			inEscape = true

		case inQuotes && tk.quotes.Contains(chr):
			inQuotes = false

		case inQuotes:
			buf.Bytes.WriteByte(chr)

		case !inQuotes && inEscape:
			buf.Bytes.WriteByte(chr)
			inEscape = false

		case tk.quotes.Contains(chr):
			inQuotes = true
			curFieldQuoted = true
			skipWhite = false

		case tk.isSeparator(chr):
			if tk.flags.SpaceSeparated && (skipWhite || (nextOk && (classify.IsWhitespace(nextchr) || classify.IsNewlineByte(nextchr)))) {
				// Mid-run whitespace, or the closing byte of a run that
				// started a fresh row: swallow it without closing a field.
				continue
			}
			closeField()
			fieldStart = true
			if tk.flags.SpaceSeparated {
				skipWhite = false
			}

		case classify.AtNewline(chr):
			if chr == '\r' && nextOk && nextchr == '\n' {
				if err = w.advance(); err != nil {
					return 0, false, err
				}
			}
			closeField()
			closeLine()
			rowsThisCall++
			fieldStart, lineStart = true, true
			if tk.flags.SpaceSeparated {
				skipWhite = true
			}
			if maxRows >= 0 && rowsThisCall == maxRows {
				return chain()
			}

		default:
			buf.Bytes.WriteByte(chr)
			skipWhite = false
		}
	}
}
