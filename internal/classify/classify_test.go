package classify

import "testing"

func TestIsWhitespace(t *testing.T) {
	for _, c := range []byte{'\t', '\n', '\v', '\f', '\r', ' '} {
		if !IsWhitespace(c) {
			t.Errorf("IsWhitespace(%q) = false, want true", c)
		}
	}
	for _, c := range []byte{'a', '0', ','} {
		if IsWhitespace(c) {
			t.Errorf("IsWhitespace(%q) = true, want false", c)
		}
	}
}

func TestAtBlankLine(t *testing.T) {
	if !AtBlankLine('\n', '\n', true) {
		t.Errorf("want blank line for \\n\\n")
	}
	if AtBlankLine('\n', 'a', true) {
		t.Errorf("want not-blank for \\na")
	}
	if AtBlankLine('\n', 0, false) {
		t.Errorf("want not-blank when nextOk is false")
	}
}

func TestAtQuoteEscape(t *testing.T) {
	q := NewQuoteSet([]byte{'"'})
	cases := []struct {
		chr, nextchr byte
		nextOk       bool
		want         bool
	}{
		{'\\', '"', true, true},
		{'\\', '\\', true, true},
		{'"', '"', true, true},
		{'a', 'b', true, false},
		{'\\', 'n', true, false},
	}
	for _, c := range cases {
		if got := AtQuoteEscape(c.chr, c.nextchr, c.nextOk, q); got != c.want {
			t.Errorf("AtQuoteEscape(%q,%q,%v) = %v, want %v", c.chr, c.nextchr, c.nextOk, got, c.want)
		}
	}
}

func TestAtCEscapeAndMerge(t *testing.T) {
	cases := []struct {
		nextchr byte
		merged  byte
	}{
		{'n', '\n'}, {'t', '\t'}, {'r', '\r'}, {'a', '\a'},
		{'b', '\b'}, {'f', '\f'}, {'v', '\v'}, {'\\', '\\'},
	}
	for _, c := range cases {
		if !AtCEscape('\\', c.nextchr, true) {
			t.Errorf("AtCEscape(\\,%q) = false, want true", c.nextchr)
		}
		got, ok := MergeCEscape(c.nextchr)
		if !ok || got != c.merged {
			t.Errorf("MergeCEscape(%q) = (%q,%v), want (%q,true)", c.nextchr, got, ok, c.merged)
		}
	}
	if AtCEscape('\\', 'x', true) {
		t.Errorf("AtCEscape(\\,x) = true, want false (unrecognized escape)")
	}
}

func TestCountDelimiters(t *testing.T) {
	data := []byte("a,b,c,d,e,f,g,h,i,j,k\n")
	if got := CountDelimiters(data, ','); got != 10 {
		t.Errorf("CountDelimiters(,) = %d, want 10", got)
	}
	if got := CountDelimiters(data, '\n'); got != 1 {
		t.Errorf("CountDelimiters(\\n) = %d, want 1", got)
	}
	if got := CountDelimiters(nil, ','); got != 0 {
		t.Errorf("CountDelimiters(nil) = %d, want 0", got)
	}
}
