package writer

import (
	"strings"
	"testing"

	"github.com/tablon/tablon/internal/options"
	"github.com/tablon/tablon/internal/table"
)

func TestHTMLWriterEscapesAndRenders(t *testing.T) {
	tbl, err := table.ReadReader(strings.NewReader("a,b\n1,<script>\n2,ok\n"), options.Default(), table.DefaultConfig())
	if err != nil {
		t.Fatalf("ReadReader() error = %v", err)
	}
	var sb strings.Builder
	hw := NewHTMLWriter(DefaultHTMLConfig())
	if err := hw.Write(&sb, tbl); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "<th>a</th>") || !strings.Contains(out, "<th>b</th>") {
		t.Fatalf("missing escaped headers, got %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("unescaped script tag leaked into output: %q", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped script tag, got %q", out)
	}
}

func TestHTMLWriterTruncatesAtMaxRows(t *testing.T) {
	csv := "a\n"
	for i := 0; i < 10; i++ {
		csv += "1\n"
	}
	tbl, err := table.ReadReader(strings.NewReader(csv), options.Default(), table.DefaultConfig())
	if err != nil {
		t.Fatalf("ReadReader() error = %v", err)
	}
	var sb strings.Builder
	hw := NewHTMLWriter(HTMLConfig{MaxRows: 3, NAString: "NA"})
	if err := hw.Write(&sb, tbl); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := sb.String()
	if strings.Count(out, "<tr>") != 5 { // header row + 3 data rows + truncation note row
		t.Fatalf("expected header + 3 data rows + 1 note row, got %q", out)
	}
	if !strings.Contains(out, "7 more rows") {
		t.Fatalf("expected truncation note naming dropped rows, got %q", out)
	}
}
