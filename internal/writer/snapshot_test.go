package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tablon/tablon/internal/options"
	"github.com/tablon/tablon/internal/table"
)

func TestSnapshotRoundTrip(t *testing.T) {
	opts := options.Default()
	opts.MakeFactors = true
	tbl, err := table.ReadReader(strings.NewReader(
		"i,f,s,b,cat\n1,1.5,x,TRUE,red\n,2.5,y,FALSE,blue\n3,,z,TRUE,red\n"), opts, table.DefaultConfig())
	if err != nil {
		t.Fatalf("ReadReader() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, tbl); err != nil {
		t.Fatalf("WriteSnapshot() error = %v", err)
	}

	got, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot() error = %v", err)
	}

	if got.NRows != tbl.NRows {
		t.Fatalf("NRows = %d, want %d", got.NRows, tbl.NRows)
	}
	for i, name := range tbl.Names {
		if got.Names[i] != name {
			t.Fatalf("Names[%d] = %q, want %q", i, got.Names[i], name)
		}
		wantCol, gotCol := tbl.Columns[i], got.Columns[i]
		if wantCol.Kind != gotCol.Kind {
			t.Fatalf("column %q kind = %v, want %v", name, gotCol.Kind, wantCol.Kind)
		}
		for r := 0; r < tbl.NRows; r++ {
			if wantCol.Missing.Get(r) != gotCol.Missing.Get(r) {
				t.Fatalf("column %q row %d missing mismatch", name, r)
			}
		}
	}

	ic, gc := tbl.Columns[0], got.Columns[0]
	for r := range ic.Int64s {
		if !ic.Missing.Get(r) && ic.Int64s[r] != gc.Int64s[r] {
			t.Fatalf("int column row %d = %d, want %d", r, gc.Int64s[r], ic.Int64s[r])
		}
	}
	fc, gfc := tbl.Columns[1], got.Columns[1]
	for r := range fc.Float64s {
		if !fc.Missing.Get(r) && fc.Float64s[r] != gfc.Float64s[r] {
			t.Fatalf("float column row %d = %v, want %v", r, gfc.Float64s[r], fc.Float64s[r])
		}
	}
	catCol, gotCat := tbl.Columns[4], got.Columns[4]
	if len(catCol.Levels) != len(gotCat.Levels) {
		t.Fatalf("factor levels = %v, want %v", gotCat.Levels, catCol.Levels)
	}
	for r := range catCol.Codes {
		if catCol.Levels[catCol.Codes[r]] != gotCat.Levels[gotCat.Codes[r]] {
			t.Fatalf("factor row %d decodes differently", r)
		}
	}
}

func TestReadSnapshotRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("not a real snapshot stream")
	if _, err := ReadSnapshot(&buf); err == nil {
		t.Fatalf("ReadSnapshot() on garbage = nil error, want error")
	}
}
