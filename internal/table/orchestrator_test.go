package table

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tablon/tablon/internal/options"
)

func TestReadReaderBasic(t *testing.T) {
	o := options.Default()
	tbl, err := ReadReader(strings.NewReader("a,b,c\n1,2.5,x\n3,4.5,y\n"), o, DefaultConfig())
	if err != nil {
		t.Fatalf("ReadReader() error = %v", err)
	}
	if tbl.NRows != 2 {
		t.Fatalf("NRows = %d, want 2", tbl.NRows)
	}
	want := []string{"a", "b", "c"}
	for i, n := range want {
		if tbl.Names[i] != n {
			t.Fatalf("Names = %v, want %v", tbl.Names, want)
		}
	}
	a, ok := tbl.Column("a")
	if !ok || a.Kind.String() != "int64" {
		t.Fatalf("column a: ok=%v kind=%v", ok, a)
	}
	b, ok := tbl.Column("b")
	if !ok || b.Kind.String() != "float64" {
		t.Fatalf("column b: ok=%v kind=%v", ok, b)
	}
	c, ok := tbl.Column("c")
	if !ok || c.Kind.String() != "string" {
		t.Fatalf("column c: ok=%v kind=%v", ok, c)
	}
}

func TestReadReaderNoHeader(t *testing.T) {
	o := options.Default()
	o.Header = false
	tbl, err := ReadReader(strings.NewReader("1,2\n3,4\n"), o, DefaultConfig())
	if err != nil {
		t.Fatalf("ReadReader() error = %v", err)
	}
	if tbl.Names[0] != "V1" || tbl.Names[1] != "V2" {
		t.Fatalf("Names = %v", tbl.Names)
	}
	if tbl.NRows != 2 {
		t.Fatalf("NRows = %d, want 2", tbl.NRows)
	}
}

func TestReadReaderSkipStart(t *testing.T) {
	o := options.Default()
	tbl, err := ReadReader(strings.NewReader("ignored banner line\na,b\n1,2\n"), o, DefaultConfig())
	if err == nil {
		t.Fatalf("ReadReader() without skipstart = %+v, want a header mismatch error", tbl)
	}

	o.SkipStart = 1
	tbl, err = ReadReader(strings.NewReader("ignored banner line\na,b\n1,2\n"), o, DefaultConfig())
	if err != nil {
		t.Fatalf("ReadReader() error = %v", err)
	}
	if tbl.Names[0] != "a" || tbl.Names[1] != "b" {
		t.Fatalf("Names = %v", tbl.Names)
	}
}

func TestReadReaderMissingValues(t *testing.T) {
	o := options.Default()
	tbl, err := ReadReader(strings.NewReader("a,b\n1,\nNA,4\n"), o, DefaultConfig())
	if err != nil {
		t.Fatalf("ReadReader() error = %v", err)
	}
	a, _ := tbl.Column("a")
	if !a.Missing.Get(1) {
		t.Fatalf("row 1 of column a should be missing (NA literal)")
	}
	b, _ := tbl.Column("b")
	if !b.Missing.Get(0) {
		t.Fatalf("row 0 of column b should be missing (empty field)")
	}
}

func TestReadReaderInconsistentRowsError(t *testing.T) {
	o := options.Default()
	_, err := ReadReader(strings.NewReader("a,b\n1,2\n3,4,5\n"), o, DefaultConfig())
	if err == nil {
		t.Fatalf("ReadReader() = nil error, want inconsistent-row error")
	}
}

func TestReadReaderEmptyInputIsStructuralError(t *testing.T) {
	o := options.Default()
	_, err := ReadReader(strings.NewReader(""), o, DefaultConfig())
	if err == nil {
		t.Fatalf("ReadReader(\"\") = nil error, want structural error")
	}
	var structErr *StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("ReadReader(\"\") error = %v (%T), want *StructuralError", err, err)
	}
}

func TestReadFileSchemaCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n3,4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg := &Config{UseSchemaCache: true}

	tbl, err := ReadFile(path, options.Default(), cfg)
	if err != nil {
		t.Fatalf("ReadFile() first read error = %v", err)
	}
	if tbl.NRows != 2 {
		t.Fatalf("NRows = %d, want 2", tbl.NRows)
	}
	if _, err := os.Stat(schemaCachePath(path)); err != nil {
		t.Fatalf("schema cache sidecar not written: %v", err)
	}

	tbl2, err := ReadFile(path, options.Default(), cfg)
	if err != nil {
		t.Fatalf("ReadFile() cached read error = %v", err)
	}
	if tbl2.NRows != 2 || tbl2.Names[0] != "a" || tbl2.Names[1] != "b" {
		t.Fatalf("cached ReadFile() = %+v", tbl2)
	}
}

func TestReadFileVerboseProgress(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	body := "a,b\n"
	for i := 0; i < 5000; i++ {
		body += "1,2\n"
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tbl, err := ReadFile(path, options.Default(), &Config{Verbose: true})
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if tbl.NRows != 5000 {
		t.Fatalf("NRows = %d, want 5000", tbl.NRows)
	}
}
