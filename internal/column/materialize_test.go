package column

import (
	"bufio"
	"strings"
	"testing"

	"github.com/tablon/tablon/internal/options"
	"github.com/tablon/tablon/internal/token"
)

func tokenizeBody(t *testing.T, data string) *token.ParsedBuffer {
	t.Helper()
	o := options.Default()
	o.Header = false
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	tk := token.New(o)
	buf := token.NewParsedBuffer()
	r := bufio.NewReader(strings.NewReader(data))
	if _, _, err := tk.Run(r, buf, -1, 0, false); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return buf
}

func TestMaterializeInt64Column(t *testing.T) {
	buf := tokenizeBody(t, "1,x\n2,y\n3,z\n")
	o := options.Default()
	o.Header = false
	_ = o.Validate()
	sets := NewSets(o)

	col, err := Materialize(buf, 0, 0, 3, options.Unset, o, sets)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if col.Kind != KindInt64 {
		t.Fatalf("Kind = %v, want int64", col.Kind)
	}
	if got := col.Int64s; got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("Int64s = %v", got)
	}
}

func TestMaterializePromotesIntToFloat(t *testing.T) {
	buf := tokenizeBody(t, "1\n2\n3.5\n")
	o := options.Default()
	o.Header = false
	_ = o.Validate()
	sets := NewSets(o)

	col, err := Materialize(buf, 0, 0, 3, options.Unset, o, sets)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if col.Kind != KindFloat64 {
		t.Fatalf("Kind = %v, want float64", col.Kind)
	}
	if col.Float64s[0] != 1.0 || col.Float64s[2] != 3.5 {
		t.Fatalf("Float64s = %v", col.Float64s)
	}
}

func TestMaterializeRestartsToStringPastBool(t *testing.T) {
	buf := tokenizeBody(t, "1\n2\nhello\n")
	o := options.Default()
	o.Header = false
	_ = o.Validate()
	sets := NewSets(o)

	col, err := Materialize(buf, 0, 0, 3, options.Unset, o, sets)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if col.Kind != KindString {
		t.Fatalf("Kind = %v, want string", col.Kind)
	}
	if col.Strings[0] != "1" || col.Strings[2] != "hello" {
		t.Fatalf("Strings = %v", col.Strings)
	}
}

func TestMaterializeBoolColumn(t *testing.T) {
	buf := tokenizeBody(t, "true\nfalse\ntrue\n")
	o := options.Default()
	o.Header = false
	_ = o.Validate()
	sets := NewSets(o)

	col, err := Materialize(buf, 0, 0, 3, options.Unset, o, sets)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if col.Kind != KindBool {
		t.Fatalf("Kind = %v, want bool", col.Kind)
	}
	if !col.Bools[0] || col.Bools[1] || !col.Bools[2] {
		t.Fatalf("Bools = %v", col.Bools)
	}
}

func TestMaterializeMissingValues(t *testing.T) {
	buf := tokenizeBody(t, "1,a\nNA,b\n3,\n")
	o := options.Default()
	o.Header = false
	_ = o.Validate()
	sets := NewSets(o)

	col0, err := Materialize(buf, 0, 0, 3, options.Unset, o, sets)
	if err != nil {
		t.Fatalf("Materialize(col0) error = %v", err)
	}
	if col0.Missing.Get(0) || !col0.Missing.Get(1) || col0.Missing.Get(2) {
		t.Fatalf("col0 missing mask wrong")
	}

	col1, err := Materialize(buf, 1, 0, 3, options.Unset, o, sets)
	if err != nil {
		t.Fatalf("Materialize(col1) error = %v", err)
	}
	if col1.Kind != KindString {
		t.Fatalf("col1 Kind = %v, want string", col1.Kind)
	}
	if col1.Missing.Get(0) || col1.Missing.Get(1) || !col1.Missing.Get(2) {
		t.Fatalf("col1 missing mask wrong")
	}
}

func TestMaterializeDeclaredTypeRejectsBadValue(t *testing.T) {
	buf := tokenizeBody(t, "1\nabc\n")
	o := options.Default()
	o.Header = false
	_ = o.Validate()
	sets := NewSets(o)

	if _, err := Materialize(buf, 0, 0, 2, options.Int64, o, sets); err == nil {
		t.Fatalf("Materialize(declared i64) = nil error, want error on non-numeric value")
	}
}

func TestMaterializeQuotedEmptyStringIsNotMissing(t *testing.T) {
	buf := tokenizeBody(t, "a,\"\"\nb,\n")
	o := options.Default()
	o.Header = false
	_ = o.Validate()
	sets := NewSets(o)

	col, err := Materialize(buf, 1, 0, 2, options.Unset, o, sets)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if col.Kind != KindString {
		t.Fatalf("Kind = %v, want string", col.Kind)
	}
	if col.Missing.Get(0) {
		t.Fatalf("quoted empty cell marked missing, want non-missing empty string")
	}
	if col.Strings[0] != "" {
		t.Fatalf("Strings[0] = %q, want empty string", col.Strings[0])
	}
	if !col.Missing.Get(1) {
		t.Fatalf("unquoted empty cell not marked missing")
	}
}

func TestMaterializeMakeFactors(t *testing.T) {
	buf := tokenizeBody(t, "red\nblue\nred\n")
	o := options.Default()
	o.Header = false
	o.MakeFactors = true
	_ = o.Validate()
	sets := NewSets(o)

	col, err := Materialize(buf, 0, 0, 3, options.Unset, o, sets)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if col.Kind != KindFactor {
		t.Fatalf("Kind = %v, want factor", col.Kind)
	}
	if len(col.Levels) != 2 || col.Codes[0] != col.Codes[2] {
		t.Fatalf("Levels/Codes = %v %v", col.Levels, col.Codes)
	}
}
