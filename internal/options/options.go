// Package options holds the user-facing parse configuration (spec.md §6)
// and its validation. It follows the teacher's plain-struct-with-defaults
// idiom (IndexerConfig, QueryConfig, WriterConfig, DaemonConfig) rather
// than a functional-options package.
package options

import "fmt"

// ElType is one of the four element types the core knows how to produce.
type ElType int

const (
	// Unset means "let the promotion ladder decide".
	Unset ElType = iota
	Int64
	Float64
	Bool
	String
)

func (t ElType) String() string {
	switch t {
	case Int64:
		return "i64"
	case Float64:
		return "f64"
	case Bool:
		return "bool"
	case String:
		return "string"
	default:
		return "unset"
	}
}

// ParseElType maps a user-supplied type name to an ElType.
func ParseElType(s string) (ElType, error) {
	switch s {
	case "i64", "int64", "int":
		return Int64, nil
	case "f64", "float64", "float":
		return Float64, nil
	case "bool", "boolean":
		return Bool, nil
	case "string", "str":
		return String, nil
	default:
		return Unset, &ConfigError{Msg: fmt.Sprintf("unrecognized element type %q (want i64, f64, bool, or string)", s)}
	}
}

// Options is the immutable-per-parse configuration for a single read.
type Options struct {
	Header        bool
	Separator     byte
	Quotemark     []byte
	Decimal       byte
	NAStrings     []string
	TrueStrings   []string
	FalseStrings  []string
	MakeFactors   bool
	NRows         int // -1 = all
	Names         []string
	ElTypes       []ElType // per-column declared type; Unset entries fall back to the promotion ladder
	AllowComments bool
	CommentMark   byte
	IgnorePadding bool
	SkipStart     int
	SkipRows      []int // must be empty; kept only so configuration errors can name it
	SkipBlanks    bool
	Encoding      string
	AllowEscapes  bool

	// Deprecated aliases. Non-empty/non-nil values conflict with Names/ElTypes.
	ColNames []string
	ColTypes []string

	// Ambient, non-spec knobs (schema cache, progress reporting) live in
	// internal/table.Config instead, since they govern the orchestrator,
	// not the tokenizer/materializer core this package configures.
}

// Default returns the spec.md §6 default configuration.
func Default() *Options {
	return &Options{
		Header:        true,
		Separator:     ',',
		Quotemark:     []byte{'"'},
		Decimal:       '.',
		NAStrings:     []string{"", "NA"},
		TrueStrings:   []string{"T", "t", "TRUE", "true"},
		FalseStrings:  []string{"F", "f", "FALSE", "false"},
		MakeFactors:   false,
		NRows:         -1,
		AllowComments: false,
		CommentMark:   '#',
		IgnorePadding: true,
		SkipStart:     0,
		SkipBlanks:    true,
		Encoding:      "utf8",
		AllowEscapes:  false,
	}
}

// SpaceSeparated reports whether the configured separator activates
// space-separated mode (spec.md §6: a separator of ' ' collapses runs of
// whitespace and also treats tab as a separator).
func (o *Options) SpaceSeparated() bool { return o.Separator == ' ' }

// ConfigError is a pre-parse configuration error (spec.md §7): unsupported
// encoding, non-'.' decimal, non-empty skiprows, invalid declared element
// type, or a conflicting deprecated+new argument pair. Reported before any
// byte of input is consumed.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "tablon: configuration error: " + e.Msg }

// Validate applies deprecated-alias resolution and rejects anything
// spec.md §6/§7 calls a configuration error. It must be called, and must
// succeed, before any tokenizing begins.
func (o *Options) Validate() error {
	if o.Encoding != "" && o.Encoding != "utf8" {
		return &ConfigError{Msg: fmt.Sprintf("unsupported encoding %q (only utf8 is supported)", o.Encoding)}
	}
	if o.Encoding == "" {
		o.Encoding = "utf8"
	}
	if o.Decimal != 0 && o.Decimal != '.' {
		return &ConfigError{Msg: fmt.Sprintf("unsupported decimal separator %q (only '.' is supported)", string(o.Decimal))}
	}
	if o.Decimal == 0 {
		o.Decimal = '.'
	}
	if len(o.SkipRows) != 0 {
		return &ConfigError{Msg: "skiprows is not supported and must be empty"}
	}

	if len(o.ColNames) != 0 {
		if len(o.Names) != 0 {
			return &ConfigError{Msg: "colnames is deprecated and conflicts with names: set only one"}
		}
		o.Names = o.ColNames
	}
	if len(o.ColTypes) != 0 {
		if len(o.ElTypes) != 0 {
			return &ConfigError{Msg: "coltypes is deprecated and conflicts with eltypes: set only one"}
		}
		parsed := make([]ElType, len(o.ColTypes))
		for i, s := range o.ColTypes {
			t, err := ParseElType(s)
			if err != nil {
				return err
			}
			parsed[i] = t
		}
		o.ElTypes = parsed
	}

	if len(o.Quotemark) == 0 {
		o.Quotemark = []byte{'"'}
	}
	if o.Separator == 0 {
		o.Separator = ','
	}
	if o.CommentMark == 0 {
		o.CommentMark = '#'
	}
	if o.NAStrings == nil {
		o.NAStrings = []string{"", "NA"}
	}
	if o.TrueStrings == nil {
		o.TrueStrings = []string{"T", "t", "TRUE", "true"}
	}
	if o.FalseStrings == nil {
		o.FalseStrings = []string{"F", "f", "FALSE", "false"}
	}
	if o.NRows == 0 {
		o.NRows = -1
	}

	return nil
}

// DeprecationWarnings returns human-readable notices for every deprecated
// alias that was actually supplied, for the caller (cmd/tablon) to log.
func (o *Options) DeprecationWarnings() []string {
	var warnings []string
	if len(o.ColNames) != 0 {
		warnings = append(warnings, "colnames is deprecated; use names instead")
	}
	if len(o.ColTypes) != 0 {
		warnings = append(warnings, "coltypes is deprecated; use eltypes instead")
	}
	return warnings
}
