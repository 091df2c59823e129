// Package cmd is the tablon CLI, built the way cli/cmd/root.go in the
// sqlcode pack repo builds its cobra tree: a package-level rootCmd with
// its flags bound in init() and run by Execute; there are no subcommands,
// the root command itself runs the read. logrus is used for warnings and the --verbose progress log,
// the same logger the pack reaches for (see cli/cmd/up.go's
// logrus.StandardLogger()).
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tablon/tablon/internal/options"
)

var rootCmd = &cobra.Command{
	Use:          "tablon <file>",
	Short:        "tablon reads and converts delimited tabular text",
	Long:         "tablon is a fast, dependency-light reader for CSV/TSV/WSV-style tabular text, with a columnar in-memory model and delimited/HTML/binary-snapshot output.",
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
	RunE:         runRead,
}

var flags struct {
	noHeader      bool
	separator     string
	quote         string
	decimal       string
	na            []string
	trueStrings   []string
	falseStrings  []string
	factors       bool
	nrows         int
	names         []string
	eltypes       []string
	comments      bool
	commentChar   string
	noIgnorePad   bool
	skipStart     int
	noSkipBlanks  bool
	encoding      string
	escapes       bool
	colnames      []string // deprecated alias of --names
	coltypes      []string // deprecated alias of --eltypes

	verbose     bool
	schemaCache bool
	out         string
	format      string
}

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&flags.noHeader, "no-header", false, "treat the first row as data, not column names")
	f.StringVar(&flags.separator, "sep", ",", "field separator; a single space enables whitespace-collapsing mode")
	f.StringVar(&flags.quote, "quote", `"`, "quote mark")
	f.StringVar(&flags.decimal, "decimal", ".", "decimal point character (only '.' is supported)")
	f.StringSliceVar(&flags.na, "na", []string{"", "NA"}, "strings treated as missing values")
	f.StringSliceVar(&flags.trueStrings, "true", []string{"T", "t", "TRUE", "true"}, "strings treated as boolean true")
	f.StringSliceVar(&flags.falseStrings, "false", []string{"F", "f", "FALSE", "false"}, "strings treated as boolean false")
	f.BoolVar(&flags.factors, "factors", false, "dictionary-encode string columns as factors")
	f.IntVar(&flags.nrows, "nrows", -1, "maximum number of data rows to read (-1 for all)")
	f.StringSliceVar(&flags.names, "names", nil, "explicit column names, overriding the header row")
	f.StringSliceVar(&flags.eltypes, "eltypes", nil, "explicit per-column element types (i64, f64, bool, string), skipping type inference")
	f.BoolVar(&flags.comments, "comments", false, "recognize comment lines")
	f.StringVar(&flags.commentChar, "comment-char", "#", "comment marker")
	f.BoolVar(&flags.noIgnorePad, "no-ignore-padding", false, "keep leading/trailing whitespace in unquoted fields")
	f.IntVar(&flags.skipStart, "skip-start", 0, "number of leading lines to discard before the header")
	f.BoolVar(&flags.noSkipBlanks, "no-skip-blanks", false, "keep blank lines instead of skipping them")
	f.StringVar(&flags.encoding, "encoding", "utf8", "input encoding (only utf8 is supported)")
	f.BoolVar(&flags.escapes, "escapes", false, "recognize C-style backslash escapes")
	f.StringSliceVar(&flags.colnames, "colnames", nil, "deprecated: use --names")
	f.StringSliceVar(&flags.coltypes, "coltypes", nil, "deprecated: use --eltypes")

	f.BoolVar(&flags.verbose, "verbose", false, "log ingest progress once a second")
	f.BoolVar(&flags.schemaCache, "schema-cache", false, "consult/refresh the <file>.tablon-schema.json sidecar")
	f.StringVarP(&flags.out, "out", "o", "-", "output path ('-' for stdout)")
	f.StringVar(&flags.format, "format", "csv", "output format: csv, tsv, wsv, html, or snapshot")
}

// Execute runs the tablon CLI.
func Execute() error {
	return rootCmd.Execute()
}

// buildOptions translates the bound flags into an options.Options,
// applying the same deprecated-alias precedence options.Validate enforces
// (conflicting old+new flags are still caught there; this just wires the
// CLI's own deprecated flag names onto the deprecated struct fields).
func buildOptions() *options.Options {
	o := options.Default()
	o.Header = !flags.noHeader
	if flags.separator != "" {
		o.Separator = flags.separator[0]
	}
	if flags.quote != "" {
		o.Quotemark = []byte(flags.quote)
	}
	if flags.decimal != "" {
		o.Decimal = flags.decimal[0]
	}
	o.NAStrings = flags.na
	o.TrueStrings = flags.trueStrings
	o.FalseStrings = flags.falseStrings
	o.MakeFactors = flags.factors
	o.NRows = flags.nrows
	o.Names = flags.names
	o.AllowComments = flags.comments
	if flags.commentChar != "" {
		o.CommentMark = flags.commentChar[0]
	}
	o.IgnorePadding = !flags.noIgnorePad
	o.SkipStart = flags.skipStart
	o.SkipBlanks = !flags.noSkipBlanks
	o.Encoding = flags.encoding
	o.AllowEscapes = flags.escapes
	o.ColNames = flags.colnames
	o.ColTypes = flags.coltypes

	if len(flags.eltypes) != 0 {
		parsed := make([]options.ElType, len(flags.eltypes))
		for i, s := range flags.eltypes {
			t, err := options.ParseElType(s)
			if err != nil {
				// Deferred: runRead re-parses --eltypes and returns the
				// ConfigError before any input is read.
				parsed[i] = options.Unset
				continue
			}
			parsed[i] = t
		}
		o.ElTypes = parsed
	}

	return o
}

func logDeprecations(o *options.Options, logger *logrus.Logger) {
	for _, w := range o.DeprecationWarnings() {
		logger.Warn(w)
	}
}
