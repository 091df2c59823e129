package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tablon/tablon/internal/options"
	"github.com/tablon/tablon/internal/table"
	"github.com/tablon/tablon/internal/writer"
)

func runRead(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := logrus.StandardLogger()

	o := buildOptions()
	for _, s := range flags.eltypes {
		if _, err := options.ParseElType(s); err != nil {
			return fmt.Errorf("tablon: %w", err)
		}
	}
	logDeprecations(o, logger)

	cfg := &table.Config{Verbose: flags.verbose, UseSchemaCache: flags.schemaCache}

	var tbl *table.Table
	var err error
	if path == "-" {
		tbl, err = table.ReadReader(os.Stdin, o, cfg)
	} else {
		tbl, err = table.ReadFile(path, o, cfg)
	}
	if err != nil {
		return fmt.Errorf("tablon: %w", err)
	}

	out := os.Stdout
	if flags.out != "-" {
		f, createErr := os.Create(flags.out)
		if createErr != nil {
			return fmt.Errorf("tablon: create output: %w", createErr)
		}
		defer f.Close()
		out = f
	}

	switch strings.ToLower(flags.format) {
	case "csv", "tsv", "wsv":
		dcfg := writer.DefaultDelimitedConfig("")
		switch strings.ToLower(flags.format) {
		case "tsv":
			dcfg.Separator = '\t'
		case "wsv":
			dcfg.Separator = ' '
		}
		return writer.NewDelimitedWriter(dcfg).WriteStream(out, tbl)

	case "html":
		return writer.NewHTMLWriter(writer.DefaultHTMLConfig()).Write(out, tbl)

	case "snapshot":
		return writer.WriteSnapshot(out, tbl)

	default:
		return fmt.Errorf("tablon: unrecognized output format %q (want csv, tsv, wsv, html, or snapshot)", flags.format)
	}
}
