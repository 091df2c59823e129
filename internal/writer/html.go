package writer

import (
	"fmt"
	"html"
	"io"

	"github.com/tablon/tablon/internal/table"
)

// HTMLConfig configures the HTML table writer (spec.md §6): escape
// &<> per cell and truncate at a terminal-friendly row count.
type HTMLConfig struct {
	MaxRows  int // 0 means unlimited
	NAString string
}

// DefaultHTMLConfig returns a sensible terminal-display default.
func DefaultHTMLConfig() HTMLConfig {
	return HTMLConfig{MaxRows: 100, NAString: "NA"}
}

// HTMLWriter renders a Table as an HTML <table>.
type HTMLWriter struct {
	config HTMLConfig
}

// NewHTMLWriter builds an HTMLWriter.
func NewHTMLWriter(config HTMLConfig) *HTMLWriter {
	if config.NAString == "" {
		config.NAString = "NA"
	}
	return &HTMLWriter{config: config}
}

// Write renders t to w as a single <table> element, escaping every cell
// and header with html.EscapeString, and truncating after config.MaxRows
// rows (0 means unlimited) with a trailing note row naming how many rows
// were dropped.
func (hw *HTMLWriter) Write(w io.Writer, t *table.Table) error {
	if _, err := io.WriteString(w, "<table>\n<thead><tr>"); err != nil {
		return err
	}
	for _, name := range t.Names {
		if _, err := fmt.Fprintf(w, "<th>%s</th>", html.EscapeString(name)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</tr></thead>\n<tbody>\n"); err != nil {
		return err
	}

	n := rowCount(t)
	limit := n
	if hw.config.MaxRows > 0 && hw.config.MaxRows < n {
		limit = hw.config.MaxRows
	}
	for r := 0; r < limit; r++ {
		if _, err := io.WriteString(w, "<tr>"); err != nil {
			return err
		}
		for _, col := range t.Columns {
			cell := cellString(col, r, hw.config.NAString)
			if _, err := fmt.Fprintf(w, "<td>%s</td>", html.EscapeString(cell)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</tr>\n"); err != nil {
			return err
		}
	}
	if limit < n {
		dropped := n - limit
		if _, err := fmt.Fprintf(w, "<tr><td colspan=\"%d\">... %d more rows</td></tr>\n",
			len(t.Names), dropped); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</tbody>\n</table>\n")
	return err
}
