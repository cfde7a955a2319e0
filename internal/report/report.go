// Package report renders human-facing run summaries.
//
// Tables use a rounded style on interactive terminals and fall back to plain
// alignment when output is piped, so logs and shell pipelines stay clean.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Alignment selects column alignment for Table.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Renderer writes tables and lines to a single output stream.
type Renderer struct {
	out    io.Writer
	styled bool
}

// NewRenderer builds a renderer for out, enabling table styling when out is
// an interactive terminal.
func NewRenderer(out io.Writer) *Renderer {
	styled := false
	if file, ok := out.(*os.File); ok {
		styled = isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	}
	return &Renderer{out: out, styled: styled}
}

// Table renders headers and rows with the given column alignments.
func (r *Renderer) Table(headers []string, rows [][]string, aligns []Alignment) {
	columns := len(headers)
	if columns == 0 {
		return
	}

	tw := table.NewWriter()
	if r.styled {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		tr := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				tr[i] = row[i]
			} else {
				tr[i] = ""
			}
		}
		tw.AppendRow(tr)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	fmt.Fprintln(r.out, tw.Render())
}

// Printf writes a formatted line to the renderer's stream.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// FormatBytes renders a byte count in binary units (KiB, MiB, ...).
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
