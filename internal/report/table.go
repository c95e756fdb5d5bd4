package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// NewTable returns a borderless, left-aligned table writing to w.
func NewTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}

// WriteTable renders headers and rows to w.
func WriteTable(w io.Writer, headers []string, rows [][]string) error {
	t := NewTable(w)
	t.Header(headers)
	if err := t.Bulk(rows); err != nil {
		return fmt.Errorf("table rows: %w", err)
	}
	return t.Render()
}

// RenderTable writes one row per sentence: group, validity and plain text.
func (r *Report) RenderTable(w io.Writer) error {
	rows := make([][]string, 0, r.Count())
	for _, g := range r.Groups {
		for _, s := range g.Summaries {
			rows = append(rows, []string{g.Title, fmt.Sprintf("%.2f", s.Validity), PlainText(s.Text)})
		}
	}
	return WriteTable(w, []string{"Group", "Validity", "Summary"}, rows)
}
