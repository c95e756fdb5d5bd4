// Package report wraps generated summaries in a run envelope and renders it
// as markdown, JSON, YAML or a terminal table.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/chartsense/internal/summarize"
)

// Format selects a renderer.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTable    Format = "table"
)

// ErrUnknownFormat is returned by ParseFormat for an unsupported name.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts a format name; "md" and "yml" are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "table":
		return FormatTable, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// Extension is the file extension used when writing f to disk.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	case FormatTable:
		return ".txt"
	default:
		return ".md"
	}
}

// Report is the output of one summarization run over one series.
type Report struct {
	ID          string                   `json:"id" yaml:"id"`
	Source      string                   `json:"source" yaml:"source"`
	Series      string                   `json:"series" yaml:"series"`
	Unit        string                   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Points      int                      `json:"points" yaml:"points"`
	GeneratedAt time.Time                `json:"generated_at" yaml:"generated_at"`
	MinValidity float64                  `json:"min_validity" yaml:"min_validity"`
	Groups      []summarize.SummaryGroup `json:"groups" yaml:"groups"`
}

// New builds a report with a fresh run ID.
func New(source, seriesLabel string, points int, results []summarize.Result) *Report {
	groups := summarize.Groups(results)
	if groups == nil {
		groups = []summarize.SummaryGroup{}
	}
	return &Report{
		ID:          uuid.NewString(),
		Source:      source,
		Series:      seriesLabel,
		Points:      points,
		GeneratedAt: time.Now().UTC(),
		Groups:      groups,
	}
}

// Filter returns a copy keeping only sentences with validity >= threshold.
// Groups left without sentences are kept so the reader sees the strategy ran.
func (r *Report) Filter(threshold float64) *Report {
	out := *r
	out.MinValidity = threshold
	out.Groups = make([]summarize.SummaryGroup, len(r.Groups))
	for i, g := range r.Groups {
		kept := make([]summarize.Summary, 0, len(g.Summaries))
		for _, s := range g.Summaries {
			if s.Validity >= threshold {
				kept = append(kept, s)
			}
		}
		out.Groups[i] = summarize.SummaryGroup{Title: g.Title, Summaries: kept}
	}
	return &out
}

// Count is the total number of sentences.
func (r *Report) Count() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Summaries)
	}
	return n
}

// Markdown renders a compact report with bold markup converted to **.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[SUMMARY]\n")
	if r.Source != "" {
		fmt.Fprintf(&b, "File: %s\n", r.Source)
	}
	if r.Series != "" {
		if r.Unit != "" {
			fmt.Fprintf(&b, "Series: %s [%s]\n", r.Series, r.Unit)
		} else {
			fmt.Fprintf(&b, "Series: %s\n", r.Series)
		}
	}
	fmt.Fprintf(&b, "Points: %d\n", r.Points)
	if r.MinValidity > 0 {
		fmt.Fprintf(&b, "Min validity: %.2f\n", r.MinValidity)
	}
	fmt.Fprintf(&b, "Run: %s\n", r.ID)

	for _, g := range r.Groups {
		fmt.Fprintf(&b, "\n[%s]\n", strings.ToUpper(g.Title))
		if len(g.Summaries) == 0 {
			b.WriteString("- (no summaries)\n")
			continue
		}
		for _, s := range g.Summaries {
			fmt.Fprintf(&b, "- (%.2f) %s\n", s.Validity, markdownBold(s.Text))
		}
	}
	return b.String()
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(b, '\n'), nil
}

// YAML renders the report as YAML.
func (r *Report) YAML() ([]byte, error) {
	b, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return b, nil
}

// Write renders r in format f to w.
func (r *Report) Write(w io.Writer, f Format) error {
	var data []byte
	var err error
	switch f {
	case FormatTable:
		return r.RenderTable(w)
	case FormatJSON:
		data, err = r.JSON()
	case FormatYAML:
		data, err = r.YAML()
	case FormatMarkdown, "":
		data = []byte(r.Markdown())
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteAll renders several reports to w. JSON and YAML get a list when there
// is more than one report; markdown and tables are written one after another.
func WriteAll(w io.Writer, reps []*Report, f Format) error {
	if len(reps) == 1 {
		return reps[0].Write(w, f)
	}
	switch f {
	case FormatJSON:
		b, err := json.MarshalIndent(reps, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal reports: %w", err)
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case FormatYAML:
		b, err := yaml.Marshal(reps)
		if err != nil {
			return fmt.Errorf("marshal reports: %w", err)
		}
		_, err = w.Write(b)
		return err
	}
	for i, r := range reps {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Write(w, f); err != nil {
			return err
		}
	}
	return nil
}

func markdownBold(s string) string {
	return strings.NewReplacer("<b>", "**", "</b>", "**").Replace(s)
}

// PlainText strips the bold markup from a sentence.
func PlainText(s string) string {
	return strings.NewReplacer("<b>", "", "</b>", "").Replace(s)
}
