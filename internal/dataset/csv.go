// Package dataset loads time series from delimited text files.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/chartsense/internal/series"
)

var (
	ErrNoTimeColumn   = errors.New("no time column found")
	ErrNoValueColumns = errors.New("no numeric value columns found")
	ErrColumnNotFound = errors.New("column not found")
)

// Options controls how a CSV file is turned into series.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects among ',', ';', '\t'.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, auto-detect common separators (',' '.' space)
	// TimeColumn names the x column. Empty picks the first column whose
	// first non-empty value parses as a timestamp.
	TimeColumn string
	// TimeLayout is a Go time layout for the time column. Empty picks one
	// layout per column from the built-in list.
	TimeLayout string
	// ValueColumns names the y columns. Empty loads every numeric column.
	ValueColumns []string
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
}

// DefaultOptions returns reasonable defaults for loading series.
func DefaultOptions() Options {
	return Options{MaxRows: 100000}
}

// Series is one value column keyed by the time column, ascending by time.
type Series struct {
	Label  string         `json:"label" yaml:"label"`
	Unit   string         `json:"unit,omitempty" yaml:"unit,omitempty"`
	Points []series.Point `json:"points" yaml:"points"`
	// Skipped counts rows dropped for a missing or unparseable value.
	Skipped int `json:"skipped" yaml:"skipped"`
}

// LoadCSV reads path and returns one Series per value column.
func LoadCSV(path string, opt Options) ([]Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 && strings.HasSuffix(strings.ToLower(path), ".tsv") {
		opt.Delimiter = '\t'
	}
	out, err := ReadCSV(f, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// ReadCSV is LoadCSV over an arbitrary reader. The first record is the header.
func ReadCSV(rd io.Reader, opt Options) ([]Series, error) {
	br := bufio.NewReader(rd)
	delim := opt.Delimiter
	if delim == 0 {
		head, _ := br.Peek(4096)
		delim = sniffDelimiter(head)
	}
	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	var rows [][]string
	for len(rows) < maxRows {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rec)
	}

	tcol, err := timeColumn(header, rows, opt.TimeColumn)
	if err != nil {
		return nil, err
	}
	vcols, err := valueColumns(header, rows, tcol, opt)
	if err != nil {
		return nil, err
	}

	layout := opt.TimeLayout
	if layout == "" {
		layout = columnLayout(rows, tcol)
	}
	times := make([]time.Time, len(rows))
	valid := make([]bool, len(rows))
	for i, row := range rows {
		t, err := time.Parse(layout, cell(row, tcol))
		times[i], valid[i] = t, err == nil
	}

	out := make([]Series, 0, len(vcols))
	for _, c := range vcols {
		label, unit := splitUnits(header[c])
		s := Series{Label: label, Unit: unit, Points: make([]series.Point, 0, len(rows))}
		for i, row := range rows {
			if !valid[i] {
				s.Skipped++
				continue
			}
			y, ok := parseNumeric(cell(row, c), opt)
			if !ok {
				s.Skipped++
				continue
			}
			s.Points = append(s.Points, series.Point{X: times[i], Y: y})
		}
		sort.SliceStable(s.Points, func(a, b int) bool { return s.Points[a].X.Before(s.Points[b].X) })
		out = append(out, s)
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func columnIndex(header []string, name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range header {
		clean, _ := splitUnits(h)
		if strings.ToLower(h) == want || strings.ToLower(clean) == want {
			return i
		}
	}
	return -1
}

func timeColumn(header []string, rows [][]string, name string) (int, error) {
	if name != "" {
		i := columnIndex(header, name)
		if i < 0 {
			return -1, fmt.Errorf("time column %q: %w", name, ErrColumnNotFound)
		}
		return i, nil
	}
	for i := range header {
		for _, row := range rows {
			v := cell(row, i)
			if v == "" {
				continue
			}
			if _, ok := parseTimeMaybe(v); ok {
				return i, nil
			}
			break
		}
	}
	return -1, ErrNoTimeColumn
}

// valueColumns resolves the requested columns, or picks every column other
// than the time column where at least 80% of non-empty cells are numeric.
func valueColumns(header []string, rows [][]string, tcol int, opt Options) ([]int, error) {
	if len(opt.ValueColumns) > 0 {
		out := make([]int, 0, len(opt.ValueColumns))
		for _, name := range opt.ValueColumns {
			i := columnIndex(header, name)
			if i < 0 {
				return nil, fmt.Errorf("value column %q: %w", name, ErrColumnNotFound)
			}
			out = append(out, i)
		}
		return out, nil
	}
	var out []int
	for i := range header {
		if i == tcol {
			continue
		}
		var nonEmpty, numeric int
		for _, row := range rows {
			v := cell(row, i)
			if v == "" {
				continue
			}
			nonEmpty++
			if _, ok := parseNumeric(v, opt); ok {
				numeric++
			}
		}
		if numeric > 0 && numeric*5 >= nonEmpty*4 {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoValueColumns
	}
	return out, nil
}

// sniffDelimiter picks the candidate that occurs most often in the first line.
func sniffDelimiter(head []byte) rune {
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	best, bestN := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(head, []byte(string(d))); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

var timeLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "2006-01-02T15:04:05",
	"1/2/2006 15:04", "1/2/2006 15:04:05", "2 Jan 2006", "Jan 2, 2006",
}

func parseTimeMaybe(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// columnLayout picks the one layout used for every cell of col: the first
// that parses all non-empty cells, else the one parsing the most of them.
// Rows the chosen layout cannot read are skipped by the caller.
func columnLayout(rows [][]string, col int) string {
	best, bestN := timeLayouts[0], -1
	for _, l := range timeLayouts {
		var n, nonEmpty int
		for _, row := range rows {
			v := cell(row, col)
			if v == "" {
				continue
			}
			nonEmpty++
			if _, err := time.Parse(l, v); err == nil {
				n++
			}
		}
		if n == nonEmpty {
			return l
		}
		if n > bestN {
			best, bestN = l, n
		}
	}
	return best
}

func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec, thou = ',', '.'
		case cpos >= 0 && dpos >= 0:
			dec, thou = '.', ','
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

var unitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.*)\s*\(([^)]+)\)\s*$`),  // Visits (k)
	regexp.MustCompile(`^(.*)\s*\[([^\]]+)\]\s*$`), // Latency [ms]
}

func splitUnits(name string) (clean string, unit string) {
	s := strings.TrimSpace(name)
	for _, re := range unitPatterns {
		if m := re.FindStringSubmatch(s); len(m) >= 3 {
			base := strings.TrimSpace(m[1])
			u := strings.TrimSpace(m[2])
			if base != "" && u != "" {
				return base, u
			}
		}
	}
	return s, ""
}
