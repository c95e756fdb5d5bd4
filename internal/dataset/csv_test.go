package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_AutoDetectsColumnsAndSorts(t *testing.T) {
	in := strings.Join([]string{
		"date,visits (k),region,latency [ms]",
		"2024-08-06,12,eu,100",
		"2024-08-04,10,eu,90",
		"2024-08-05,,us,95",
		"2024-08-07,9,us,n/a",
		"2024-08-08,11,eu,80",
	}, "\n")
	got, err := ReadCSV(strings.NewReader(in), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, got, 2)

	visits := got[0]
	assert.Equal(t, "visits", visits.Label)
	assert.Equal(t, "k", visits.Unit)
	assert.Equal(t, 1, visits.Skipped)
	require.Len(t, visits.Points, 4)
	assert.Equal(t, time.Date(2024, 8, 4, 0, 0, 0, 0, time.UTC), visits.Points[0].X)
	ys := make([]float64, len(visits.Points))
	for i, p := range visits.Points {
		ys[i] = p.Y
	}
	assert.Equal(t, []float64{10, 12, 9, 11}, ys)

	latency := got[1]
	assert.Equal(t, "latency", latency.Label)
	assert.Equal(t, "ms", latency.Unit)
	assert.Len(t, latency.Points, 4, "one unparseable cell in five still counts as numeric")
	assert.Equal(t, 1, latency.Skipped)
}

func TestReadCSV_SemicolonLocale(t *testing.T) {
	in := "Tag;Umsatz\n01/02/2024;1.234,5\n02/02/2024;2.000,25\n"
	got, err := ReadCSV(strings.NewReader(in), Options{DecimalSeparator: ',', ThousandsSeparator: '.'})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Points, 2)
	assert.Equal(t, 1234.5, got[0].Points[0].Y)
	assert.Equal(t, 2000.25, got[0].Points[1].Y)
	assert.Equal(t, time.February, got[0].Points[0].X.Month(), "day-first layout wins")
}

func TestReadCSV_MonthFirstDatesKeepOrder(t *testing.T) {
	in := "date,visits\n01/11/2024,1\n01/12/2024,2\n01/13/2024,3\n01/14/2024,4\n"
	got, err := ReadCSV(strings.NewReader(in), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Points, 4)
	for i, p := range got[0].Points {
		assert.Equal(t, time.Date(2024, time.January, 11+i, 0, 0, 0, 0, time.UTC), p.X)
		assert.Equal(t, float64(i+1), p.Y)
	}
}

func TestReadCSV_OneLayoutPerColumn(t *testing.T) {
	// "31/02/2024" fits neither slash layout; the rest read month first.
	in := "date,v\n03/01/2024,1\n03/15/2024,2\n31/02/2024,9\n04/01/2024,3\n"
	got, err := ReadCSV(strings.NewReader(in), DefaultOptions())
	require.NoError(t, err)
	s := got[0]
	assert.Equal(t, 1, s.Skipped)
	require.Len(t, s.Points, 3)
	assert.Equal(t, time.March, s.Points[0].X.Month())
	assert.Equal(t, 15, s.Points[1].X.Day())
	assert.Equal(t, time.April, s.Points[2].X.Month())

	opt := DefaultOptions()
	opt.TimeLayout = "01/02/2006"
	got, err = ReadCSV(strings.NewReader("day,v\n02/01/2024,1\n03/01/2024,2\n"), opt)
	require.NoError(t, err)
	assert.Equal(t, time.February, got[0].Points[0].X.Month())
	assert.Equal(t, time.March, got[0].Points[1].X.Month())
}

func TestReadCSV_NamedColumns(t *testing.T) {
	in := "ts,a,b\n2024-01-01,1,2\n2024-01-02,3,4\n"
	opt := DefaultOptions()
	opt.TimeColumn = "TS"
	opt.ValueColumns = []string{"b"}
	got, err := ReadCSV(strings.NewReader(in), opt)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Label)
	assert.Equal(t, 4.0, got[0].Points[1].Y)

	opt.ValueColumns = []string{"missing"}
	_, err = ReadCSV(strings.NewReader(in), opt)
	assert.ErrorIs(t, err, ErrColumnNotFound)

	opt = DefaultOptions()
	opt.TimeColumn = "when"
	_, err = ReadCSV(strings.NewReader(in), opt)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2\n"), DefaultOptions())
	assert.ErrorIs(t, err, ErrNoTimeColumn)

	_, err = ReadCSV(strings.NewReader("day,name\n2024-01-01,x\n"), DefaultOptions())
	assert.ErrorIs(t, err, ErrNoValueColumns)

	got, err := ReadCSV(strings.NewReader(""), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadCSV_MaxRows(t *testing.T) {
	in := "d,v\n2024-01-01,1\n2024-01-02,2\n2024-01-03,3\n"
	got, err := ReadCSV(strings.NewReader(in), Options{MaxRows: 2})
	require.NoError(t, err)
	assert.Len(t, got[0].Points, 2)
}

func TestLoadCSV_TSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "data.tsv")
	require.NoError(t, os.WriteFile(p, []byte("d\tv\n2024-01-01\t1,5\n"), 0o644))
	got, err := LoadCSV(p, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.5, got[0].Points[0].Y)

	_, err = LoadCSV(filepath.Join(dir, "nope.csv"), DefaultOptions())
	assert.Error(t, err)
}

func TestParseNumeric(t *testing.T) {
	cases := map[string]float64{
		"1,234.5":  1234.5,
		"1.234,5":  1234.5,
		"0,5":      0.5,
		"12%":      12,
		"1 000":    1000,
		"-3.25e2":  -325,
		" 42": 42,
	}
	for in, want := range cases {
		got, ok := parseNumeric(in, Options{})
		require.True(t, ok, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}
	for _, in := range []string{"", "abc", "NaN", "Inf"} {
		_, ok := parseNumeric(in, Options{})
		assert.False(t, ok, in)
	}
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ';', sniffDelimiter([]byte("a;b;c\n1,2;3;4")))
	assert.Equal(t, '\t', sniffDelimiter([]byte("a\tb\n")))
	assert.Equal(t, ',', sniffDelimiter([]byte("single")))
}
