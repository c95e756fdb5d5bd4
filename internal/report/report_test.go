package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/chartsense/internal/summarize"
)

func sample() *Report {
	results := []summarize.Result{
		{Kind: summarize.KindTrendPartial, Groups: []summarize.SummaryGroup{{
			Title: "Trend Partial Elaboration",
			Summaries: []summarize.Summary{
				{Text: "The value from <b>August 7, 2024</b> to <b>August 8, 2024</b> <b>increased by 21</b>.", Validity: 1},
				{Text: "The value from <b>August 7, 2024</b> to <b>August 8, 2024</b> is <b>similar around 19.5</b>.", Validity: 0},
			},
		}}},
		{Kind: summarize.KindWeekdayWeekend, Groups: []summarize.SummaryGroup{{Title: "Workday Holiday Relative", Summaries: []summarize.Summary{}}}},
	}
	return New("traffic.csv", "visits", 5, results)
}

func TestNew(t *testing.T) {
	r := sample()
	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	assert.Len(t, r.Groups, 2)
	assert.Equal(t, 2, r.Count())
	assert.False(t, r.GeneratedAt.IsZero())
	assert.NotEqual(t, r.ID, sample().ID)

	empty := New("x.csv", "y", 0, nil)
	assert.NotNil(t, empty.Groups)
}

func TestFilter(t *testing.T) {
	r := sample()
	f := r.Filter(0.5)
	assert.Equal(t, 1, f.Count())
	assert.Equal(t, 0.5, f.MinValidity)
	assert.Len(t, f.Groups, 2)
	assert.Equal(t, 2, r.Count(), "original untouched")
}

func TestMarkdown(t *testing.T) {
	md := sample().Filter(0.5).Markdown()
	assert.True(t, strings.HasPrefix(md, "[SUMMARY]\n"))
	assert.Contains(t, md, "File: traffic.csv\n")
	assert.Contains(t, md, "Series: visits\n")
	assert.Contains(t, md, "Min validity: 0.50\n")
	assert.Contains(t, md, "[TREND PARTIAL ELABORATION]\n- (1.00) The value from **August 7, 2024** to **August 8, 2024** **increased by 21**.\n")
	assert.Contains(t, md, "[WORKDAY HOLIDAY RELATIVE]\n- (no summaries)\n")
	assert.NotContains(t, md, "<b>")
}

func TestJSONAndYAML(t *testing.T) {
	r := sample()
	data, err := r.JSON()
	require.NoError(t, err)
	var back Report
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r.ID, back.ID)
	assert.Equal(t, r.Groups, back.Groups)

	y, err := r.YAML()
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(y, &m))
	assert.Equal(t, "visits", m["series"])
	assert.Contains(t, string(y), "validity: 1")
}

func TestWriteFormats(t *testing.T) {
	r := sample()
	for _, name := range []string{"md", "json", "yml", "table"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, r.Write(&buf, f), name)
		assert.NotEmpty(t, buf.String(), name)
	}
	_, err := ParseFormat("html")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.ErrorIs(t, r.Write(&bytes.Buffer{}, Format("html")), ErrUnknownFormat)
	assert.Equal(t, ".yaml", FormatYAML.Extension())
	assert.Equal(t, ".md", FormatMarkdown.Extension())
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sample().RenderTable(&buf))
	out := buf.String()
	assert.Contains(t, out, "increased by 21")
	assert.Contains(t, out, "1.00")
	assert.NotContains(t, out, "<b>")
}

func TestPrinter(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)
	p.Info("[%d/%d] Processing %s...", 1, 2, "a.csv")
	p.Success("wrote %s", "a.md")
	p.Warning("skipped %s", "b.csv")
	p.Error("bad")
	assert.Equal(t, "[1/2] Processing a.csv...\n✓ wrote a.md\n", out.String())
	assert.Equal(t, "⚠ skipped b.csv\n✗ bad\n", errOut.String())
}

func TestResolveColors(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ResolveColors(false, true))
	assert.False(t, ResolveColors(true, true))
}

func TestWriteAll(t *testing.T) {
	a, b := sample(), sample()
	b.Series = "latency"

	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, []*Report{a, b}, FormatJSON))
	var back []Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back, 2)
	assert.Equal(t, "latency", back[1].Series)

	buf.Reset()
	require.NoError(t, WriteAll(&buf, []*Report{a, b}, FormatMarkdown))
	assert.Equal(t, 2, strings.Count(buf.String(), "[SUMMARY]"))

	buf.Reset()
	require.NoError(t, WriteAll(&buf, []*Report{a}, FormatYAML))
	var one map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &one))
	assert.Equal(t, a.ID, one["id"])
}
