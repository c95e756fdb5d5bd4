package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/KaramelBytes/chartsense/internal/dataset"
	"github.com/KaramelBytes/chartsense/internal/report"
	"github.com/KaramelBytes/chartsense/internal/summarize"
)

// runFlags are the loading and engine flags shared by summarize and
// summarize-batch. Engine flags override the config only when set.
type runFlags struct {
	columns     []string
	timeColumn  string
	timeFormat  string
	strategies  []string
	metric      string
	eps         float64
	alpha       float64
	halfWindow  int
	diagonal    float64
	format      string
	minValidity float64
	delimiter   string
	decimal     string
	thousands   string
	maxRows     int
}

func (rf *runFlags) register(f *pflag.FlagSet) {
	d := summarize.DefaultConfig()
	f.StringSliceVarP(&rf.columns, "column", "c", nil, "value column(s) to summarize (default: every numeric column)")
	f.StringVar(&rf.timeColumn, "time-column", "", "time column (default: first column holding dates)")
	f.StringVar(&rf.timeFormat, "time-format", "", "Go time layout of the time column, e.g. 01/02/2006 (default: detected per column)")
	f.StringSliceVarP(&rf.strategies, "strategy", "s", nil, "strategies to run: trend-overall|trend-partial|weekday-weekend (default: all)")
	f.StringVar(&rf.metric, "metric", "", "metric name used in sentences (default: column name)")
	f.Float64Var(&rf.eps, "eps", d.Eps, "segmentation tolerance on normalized points")
	f.Float64Var(&rf.alpha, "alpha", d.EMAAlpha, "EMA smoothing factor in (0,1]")
	f.IntVar(&rf.halfWindow, "half-window", d.CenteredHalfWindow, "centered moving average half window for weekday/weekend")
	f.Float64Var(&rf.diagonal, "diagonal", d.DiagonalAngle, "chart diagonal angle in radians used to grade directions")
	f.StringVarP(&rf.format, "format", "f", string(report.FormatMarkdown), "output format: markdown|json|yaml|table")
	f.Float64Var(&rf.minValidity, "min-validity", 0, "hide sentences with validity below this value")
	f.StringVar(&rf.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	f.StringVar(&rf.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	f.StringVar(&rf.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	f.IntVar(&rf.maxRows, "max-rows", 100000, "maximum rows to read (0 = unlimited)")
}

func (rf *runFlags) datasetOptions() (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	opt.MaxRows = rf.maxRows
	opt.TimeColumn = rf.timeColumn
	opt.TimeLayout = rf.timeFormat
	opt.ValueColumns = rf.columns
	switch rf.delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", rf.delimiter)
	}
	switch strings.ToLower(strings.TrimSpace(rf.decimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", rf.decimal)
	}
	switch strings.ToLower(strings.TrimSpace(rf.thousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", rf.thousands)
	}
	return opt, nil
}

// runSettings is the effective configuration of one invocation.
type runSettings struct {
	engine      summarize.Config
	kinds       []summarize.Kind
	format      report.Format
	minValidity float64
}

func (rf *runFlags) settings(f *pflag.FlagSet) (runSettings, error) {
	s := runSettings{engine: cfg.Summarize(), minValidity: cfg.MinValidity}
	if f.Changed("metric") {
		s.engine.MetricLabel = rf.metric
	}
	if f.Changed("eps") {
		s.engine.Eps = rf.eps
	}
	if f.Changed("alpha") {
		s.engine.EMAAlpha = rf.alpha
	}
	if f.Changed("half-window") {
		s.engine.CenteredHalfWindow = rf.halfWindow
	}
	if f.Changed("diagonal") {
		s.engine.DiagonalAngle = rf.diagonal
	}
	if err := s.engine.WithDefaults().Validate(); err != nil {
		return s, err
	}

	var err error
	if f.Changed("strategy") {
		for _, name := range rf.strategies {
			k, err := summarize.ParseKind(name)
			if err != nil {
				return s, err
			}
			s.kinds = append(s.kinds, k)
		}
	} else if s.kinds, err = cfg.Kinds(); err != nil {
		return s, err
	}

	format := cfg.OutputFormat
	if f.Changed("format") {
		format = rf.format
	}
	if s.format, err = report.ParseFormat(format); err != nil {
		return s, err
	}

	if f.Changed("min-validity") {
		s.minValidity = rf.minValidity
	}
	if s.minValidity < 0 || s.minValidity > 1 {
		return s, fmt.Errorf("invalid --min-validity: %v (use 0..1)", s.minValidity)
	}
	return s, nil
}

// summarizeFile loads every value column of path and summarizes each one.
func summarizeFile(ctx context.Context, eng *summarize.Engine, path string, opt dataset.Options, s runSettings) ([]*report.Report, error) {
	all, err := dataset.LoadCSV(path, opt)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%s: no data rows", filepath.Base(path))
	}
	reps := make([]*report.Report, 0, len(all))
	for _, ser := range all {
		ecfg := s.engine
		if ecfg.MetricLabel == "" {
			ecfg.MetricLabel = ser.Label
		}
		logger.Debug("summarizing series", "file", path, "series", ser.Label, "points", len(ser.Points), "skipped", ser.Skipped)
		results, err := eng.Run(ctx, ser.Points, ecfg, s.kinds...)
		if err != nil {
			return nil, fmt.Errorf("%s [%s]: %w", filepath.Base(path), ser.Label, err)
		}
		rep := report.New(filepath.Base(path), ser.Label, len(ser.Points), results)
		rep.Unit = ser.Unit
		reps = append(reps, rep.Filter(s.minValidity))
	}
	return reps, nil
}
