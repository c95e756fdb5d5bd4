package summarize

import (
	"context"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/chartsense/internal/series"
)

// Result is the output of one strategy.
type Result struct {
	Kind   Kind           `json:"kind" yaml:"kind"`
	Groups []SummaryGroup `json:"groups" yaml:"groups"`
}

// Engine evaluates several strategies over the same snapshot. Strategies
// share no state, so they run concurrently; results keep the requested order.
type Engine struct {
	Logger *slog.Logger
}

// NewEngine returns an Engine logging to logger, or discarding logs if nil.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{Logger: logger}
}

func (e *Engine) logger() *slog.Logger {
	if e == nil || e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

// Run evaluates kinds (all strategies when empty) over points. The config is
// validated once up front so a bad value fails before any work starts.
func (e *Engine) Run(ctx context.Context, points []series.Point, cfg Config, kinds ...Kind) ([]Result, error) {
	cfg, err := prepare(cfg)
	if err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		kinds = Kinds()
	}
	strategies := make([]Summarizer, len(kinds))
	for i, k := range kinds {
		s, err := New(k)
		if err != nil {
			return nil, err
		}
		strategies[i] = s
	}

	log := e.logger()
	results := make([]Result, len(kinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			groups, err := s.Summarize(points, cfg)
			if err != nil {
				return err
			}
			n := 0
			for _, gr := range groups {
				n += len(gr.Summaries)
			}
			log.Debug("strategy finished", "kind", s.Kind().String(), "points", len(points), "groups", len(groups), "summaries", n)
			results[i] = Result{Kind: s.Kind(), Groups: groups}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Groups flattens results into one ordered list of groups.
func Groups(results []Result) []SummaryGroup {
	var out []SummaryGroup
	for _, r := range results {
		out = append(out, r.Groups...)
	}
	return out
}
