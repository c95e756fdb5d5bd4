package summarize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/chartsense/internal/series"
)

// Kind identifies a summarization strategy.
type Kind int

const (
	KindTrendOverall Kind = iota
	KindTrendPartial
	KindWeekdayWeekend
)

var kindNames = map[Kind]string{
	KindTrendOverall:   "trend-overall",
	KindTrendPartial:   "trend-partial",
	KindWeekdayWeekend: "weekday-weekend",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrUnknownKind is returned for an unrecognized strategy name or value.
var ErrUnknownKind = errors.New("unknown summarization strategy")

// ParseKind accepts the String form, case-insensitively, with '_' or '-'.
func ParseKind(s string) (Kind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for k, name := range kindNames {
		if name == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// Kinds lists every strategy in a stable order.
func Kinds() []Kind {
	return []Kind{KindTrendOverall, KindTrendPartial, KindWeekdayWeekend}
}

// Summarizer is implemented by every strategy.
type Summarizer interface {
	Kind() Kind
	// Title is the title of the group the strategy emits.
	Title() string
	Summarize(points []series.Point, cfg Config) ([]SummaryGroup, error)
}

// New returns the strategy for kind.
func New(kind Kind) (Summarizer, error) {
	switch kind {
	case KindTrendOverall:
		return TrendOverall{}, nil
	case KindTrendPartial:
		return TrendPartial{}, nil
	case KindWeekdayWeekend:
		return WeekdayWeekend{}, nil
	default:
		return nil, fmt.Errorf("%v: %w", kind, ErrUnknownKind)
	}
}
