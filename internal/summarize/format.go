package summarize

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatX renders a timestamp as it appears in sentences.
func FormatX(t time.Time) string { return t.Format("January 2, 2006") }

// FormatY renders a value with thousands grouping and at most two decimals.
func FormatY(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func bold(s string) string { return "<b>" + s + "</b>" }
