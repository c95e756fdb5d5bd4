// Package summarize turns a labeled time series into groups of scored
// natural-language sentences. Each strategy is a pure function of the input
// snapshot and a Config; nothing is cached between calls.
package summarize

// Summary is one generated sentence and the fuzzy truth degree of its claim.
// Text may wrap key phrases in <b>...</b>.
type Summary struct {
	Text     string  `json:"text" yaml:"text"`
	Validity float64 `json:"validity" yaml:"validity"`
}

// SummaryGroup is an ordered set of sentences produced by one strategy.
type SummaryGroup struct {
	Title     string    `json:"title" yaml:"title"`
	Summaries []Summary `json:"summaries" yaml:"summaries"`
}
