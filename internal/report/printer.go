package report

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// ResolveColors decides whether to color output. An explicit disable wins,
// then NO_COLOR and TERM=dumb, then the configured preference.
func ResolveColors(disable, configColor bool) bool {
	if disable {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return configColor
}

// Printer writes status lines for the CLI: progress to out, problems to err.
// It is safe for concurrent use.
type Printer struct {
	mu        sync.Mutex
	out, err  io.Writer
	useColors bool
}

// NewPrinter returns a Printer writing to out and err.
func NewPrinter(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

func (p *Printer) line(w io.Writer, attr color.Attribute, prefix, format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.useColors {
		color.New(attr).Fprintf(w, prefix+format+"\n", args...)
		return
	}
	fmt.Fprintf(w, prefix+format+"\n", args...)
}

// Info prints a progress line.
func (p *Printer) Info(format string, args ...any) {
	p.line(p.out, color.FgCyan, "", format, args...)
}

func (p *Printer) Success(format string, args ...any) {
	p.line(p.out, color.FgGreen, "✓ ", format, args...)
}

func (p *Printer) Warning(format string, args ...any) {
	p.line(p.err, color.FgYellow, "⚠ ", format, args...)
}

func (p *Printer) Error(format string, args ...any) {
	p.line(p.err, color.FgRed, "✗ ", format, args...)
}
