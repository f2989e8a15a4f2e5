package report

import (
	"fmt"
	"io"
	"os"

	"github.com/nickmilo/gravity-index/internal/graph"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

// Printer writes human-oriented progress and summary lines to the
// terminal. Reports go to files; the printer is for the person running
// the command.
type Printer struct {
	out io.Writer
}

// New returns a Printer writing to stderr, keeping stdout clean for
// anything a caller may want to pipe.
func New() *Printer {
	return &Printer{out: os.Stderr}
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.out, "%s%s%s\n", dim, msg, reset)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.out, "%serror:%s %s\n", red, reset, msg)
}

func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.out, "%s%s%s\n", green, msg, reset)
}

// TopNotes prints the highest-ranked notes with their scores and a short
// description of what earned each its position.
func (p *Printer) TopNotes(scores []graph.Score, n int) {
	if len(scores) == 0 {
		p.Info("no notes with connections found")
		return
	}
	if n > len(scores) {
		n = len(scores)
	}
	fmt.Fprintf(p.out, "%sTop %d notes:%s\n", bold, n, reset)
	for i, s := range scores[:n] {
		fmt.Fprintf(p.out, "  %s%2d.%s %s%s%s  %s%.1f%s  %s%s%s\n",
			cyan, i+1, reset,
			bold, s.Note, reset,
			yellow, s.Total, reset,
			dim, Describe(s), reset)
	}
}
