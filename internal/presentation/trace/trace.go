// Package trace prints a run one configuration per line.
package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// DefaultWindow is the number of cells shown on each side of the head.
const DefaultWindow = 12

// Printer writes a trace of a run.
type Printer struct {
	w       io.Writer
	profile termenv.Profile
	window  int
}

// Option configures a Printer.
type Option func(*Printer)

// WithProfile forces a color profile. termenv.Ascii disables styling.
func WithProfile(p termenv.Profile) Option {
	return func(pr *Printer) {
		pr.profile = p
	}
}

// WithWindow sets how many cells around the head are printed. 0 prints the whole tape.
func WithWindow(n int) Option {
	return func(pr *Printer) {
		pr.window = n
	}
}

// New creates a Printer writing to w, styled for the terminal's color profile.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{
		w:       w,
		profile: termenv.EnvColorProfile(),
		window:  DefaultWindow,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run drives run to completion, printing the initial configuration and one line per step.
// It honours the run's step ceiling and returns what run.Run would.
func (p *Printer) Run(run *runtime.Engine) (*domain.Result, error) {
	p.configuration(0, run, "")
	if err := run.Err(); err != nil {
		p.footer(run, err)
		return nil, err
	}

	for !run.Status().IsTerminal() {
		if !run.State().IsTerminal() && run.Steps() >= run.StepLimit() {
			res, err := run.Run()
			p.footer(run, err)
			return res, err
		}

		from, read := run.State(), run.Tape().Read()
		if _, err := run.Step(); err != nil {
			p.footer(run, err)
			return nil, err
		}
		if run.Status().IsTerminal() {
			break
		}
		p.configuration(run.Steps(), run, fmt.Sprintf("%s %s", from, read))
	}

	p.footer(run, nil)
	return run.Result(), nil
}

func (p *Printer) configuration(step int, run *runtime.Engine, via string) {
	state := p.styleState(run.State())
	line := fmt.Sprintf("%6d  %-8s %s", step, state, p.renderTape(run.Tape().Snapshot()))
	if via != "" {
		line += p.profile.String("  <- " + via).Faint().String()
	}
	fmt.Fprintln(p.w, line)
}

func (p *Printer) footer(run *runtime.Engine, err error) {
	var msg termenv.Style
	switch {
	case domain.IsUndetermined(err):
		msg = p.profile.String(fmt.Sprintf("undetermined after %d steps", run.Steps())).Foreground(p.profile.Color("#f59e0b"))
	case err != nil:
		msg = p.profile.String(fmt.Sprintf("error: %v", err)).Foreground(p.profile.Color("#ef4444"))
	default:
		msg = p.profile.String(fmt.Sprintf("%s in %d steps", run.Status(), run.Steps())).Bold()
	}
	fmt.Fprintln(p.w, msg)
}

func (p *Printer) styleState(s domain.State) string {
	name := fmt.Sprintf("%-8s", s.String())
	switch s {
	case domain.Accept:
		return p.profile.String(name).Foreground(p.profile.Color("#22c55e")).String()
	case domain.Reject:
		return p.profile.String(name).Foreground(p.profile.Color("#ef4444")).String()
	}
	return p.profile.String(name).Foreground(p.profile.Color("#818cf8")).String()
}

// renderTape prints the written extent plus the head cell. The head cell is
// bracketed, and also reversed when the profile supports styling.
func (p *Printer) renderTape(snap domain.TapeSnapshot) string {
	lo, hi := snap.Head, snap.Head
	if len(snap.Cells) > 0 {
		lo = min(lo, snap.Offset)
		hi = max(hi, snap.Offset+len(snap.Cells)-1)
	}
	if p.window > 0 {
		lo = max(lo, snap.Head-p.window)
		hi = min(hi, snap.Head+p.window)
	}

	var sb strings.Builder
	for pos := lo; pos <= hi; pos++ {
		sym := domain.Blank
		if i := pos - snap.Offset; i >= 0 && i < len(snap.Cells) {
			sym = snap.Cells[i]
		}
		if pos == snap.Head {
			sb.WriteString(p.profile.String("[" + sym.String() + "]").Reverse().String())
			continue
		}
		cell := " " + sym.String() + " "
		if sym.IsBlank() {
			cell = p.profile.String(cell).Faint().String()
		}
		sb.WriteString(cell)
	}
	return sb.String()
}
