package main

import (
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/npillmayer/parbst"
	"golang.org/x/term"
)

// reporter prints the results of a build run.
type reporter struct {
	w      io.Writer
	title  *color.Color
	label  *color.Color
	value  *color.Color
	good   *color.Color
	dimmed *color.Color
}

func newReporter(w io.Writer, colored bool) *reporter {
	rep := &reporter{
		w:      w,
		title:  color.New(color.FgBlue, color.Bold),
		label:  color.New(color.FgCyan),
		value:  color.New(color.FgYellow),
		good:   color.New(color.FgGreen, color.Bold),
		dimmed: color.New(color.Faint),
	}
	for _, c := range []*color.Color{rep.title, rep.label, rep.value, rep.good, rep.dimmed} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return rep
}

// isTerminal checks whether w writes to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (rep *reporter) banner(version string) {
	rep.title.Fprintf(rep.w, "BST v%s [Go]\n", version)
}

func (rep *reporter) configuration(cfg parbst.Config) {
	rep.label.Fprint(rep.w, "configuration: ")
	rep.value.Fprintf(rep.w, "%d values with seed of %d with number of threads: %d (%s)\n",
		cfg.Count, int32(cfg.Seed), cfg.Workers, cfg.Schedule)
}

func (rep *reporter) timing(count int, elapsed time.Duration) {
	secs := elapsed.Seconds()
	rep.label.Fprint(rep.w, "compute time: ")
	rep.value.Fprintf(rep.w, "%.4f s\n", secs)
	rep.label.Fprint(rep.w, "throughput: ")
	if secs > 0 {
		rep.value.Fprintf(rep.w, "%.3f Mvalues/s\n", float64(count)*0.000001/secs)
	} else {
		rep.value.Fprintln(rep.w, "n/a")
	}
}

func (rep *reporter) stats(shape parbst.Shape, c parbst.Contention) {
	rep.label.Fprint(rep.w, "shape: ")
	rep.value.Fprintln(rep.w, shape.String())
	rep.label.Fprint(rep.w, "contention: ")
	rep.value.Fprintln(rep.w, c.String())
}

func (rep *reporter) progress(p parbst.Progress) {
	rep.dimmed.Fprintf(rep.w, "progress: %3.0f%% (%d of %d values)\n", p.Fraction()*100, p.Done, p.Total)
}

func (rep *reporter) note(format string, args ...interface{}) {
	rep.dimmed.Fprintf(rep.w, format+"\n", args...)
}

func (rep *reporter) verified(count int) {
	rep.good.Fprintf(rep.w, "verified: %d nodes\n", count)
}
