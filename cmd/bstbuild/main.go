/*
Command bstbuild builds a binary search tree concurrently and reports how long it
took.

	bstbuild --count 1000000 --seed 7 --workers 8
	bstbuild 1000000 7 8

The tree is verified after the build: every node has to respect the ordering of a
binary search tree, and the tree has to hold exactly as many nodes as values have
been requested. bstbuild exits with status 1 if either check fails.

_________________________________________________________________________

# BSD 3-Clause License

Copyright (c) Norbert Pillmayer. All rights reserved.

Please refer to the LICENSE file for details.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/guiguan/caster"
	"github.com/npillmayer/parbst"
	"github.com/npillmayer/parbst/scramble"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"
)

const version = "1.0"

var errUsage = errors.New("usage: bstbuild number_of_values random_seed thread_count")

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "bstbuild",
		Usage:     "build a binary search tree concurrently",
		Version:   version,
		ArgsUsage: "[number_of_values random_seed thread_count]",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "number of values to insert",
				Value:   100000,
			},
			&cli.IntFlag{
				Name:    "seed",
				Aliases: []string{"s"},
				Usage:   "random seed for the key sequence",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "number of goroutines inserting concurrently",
				Value:   runtime.GOMAXPROCS(0),
			},
			&cli.StringFlag{
				Name:  "schedule",
				Usage: "distribution of values among workers: static or dynamic",
				Value: "static",
			},
			&cli.IntFlag{
				Name:  "batch",
				Usage: "number of values a worker claims at once with the dynamic schedule",
				Value: parbst.DefaultBatchSize,
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print shape statistics and lock contention of the tree",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "report progress while building",
			},
			&cli.StringFlag{
				Name:  "dot",
				Usage: "write the tree in Graphviz DOT format to `FILE` (small trees only)",
			},
			&cli.StringFlag{
				Name:  "trace",
				Usage: "trace level: error, info or debug",
				Value: "error",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "do not color the report",
			},
		},
		Action: run,
	}
}

func run(cctx *cli.Context) error {
	if err := setupTracing(cctx.String("trace")); err != nil {
		return err
	}
	cfg, err := configFrom(cctx)
	if err != nil {
		return err
	}
	out := cctx.App.Writer
	rep := newReporter(out, !cctx.Bool("no-color") && isTerminal(out))
	rep.banner(version)
	if err := cfg.Validate(); err != nil {
		return err
	}
	rep.configuration(cfg)

	var watching chan struct{}
	if cctx.Bool("progress") {
		cast := caster.New(cctx.Context)
		watching = watchProgress(cast, newReporter(cctx.App.ErrWriter, false))
		cfg.Progress = cast
	}
	start := time.Now()
	tree, err := parbst.Build(cfg)
	elapsed := time.Since(start)
	if cfg.Progress != nil {
		cfg.Progress.Close()
		<-watching
	}
	if err != nil {
		return err
	}
	rep.timing(cfg.Count, elapsed)

	if cctx.Bool("stats") {
		shape, err := tree.Shape()
		if err != nil {
			return err
		}
		rep.stats(shape, tree.Contention())
	}
	if path := cctx.String("dot"); path != "" {
		if err := writeDot(tree, path); err != nil {
			return err
		}
		rep.note("wrote DOT output to %s", path)
	}
	if err := parbst.VerifyCount(tree, cfg.Count); err != nil {
		return err
	}
	rep.verified(cfg.Count)
	return nil
}

// configFrom reads the build parameters either from the three positional
// arguments or from flags.
func configFrom(cctx *cli.Context) (parbst.Config, error) {
	cfg := parbst.Config{
		Count:     cctx.Int("count"),
		Seed:      scramble.Seed(cctx.Int("seed")),
		Workers:   cctx.Int("workers"),
		BatchSize: cctx.Int("batch"),
	}
	switch cctx.NArg() {
	case 0:
	case 3:
		var n [3]int
		for i := range n {
			v, err := strconv.Atoi(cctx.Args().Get(i))
			if err != nil {
				return cfg, fmt.Errorf("%w: %v", errUsage, err)
			}
			n[i] = v
		}
		cfg.Count, cfg.Seed, cfg.Workers = n[0], scramble.Seed(n[1]), n[2]
	default:
		return cfg, errUsage
	}
	sched, err := parbst.ParseSchedule(cctx.String("schedule"))
	if err != nil {
		return cfg, err
	}
	cfg.Schedule = sched
	return cfg, nil
}

func setupTracing(level string) error {
	gtrace.CoreTracer = gologadapter.New()
	switch level {
	case "error":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	case "info":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	case "debug":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	default:
		return fmt.Errorf("unknown trace level %q", level)
	}
	return nil
}

func writeDot(tree *parbst.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := parbst.Tree2Dot(tree, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// watchProgress prints a line whenever the build has advanced by another tenth.
// The returned channel is closed after cast has been closed.
func watchProgress(cast *caster.Caster, rep *reporter) chan struct{} {
	done := make(chan struct{})
	sub, ok := cast.Sub(context.Background(), 256)
	if !ok {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		decile := 0
		for msg := range sub {
			p, ok := msg.(parbst.Progress)
			if !ok {
				continue
			}
			if d := int(p.Fraction() * 10); d > decile {
				decile = d
				rep.progress(p)
			}
		}
	}()
	return done
}
