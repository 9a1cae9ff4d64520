package parbst

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Progress is published to Config.Progress whenever a worker has finished a block
// of indices.
type Progress struct {
	Worker int // ID of the inserter which finished the block
	Done   int // number of values inserted so far, including the seeding value
	Total  int // number of values of the build
}

// Fraction returns the completed share of the build, between 0 and 1.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Done) / float64(p.Total)
}

// Build creates a tree holding cfg.Count keys.
//
// The seeding key is inserted first, from the calling goroutine. Afterwards the
// indices 1…Count-1 are distributed among cfg.Workers goroutines, which insert
// the keys for their indices concurrently. Build returns after all workers have
// finished. Every index is processed exactly once, so the tree will contain
// exactly Count nodes.
func Build(cfg Config) (*Tree, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	T().Infof("parbst: %d values with seed of %d with %d workers (%s)",
		cfg.Count, cfg.Seed, cfg.Workers, cfg.Schedule)
	b := &builder{cfg: cfg, tree: NewTree()}
	b.tree.Inserter().Insert(cfg.SeedKey(cfg.Seed))
	b.done.Store(1)
	var err error
	switch cfg.Schedule {
	case Static:
		err = b.static()
	case Dynamic:
		err = b.dynamic()
	}
	if err != nil {
		return nil, err
	}
	T().Infof("parbst: tree complete, %s", b.tree.Contention())
	return b.tree, nil
}

type builder struct {
	cfg  Config
	tree *Tree
	done atomic.Int64
}

// static splits the index range into one contiguous block per worker.
func (b *builder) static() error {
	var g errgroup.Group
	n, w := b.cfg.Count-1, b.cfg.Workers
	size, rem := n/w, n%w
	lo := 1
	for worker := 0; worker < w; worker++ {
		hi := lo + size
		if worker < rem {
			hi++
		}
		if hi > lo {
			ins := b.tree.Inserter()
			from, to := lo, hi
			T().Debugf("parbst: worker %d inserts indices [%d,%d)", ins.ID(), from, to)
			g.Go(func() error {
				return b.run(ins, from, to)
			})
		}
		lo = hi
	}
	assert(lo == b.cfg.Count, "static schedule does not cover all indices")
	return g.Wait()
}

// dynamic hands out batches of indices to a pool of at most Workers goroutines.
// Inserters are recycled between batches, so there are never more arenas than
// workers.
func (b *builder) dynamic() error {
	T().Debugf("parbst: %d workers claim batches of %d indices", b.cfg.Workers, b.cfg.BatchSize)
	var g errgroup.Group
	g.SetLimit(b.cfg.Workers)
	pool := make(chan *Inserter, b.cfg.Workers)
	for i := 0; i < b.cfg.Workers; i++ {
		pool <- b.tree.Inserter()
	}
	for lo := 1; lo < b.cfg.Count; lo += b.cfg.BatchSize {
		from, to := lo, min(lo+b.cfg.BatchSize, b.cfg.Count)
		g.Go(func() error {
			ins := <-pool
			defer func() { pool <- ins }()
			return b.run(ins, from, to)
		})
	}
	return g.Wait()
}

// run inserts the keys for indices lo…hi-1. It is called from worker goroutines
// and must not trace: the core tracer is shared and not safe for concurrent use.
func (b *builder) run(ins *Inserter, lo, hi int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d: %v", ErrBuildFailed, ins.ID(), r)
		}
	}()
	step := b.cfg.BatchSize
	for from := lo; from < hi; from += step {
		to := min(from+step, hi)
		for i := from; i < to; i++ {
			ins.Insert(b.cfg.Keys(uint32(i), b.cfg.Seed))
		}
		b.report(ins.ID(), to-from)
	}
	return nil
}

func (b *builder) report(worker int, n int) {
	done := b.done.Add(int64(n))
	if b.cfg.Progress == nil {
		return
	}
	b.cfg.Progress.Pub(Progress{Worker: worker, Done: int(done), Total: b.cfg.Count})
}
