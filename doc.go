/*
Package parbst builds a binary search tree from many goroutines at once.

Workers insert keys into a single shared tree. There is no global lock: every node
carries its own mutex, and a worker takes a node's mutex only when it is about to
link a new child into an empty slot of that node. Descending through slots which
are already populated needs no locking at all, as a slot transitions from empty to
populated at most once and is never changed afterwards. Contention therefore
concentrates at the fringe of the tree rather than near the root.

A typical run looks like this:

	tree, err := parbst.Build(parbst.Config{Count: 100000, Seed: 0, Workers: 8})
	if err != nil {
		...
	}
	n, err := parbst.VerifyAndRelease(tree) // n == 100000

Keys are produced by package scramble, which maps sequential indices to widely
separated values. The tree is not balanced and does not support deletion or
concurrent lookups; after the build it is owned by a single goroutine which
verifies the ordering invariant and releases the nodes.

Duplicate keys are retained as distinct nodes and are routed into the left subtree.

_________________________________________________________________________

# BSD 3-Clause License

Copyright (c) Norbert Pillmayer. All rights reserved.

Please refer to the LICENSE file for details.
*/
package parbst

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
