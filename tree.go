package parbst

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// SlotState tells whether a slot holds a node.
type SlotState int

const (
	// Empty slots are part of the fringe of the tree.
	Empty SlotState = iota
	// Occupied slots hold a node and will never change again during a build.
	Occupied
)

func (s SlotState) String() string {
	if s == Occupied {
		return "occupied"
	}
	return "empty"
}

// slot is a child link of a node, or the root link of a tree.
//
// A slot moves from Empty to Occupied at most once. Loads are atomic, so a
// goroutine observing a node through a slot always sees it fully initialized.
// Stores happen under the lock of the node owning the slot (the root slot is
// stored to before any worker starts).
type slot struct {
	ref atomic.Pointer[node]
}

func (s *slot) state() SlotState {
	if s.ref.Load() == nil {
		return Empty
	}
	return Occupied
}

func (s *slot) load() *node {
	return s.ref.Load()
}

// link publishes n. The caller must hold the lock guarding s.
func (s *slot) link(n *node) {
	assert(s.ref.Load() == nil, "slot linked twice")
	s.ref.Store(n)
}

// detach clears the slot. Only legal after the build has completed.
func (s *slot) detach() *node {
	return s.ref.Swap(nil)
}

// node is the unit of the tree. mu guards the Empty→Occupied transition of both
// child slots, nothing else.
type node struct {
	key   uint32
	left  slot
	right slot
	mu    sync.Mutex
}

// child selects the slot a key is routed to. Duplicates go to the left.
func (n *node) child(key uint32) *slot {
	if key <= n.key {
		return &n.left
	}
	return &n.right
}

// Tree is a binary search tree which is built concurrently.
//
// Inserts may be called from any number of goroutines. All other operations
// require that no insert is running.
type Tree struct {
	root   slot
	rootMu sync.Mutex // guards the root slot
	mu     sync.Mutex // guards arenas and shared
	arenas []*arena
	shared *arena // used by Tree.Insert
	locked *xsync.Counter // lock acquisitions at the fringe
	lost   *xsync.Counter // races lost to another worker under the lock
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		locked: xsync.NewCounter(),
		lost:   xsync.NewCounter(),
	}
}

// IsEmpty reports whether the tree has no nodes.
func (t *Tree) IsEmpty() bool {
	return t == nil || t.root.state() == Empty
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t.IsEmpty() {
		return 0
	}
	cnt := 0
	t.walk(func(n *node, depth int) { cnt++ })
	return cnt
}

// Keys returns all keys of the tree in ascending order. Duplicate keys are
// contained as often as they have been inserted.
func (t *Tree) Keys() []uint32 {
	if t.IsEmpty() {
		return nil
	}
	var keys []uint32
	t.walk(func(n *node, depth int) { keys = append(keys, n.key) })
	return keys
}

// walk visits nodes in-order. It uses an explicit stack, as degenerate trees may
// be as deep as they have nodes.
func (t *Tree) walk(visit func(n *node, depth int)) {
	type frame struct {
		n     *node
		depth int
	}
	var stack []frame
	n, depth := t.root.load(), 0
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, frame{n, depth})
			n, depth = n.left.load(), depth+1
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(top.n, top.depth)
		n, depth = top.n.right.load(), top.depth+1
	}
}

// Contention reports how often workers had to coordinate at the fringe.
type Contention struct {
	Locked int64 // number of node locks acquired to link a child
	Lost   int64 // number of times the slot had been filled by another worker
}

func (c Contention) String() string {
	return fmt.Sprintf("%d locks, %d lost races", c.Locked, c.Lost)
}

// Contention returns the coordination counters accumulated by inserts.
func (t *Tree) Contention() Contention {
	if t == nil {
		return Contention{}
	}
	return Contention{Locked: t.locked.Value(), Lost: t.lost.Value()}
}
