package parbst

import "sync"

const (
	firstSlab = 8   // size of the first slab of an arena
	slabSize  = 512 // maximum number of nodes allocated at once by an arena
)

// arena hands out nodes from slabs. An arena belongs to a single worker and must
// not be shared between goroutines while the tree is being built.
//
// Nodes never move: a slab is allocated once and only appended to, so pointers
// into it stay valid until the arena is released.
//
// The shared arena of a tree is the exception: it serves all callers of
// Tree.Insert and serializes allocations with guard.
type arena struct {
	guard *sync.Mutex
	slabs [][]node
	cur   []node
	cnt   int
}

// newArena creates an arena and registers it with t, which keeps it alive for the
// lifetime of the tree. It returns the arena's registration number as well, which
// does not count the shared arena.
func (t *Tree) newArena() (*arena, int) {
	a := &arena{}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arenas = append(t.arenas, a)
	id := len(t.arenas) - 1
	if t.shared != nil {
		id--
	}
	return a, id
}

// sharedArena returns the arena of t which is used for single inserts, creating it
// on first use.
func (t *Tree) sharedArena() *arena {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.shared == nil {
		t.shared = &arena{guard: &sync.Mutex{}}
		t.arenas = append(t.arenas, t.shared)
	}
	return t.shared
}

// alloc returns a fresh node holding key, with both child slots empty.
func (a *arena) alloc(key uint32) *node {
	if a.guard != nil {
		a.guard.Lock()
		defer a.guard.Unlock()
	}
	if len(a.cur) == cap(a.cur) {
		size := slabSize
		if len(a.slabs) == 0 {
			size = firstSlab
		} else if c := 2 * cap(a.cur); c < slabSize {
			size = c
		}
		a.cur = make([]node, 0, size)
		a.slabs = append(a.slabs, a.cur)
	}
	a.cur = a.cur[:len(a.cur)+1]
	n := &a.cur[len(a.cur)-1]
	n.key = key
	a.cnt++
	return n
}

// releaseArenas drops all slabs of all arenas of t. Nodes must have been detached from
// the tree before. It returns the number of nodes the arenas had handed out.
func (t *Tree) releaseArenas() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, a := range t.arenas {
		total += a.cnt
		a.slabs, a.cur, a.cnt = nil, nil, 0
	}
	t.arenas, t.shared = nil, nil
	return total
}
