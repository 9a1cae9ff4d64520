package parbst

// Inserter inserts keys into a tree on behalf of a single goroutine. Every
// goroutine inserting concurrently needs an Inserter of its own, as it owns the
// arena the new nodes are allocated from.
type Inserter struct {
	tree  *Tree
	arena *arena
	id    int
	cnt   int
}

// Inserter creates an inserter for t.
func (t *Tree) Inserter() *Inserter {
	a, id := t.newArena()
	return &Inserter{tree: t, arena: a, id: id}
}

// ID identifies ins among the inserters of its tree. IDs are assigned in order of
// creation, starting at 0.
func (ins *Inserter) ID() int {
	return ins.id
}

// Insert adds key to the tree.
func (ins *Inserter) Insert(key uint32) {
	ins.tree.insert(key, ins.arena)
	ins.cnt++
}

// Count returns the number of keys inserted through ins.
func (ins *Inserter) Count() int {
	return ins.cnt
}

// Insert adds key to t. It is safe for concurrent use. All callers allocate from
// one arena shared by the tree, which is guarded by a mutex; bulk inserts should
// go through an Inserter.
func (t *Tree) Insert(key uint32) {
	t.insert(key, t.sharedArena())
}

// insert descends from the root to the fringe and links a new node for key.
//
// Slots which already hold a node are followed without locking. When a slot looks
// empty, the lock of the node owning it is acquired and the slot is checked
// again: only the check under the lock is authoritative. If another worker has
// filled the slot in the meantime, we release the lock and continue the descent
// into the new child. A worker never holds more than one lock.
func (t *Tree) insert(key uint32, a *arena) {
	s, owner := &t.root, &t.rootMu
	for {
		n := s.load()
		if n == nil {
			owner.Lock()
			t.locked.Inc()
			if n = s.load(); n == nil {
				s.link(a.alloc(key))
				owner.Unlock()
				return
			}
			t.lost.Inc() // someone else was faster
			owner.Unlock()
		}
		s, owner = n.child(key), &n.mu
	}
}
