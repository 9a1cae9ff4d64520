package parbst

import "fmt"

// VerifyAndRelease checks the ordering invariant at every node of t, counts the
// nodes and releases them. It must not run concurrently with any insert.
//
// Nodes are visited children first. On the first violation of the ordering an
// error wrapping ErrCorruptTree is returned; the tree is partially released in
// that case and must not be used any more. On success t is empty afterwards and
// the number of nodes it held is returned.
func VerifyAndRelease(t *Tree) (int, error) {
	if t.IsEmpty() {
		return 0, ErrNoTree
	}
	cnt, err := visit(t.root.load(), bounds{}, 0, true)
	if err != nil {
		return 0, err
	}
	t.root.detach()
	if allocated := t.releaseArenas(); allocated != cnt {
		return 0, fmt.Errorf("%w: %d nodes allocated, %d nodes linked", ErrCountMismatch, allocated, cnt)
	}
	T().Debugf("parbst: verified and released %d nodes", cnt)
	return cnt, nil
}

// VerifyCount verifies and releases t, and checks that it held exactly want nodes.
func VerifyCount(t *Tree, want int) error {
	cnt, err := VerifyAndRelease(t)
	if err != nil {
		return err
	}
	if cnt != want {
		return fmt.Errorf("%w: number of nodes (%d) is not equal to number of values (%d)",
			ErrCountMismatch, cnt, want)
	}
	return nil
}

// Check validates the ordering invariant of t without modifying it.
func (t *Tree) Check() error {
	if t == nil {
		return ErrNoTree
	}
	if t.IsEmpty() {
		return nil
	}
	_, err := visit(t.root.load(), bounds{}, 0, false)
	return err
}

// bounds are the key limits a subtree inherits from its ancestors: keys must be
// greater than lo and less than or equal to hi.
type bounds struct {
	lo, hi       uint32
	hasLo, hasHi bool
}

func (b bounds) left(key uint32) bounds {
	b.hi, b.hasHi = key, true
	return b
}

func (b bounds) right(key uint32) bounds {
	b.lo, b.hasLo = key, true
	return b
}

func (b bounds) check(key uint32, depth int) error {
	if b.hasLo && key <= b.lo {
		return fmt.Errorf("%w: key %d at depth %d is not greater than ancestor key %d",
			ErrCorruptTree, key, depth, b.lo)
	}
	if b.hasHi && key > b.hi {
		return fmt.Errorf("%w: key %d at depth %d is greater than ancestor key %d",
			ErrCorruptTree, key, depth, b.hi)
	}
	return nil
}

// visit checks the subtree rooted at n and returns the number of its nodes. With
// release set, every node is detached from its children after they have been
// visited.
func visit(n *node, b bounds, depth int, release bool) (int, error) {
	if err := b.check(n.key, depth); err != nil {
		return 0, err
	}
	cnt := 1
	if l := n.left.load(); l != nil {
		if l.key > n.key {
			return 0, fmt.Errorf("%w: left subtree contains larger value (%d > %d at depth %d)",
				ErrCorruptTree, l.key, n.key, depth)
		}
		c, err := visit(l, b.left(n.key), depth+1, release)
		if err != nil {
			return 0, err
		}
		cnt += c
	}
	if r := n.right.load(); r != nil {
		if r.key <= n.key {
			return 0, fmt.Errorf("%w: right subtree contains smaller or equal value (%d <= %d at depth %d)",
				ErrCorruptTree, r.key, n.key, depth)
		}
		c, err := visit(r, b.right(n.key), depth+1, release)
		if err != nil {
			return 0, err
		}
		cnt += c
	}
	if release {
		n.left.detach()
		n.right.detach()
	}
	return cnt, nil
}
