package parbst

import (
	"fmt"

	"github.com/caio/go-tdigest"
)

// Shape describes how (un)balanced a tree has turned out.
type Shape struct {
	Nodes     int
	Leaves    int
	Height    int     // number of nodes on the longest root-to-leaf path
	MeanDepth float64 // average depth of a node, the root having depth 0
	P50       float64 // median node depth
	P90       float64
	P99       float64
}

func (s Shape) String() string {
	return fmt.Sprintf("%d nodes, %d leaves, height %d, depth mean %.2f p50 %.0f p90 %.0f p99 %.0f",
		s.Nodes, s.Leaves, s.Height, s.MeanDepth, s.P50, s.P90, s.P99)
}

// Shape collects statistics on the depth of nodes. Depth quantiles are
// approximated with a t-digest. Shape must not run concurrently with inserts.
func (t *Tree) Shape() (Shape, error) {
	var s Shape
	if t.IsEmpty() {
		return s, ErrNoTree
	}
	td, err := tdigest.New()
	if err != nil {
		return s, err
	}
	var sum int
	t.walk(func(n *node, depth int) {
		if err != nil {
			return
		}
		s.Nodes++
		sum += depth
		if depth+1 > s.Height {
			s.Height = depth + 1
		}
		if n.left.state() == Empty && n.right.state() == Empty {
			s.Leaves++
		}
		err = td.Add(float64(depth))
	})
	if err != nil {
		return s, err
	}
	s.MeanDepth = float64(sum) / float64(s.Nodes)
	s.P50 = td.Quantile(0.5)
	s.P90 = td.Quantile(0.9)
	s.P99 = td.Quantile(0.99)
	return s, nil
}
