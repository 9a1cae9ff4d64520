package parbst

import (
	"fmt"
	"io"
	"strings"
)

// MaxDotNodes is the maximum size of a tree Tree2Dot will output.
const MaxDotNodes = 1000

type nodeids struct {
	idTable map[*node]int
	max     int
}

func newtable() nodeids {
	return nodeids{
		idTable: make(map[*node]int),
		max:     1,
	}
}

func (ids nodeids) find(n *node) int {
	return ids.idTable[n]
}

func (ids *nodeids) alloc(n *node) int {
	if id := ids.find(n); id > 0 {
		return id
	}
	ids.idTable[n] = ids.max
	ids.max++
	return ids.max - 1
}

// Tree2Dot outputs the structure of a tree in Graphviz DOT format
// (for debugging purposes). Empty slots are drawn as small black circles.
//
// Trees with more than MaxDotNodes nodes are refused. Tree2Dot must not run
// concurrently with inserts.
func Tree2Dot(t *Tree, w io.Writer) error {
	if t == nil {
		return ErrNoTree
	}
	if n := t.Len(); n > MaxDotNodes {
		return fmt.Errorf("%w: %d nodes exceed maximum of %d for DOT output", ErrTreeTooLarge, n, MaxDotNodes)
	}
	var nodelist, edgelist strings.Builder
	ids := newtable()
	ids.alloc(t.root.load()) // root gets ID 1
	nilcnt := 0
	edge := func(from int, child *node) {
		if child == nil {
			nilcnt++
			nilid := fmt.Sprintf("nil%d", nilcnt)
			fmt.Fprintf(&nodelist, "\"%s\" %s;\n", nilid, emptyNode())
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%s\";\n", from, nilid)
			return
		}
		fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", from, ids.alloc(child))
	}
	t.walk(func(n *node, depth int) {
		ID := ids.alloc(n)
		fmt.Fprintf(&nodelist, "\"%d\" [label=%d %s];\n", ID, n.key, nodeDotStyles(depth))
		edge(ID, n.left.load())
		edge(ID, n.right.load())
	})
	if _, err := io.WriteString(w, "strict digraph {\n\tnode [fontname=Arial,fontsize=12];\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, nodelist.String()); err != nil {
		return err
	}
	if _, err := io.WriteString(w, edgelist.String()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.1,style=filled]"
}

// nodeDotStyles shades nodes darker with increasing depth.
func nodeDotStyles(depth int) string {
	s := ",style=filled,color=black,shape=circle"
	s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[min(depth, len(hexcolors)-1)])
	return s
}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
