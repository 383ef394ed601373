package tree

import (
	"github.com/pbanos/sapling/feature"
)

/*
Node is a node of the tree. Split nodes carry the criterion rows are
tested against and own their two children; leaves have no children.
*/
type Node struct {
	// The test applied to rows reaching a split node. Zero on leaves.
	feature.Criterion
	// The subtree for rows satisfying the criterion
	Then *Node
	// The subtree for rows not satisfying the criterion
	Else *Node
	// The prediction of a leaf. On split nodes, the majority label of
	// the training rows that reached the node, which is answered for
	// samples missing the criterion column.
	Label string
	// Number of training rows that reached the node
	Weight int
	// Distance to the root, which has depth 0
	Depth int
	// Training rows that reached the node per label, following the
	// order of the tree labels
	Counts []int
}

// IsLeaf returns whether the node has no children
func (n *Node) IsLeaf() bool {
	return n.Then == nil && n.Else == nil
}
