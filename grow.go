package sapling

import (
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"go.uber.org/zap"
)

/*
grower holds the encoded training data while a tree is grown. Rows are
referenced by their position in values and labels, and labels by their
position in labelSet, the order in which they were first seen.
*/
type grower struct {
	values   [][]feature.Value
	labels   []int
	labelSet []string
	columns  []*feature.Column
	maxDepth int
	nodes    int
	logger   *zap.Logger
}

/*
grow takes the rows reaching a node at the given depth and returns the
node, developing its subtree. A node becomes a leaf when it is at the
depth limit, when all its rows share a label or when no column splits
its rows. Otherwise it splits on the best criterion and grows a child
for each side.
*/
func (g *grower) grow(rows []int, depth int) *tree.Node {
	counts := g.count(rows)
	n := &tree.Node{Label: g.majority(counts), Weight: len(rows), Depth: depth, Counts: counts}
	g.nodes++
	if depth >= g.maxDepth || pure(counts) {
		return n
	}
	s, ok := g.bestSplit(rows)
	if !ok {
		return n
	}
	n.Criterion = s.Criterion
	thenRows, elseRows := g.partition(rows, s.Criterion)
	if ce := g.logger.Check(zap.DebugLevel, "splitting node"); ce != nil {
		ce.Write(
			zap.Int("depth", depth),
			zap.Int("rows", len(rows)),
			zap.String("criterion", s.Describe(g.columns[s.Column])),
			zap.Float64("reduction", s.reduction),
			zap.Int("then", len(thenRows)),
			zap.Int("else", len(elseRows)),
		)
	}
	n.Then = g.branch(thenRows, depth+1, n.Label)
	n.Else = g.branch(elseRows, depth+1, n.Label)
	return n
}

// branch grows a child node, or a leaf with the parent label if no rows reach it
func (g *grower) branch(rows []int, depth int, label string) *tree.Node {
	if len(rows) == 0 {
		g.nodes++
		return &tree.Node{Label: label, Depth: depth, Counts: make([]int, len(g.labelSet))}
	}
	return g.grow(rows, depth)
}

func (g *grower) count(rows []int) []int {
	counts := make([]int, len(g.labelSet))
	for _, r := range rows {
		counts[g.labels[r]]++
	}
	return counts
}

// majority returns the most frequent label, the first seen on ties
func (g *grower) majority(counts []int) string {
	var best int
	for l, c := range counts {
		if c > counts[best] {
			best = l
		}
	}
	return g.labelSet[best]
}

func pure(counts []int) bool {
	var present int
	for _, c := range counts {
		if c > 0 {
			present++
		}
	}
	return present <= 1
}
