/*
Package tree holds the model a classifier grows: binary decision trees
whose split nodes test one column of a row, the walk that turns rows into
labels, and the snapshot form used to store and restore them.
*/
package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/sapling/feature"
)

// Tree represents a binary decision tree. It is composed of
// its root node (nil for untrained trees), the columns rows
// are encoded through, the labels it can predict and its
// depth limits.
type Tree struct {
	Root        *Node
	Columns     []*feature.Column
	Labels      []string
	MaxDepth    int
	ActualDepth int
}

// New takes the root Node, the columns and labels of the training data
// and the depth limit used to grow it, and returns a tree whose
// ActualDepth is the depth of its deepest node.
func New(root *Node, columns []*feature.Column, labels []string, maxDepth int) *Tree {
	t := &Tree{Root: root, Columns: columns, Labels: labels, MaxDepth: maxDepth}
	t.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		if n.Depth > t.ActualDepth {
			t.ActualDepth = n.Depth
		}
		return nil
	})
	return t
}

// ColumnTypes returns the type of each column of the tree
func (t *Tree) ColumnTypes() []feature.Type {
	types := make([]feature.Type, len(t.Columns))
	for i, c := range t.Columns {
		types[i] = c.Type
	}
	return types
}

// ColumnNames returns the name of each column of the tree, empty for unnamed ones
func (t *Tree) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Width returns the number of columns the tree was grown with
func (t *Tree) Width() int {
	return len(t.Columns)
}

// NodeCount returns the number of nodes in the tree
func (t *Tree) NodeCount() int {
	var count int
	t.Traverse(context.Background(), false, func(context.Context, *Node) error {
		count++
		return nil
	})
	return count
}

// Describe returns the criterion of a split node as text, or its label
// for leaves.
func (t *Tree) Describe(n *Node) string {
	if n.IsLeaf() {
		return n.Label
	}
	var col *feature.Column
	if n.Column >= 0 && n.Column < len(t.Columns) {
		col = t.Columns[n.Column]
	}
	return n.Criterion.Describe(col)
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true. The Then
// child is always visited before the Else child.
// If the given context times out or is cancelled, the context
// error is returned. If the call to the function returns an
// error, the traversing is aborted and the error is returned.
// Otherwise, when the traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	if t == nil || t.Root == nil {
		return nil
	}
	return traverse(ctx, t.Root, bottomup, f)
}

func traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, n)
		if err != nil {
			return err
		}
	}
	for _, sn := range []*Node{n.Then, n.Else} {
		if sn == nil {
			continue
		}
		err = traverse(ctx, sn, bottomup, f)
		if err != nil {
			return err
		}
	}
	if bottomup {
		return f(ctx, n)
	}
	return nil
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return "[empty tree]\n"
	}
	return t.subtreeString(t.Root, "root")
}

func (t *Tree) subtreeString(n *Node, branch string) string {
	result := fmt.Sprintf("[%s]\n", branch)
	if n.IsLeaf() {
		result = fmt.Sprintf("%s{ %s, %d rows }\n \n", result, n.Label, n.Weight)
		return result
	}
	result = fmt.Sprintf("%s{ %s | majority %s, %d rows }\n|\n", result, t.Describe(n), n.Label, n.Weight)
	children := []*Node{n.Then, n.Else}
	branches := []string{"then", "else"}
	for i, sn := range children {
		for j, line := range strings.Split(t.subtreeString(sn, branches[i]), "\n") {
			if len(line) == 0 {
				continue
			}
			switch {
			case j == 0:
				result = fmt.Sprintf("%s|__%s\n", result, line)
			case i == len(children)-1:
				result = fmt.Sprintf("%s   %s\n", result, line)
			default:
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
