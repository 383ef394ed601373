/*
Package report renders trees for people to read: as indented text, as
Graphviz DOT graphs or as tables listing their nodes.
*/
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pbanos/sapling/tree"
)

// Format is a way to render a tree
type Format string

const (
	// Text renders the tree with its branches drawn with characters
	Text Format = "text"
	// DOT renders the tree as a Graphviz directed graph
	DOT Format = "dot"
	// Table renders a table with a row per node
	Table Format = "table"
)

// Formats lists the supported formats
var Formats = []Format{Text, DOT, Table}

/*
Write takes an io.Writer, a tree and a format and writes the tree onto
the writer rendered in the format.
*/
func Write(w io.Writer, t *tree.Tree, f Format) error {
	switch f {
	case Text, "":
		return WriteText(w, t)
	case DOT:
		return WriteDOT(w, t)
	case Table:
		return WriteTable(w, t)
	}
	return fmt.Errorf("unknown report format %q, expected one of %v", f, Formats)
}

// WriteText writes the tree with its branches drawn with characters
func WriteText(w io.Writer, t *tree.Tree) error {
	_, err := io.WriteString(w, t.String())
	return err
}

/*
WriteDOT writes the tree as a Graphviz directed graph. Nodes are named
after their position in the tree snapshot, edges are labeled "then" or
"else".
*/
func WriteDOT(w io.Writer, t *tree.Tree) error {
	graphAst, err := gographviz.Parse([]byte(`digraph tree {}`))
	if err != nil {
		return fmt.Errorf("building graph: %v", err)
	}
	graph := gographviz.NewGraph()
	err = gographviz.Analyse(graphAst, graph)
	if err != nil {
		return fmt.Errorf("building graph: %v", err)
	}
	s := t.Snapshot()
	nodes := nodeList(t)
	for i, ns := range s.Nodes {
		attrs := map[string]string{"label": strconv.Quote(nodeSummary(t, nodes[i]))}
		if ns.Then < 0 {
			attrs["shape"] = "box"
		}
		err = graph.AddNode("tree", nodeName(i), attrs)
		if err != nil {
			return fmt.Errorf("adding node %d: %v", i, err)
		}
	}
	for i, ns := range s.Nodes {
		if ns.Then < 0 {
			continue
		}
		for j, child := range []int{ns.Then, ns.Else} {
			branch := []string{"then", "else"}[j]
			err = graph.AddEdge(nodeName(i), nodeName(child), true, map[string]string{"label": strconv.Quote(branch)})
			if err != nil {
				return fmt.Errorf("adding edge from node %d to %d: %v", i, child, err)
			}
		}
	}
	_, err = io.WriteString(w, graph.String())
	return err
}

/*
WriteTable writes a table with a row per node, in the order of the tree
snapshot, showing its depth, test or label, majority label, the rows it
was grown with and the position of its children.
*/
func WriteTable(w io.Writer, t *tree.Tree) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Node", Align: text.AlignRight},
		{Name: "Depth", Align: text.AlignRight},
		{Name: "Rows", Align: text.AlignRight},
	})
	tw.AppendHeader(table.Row{"Node", "Depth", "Test", "Label", "Rows", "Then", "Else"})
	s := t.Snapshot()
	nodes := nodeList(t)
	for i, ns := range s.Nodes {
		test, then, els := "-", "-", "-"
		if ns.Then >= 0 {
			test = t.Describe(nodes[i])
			then, els = strconv.Itoa(ns.Then), strconv.Itoa(ns.Else)
		}
		tw.AppendRow(table.Row{i, ns.Depth, test, ns.Label, ns.Weight, then, els})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "nodes", len(s.Nodes)})
	tw.Render()
	return nil
}

// nodeList returns the nodes of the tree in snapshot order
func nodeList(t *tree.Tree) []*tree.Node {
	var nodes []*tree.Node
	t.Traverse(context.Background(), false, func(_ context.Context, n *tree.Node) error {
		nodes = append(nodes, n)
		return nil
	})
	return nodes
}

func nodeName(i int) string {
	return fmt.Sprintf("n%d", i)
}

func nodeSummary(t *tree.Tree, n *tree.Node) string {
	var b strings.Builder
	if !n.IsLeaf() {
		b.WriteString(t.Describe(n))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s\n%d rows", n.Label, n.Weight)
	if len(n.Counts) > 0 && len(n.Counts) == len(t.Labels) {
		counts := make([]string, len(n.Counts))
		for i, c := range n.Counts {
			counts[i] = fmt.Sprintf("%s: %d", t.Labels[i], c)
		}
		fmt.Fprintf(&b, "\n%s", strings.Join(counts, ", "))
	}
	return b.String()
}
