package tree

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/pbanos/sapling/feature"
)

/*
Snapshot is the flat form of a Tree, meant to be serialized. Nodes live
in an arena and point to their children by position, with -1 standing for
no child. The root is at position Root, -1 for untrained trees.
*/
type Snapshot struct {
	Columns     []ColumnSnapshot `json:"columns"`
	Labels      []string         `json:"labels"`
	MaxDepth    int              `json:"maxDepth"`
	ActualDepth int              `json:"actualDepth"`
	Root        int              `json:"root"`
	Nodes       []NodeSnapshot   `json:"nodes"`
}

// ColumnSnapshot is the flat form of a feature.Column
type ColumnSnapshot struct {
	Name   string       `json:"name,omitempty"`
	Type   feature.Type `json:"type"`
	Values []string     `json:"values,omitempty"`
}

// NodeSnapshot is the flat form of a Node
type NodeSnapshot struct {
	Column    int          `json:"column"`
	Type      feature.Type `json:"type"`
	Threshold float64      `json:"threshold"`
	Value     int          `json:"value"`
	Then      int          `json:"then"`
	Else      int          `json:"else"`
	Label     string       `json:"label"`
	Weight    int          `json:"weight"`
	Depth     int          `json:"depth"`
	Counts    []int        `json:"counts,omitempty"`
}

type nodeSnapshotFields NodeSnapshot

/*
MarshalJSON encodes the node with its threshold as a JSON number, or as
the string "+Inf" or "-Inf" for infinite thresholds.
*/
func (ns NodeSnapshot) MarshalJSON() ([]byte, error) {
	doc := struct {
		nodeSnapshotFields
		Threshold interface{} `json:"threshold"`
	}{nodeSnapshotFields(ns), ns.Threshold}
	if math.IsInf(ns.Threshold, 0) {
		doc.Threshold = strconv.FormatFloat(ns.Threshold, 'g', -1, 64)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a node as encoded by MarshalJSON
func (ns *NodeSnapshot) UnmarshalJSON(data []byte) error {
	doc := struct {
		*nodeSnapshotFields
		Threshold json.RawMessage `json:"threshold"`
	}{nodeSnapshotFields: (*nodeSnapshotFields)(ns)}
	err := json.Unmarshal(data, &doc)
	if err != nil {
		return err
	}
	ns.Threshold = 0
	if len(doc.Threshold) == 0 || string(doc.Threshold) == "null" {
		return nil
	}
	if json.Unmarshal(doc.Threshold, &ns.Threshold) == nil {
		return nil
	}
	var text string
	err = json.Unmarshal(doc.Threshold, &text)
	if err != nil {
		return fmt.Errorf("decoding node threshold %s: %v", doc.Threshold, err)
	}
	ns.Threshold, err = strconv.ParseFloat(text, 64)
	if err != nil || !math.IsInf(ns.Threshold, 0) {
		return fmt.Errorf("decoding node threshold %q: not a number nor an infinity", text)
	}
	return nil
}

/*
Snapshot returns the flat form of the tree. Nodes are laid out in
pre-order, so the root of a trained tree is at position 0.
*/
func (t *Tree) Snapshot() *Snapshot {
	s := &Snapshot{
		Columns:     make([]ColumnSnapshot, len(t.Columns)),
		Labels:      append([]string(nil), t.Labels...),
		MaxDepth:    t.MaxDepth,
		ActualDepth: t.ActualDepth,
		Root:        -1,
	}
	for i, c := range t.Columns {
		s.Columns[i] = ColumnSnapshot{Name: c.Name, Type: c.Type, Values: c.Dictionary.Values()}
	}
	if t.Root != nil {
		s.Root = s.add(t.Root)
	}
	return s
}

func (s *Snapshot) add(n *Node) int {
	i := len(s.Nodes)
	s.Nodes = append(s.Nodes, NodeSnapshot{
		Column:    n.Column,
		Type:      n.Type,
		Threshold: n.Threshold,
		Value:     n.Value,
		Then:      -1,
		Else:      -1,
		Label:     n.Label,
		Weight:    n.Weight,
		Depth:     n.Depth,
		Counts:    append([]int(nil), n.Counts...),
	})
	if n.Then != nil {
		then := s.add(n.Then)
		s.Nodes[i].Then = then
	}
	if n.Else != nil {
		els := s.add(n.Else)
		s.Nodes[i].Else = els
	}
	return i
}

/*
FromSnapshot takes a Snapshot and rebuilds the Tree it was taken from.
An error is returned if the snapshot does not describe a valid tree: a
child position out of the arena, a node reachable twice, a split node
without both children, a criterion on an unknown column or value, or
depths that do not follow from the root. A negative depth limit is taken
as 0.
*/
func FromSnapshot(s *Snapshot) (*Tree, error) {
	if s == nil {
		return nil, fmt.Errorf("restoring tree: nil snapshot")
	}
	columns := make([]*feature.Column, len(s.Columns))
	for i, cs := range s.Columns {
		if cs.Type != feature.Nominal && cs.Type != feature.Continuous {
			return nil, fmt.Errorf("restoring tree: column %d has invalid type %q", i, cs.Type)
		}
		c := &feature.Column{Name: cs.Name, Type: cs.Type}
		if cs.Type == feature.Nominal {
			c.Dictionary = feature.NewDictionary(cs.Values...)
		}
		columns[i] = c
	}
	t := &Tree{
		Columns:     columns,
		Labels:      append([]string(nil), s.Labels...),
		MaxDepth:    s.MaxDepth,
		ActualDepth: s.ActualDepth,
	}
	if t.MaxDepth < 0 {
		t.MaxDepth = 0
	}
	if s.Root < 0 {
		if len(s.Nodes) > 0 {
			return nil, fmt.Errorf("restoring tree: %d nodes but no root", len(s.Nodes))
		}
		return t, nil
	}
	r := &restorer{s: s, columns: columns, seen: make([]bool, len(s.Nodes))}
	root, err := r.node(s.Root, 0)
	if err != nil {
		return nil, fmt.Errorf("restoring tree: %v", err)
	}
	t.Root = root
	return t, nil
}

type restorer struct {
	s       *Snapshot
	columns []*feature.Column
	seen    []bool
}

func (r *restorer) node(i, depth int) (*Node, error) {
	if i < 0 || i >= len(r.s.Nodes) {
		return nil, fmt.Errorf("node %d out of range", i)
	}
	if r.seen[i] {
		return nil, fmt.Errorf("node %d is referenced more than once", i)
	}
	r.seen[i] = true
	ns := r.s.Nodes[i]
	if ns.Depth != depth {
		return nil, fmt.Errorf("node %d has depth %d, expected %d", i, ns.Depth, depth)
	}
	n := &Node{
		Criterion: feature.Criterion{Column: ns.Column, Type: ns.Type, Threshold: ns.Threshold, Value: ns.Value},
		Label:     ns.Label,
		Weight:    ns.Weight,
		Depth:     ns.Depth,
		Counts:    append([]int(nil), ns.Counts...),
	}
	if ns.Then < 0 && ns.Else < 0 {
		return n, nil
	}
	if ns.Then < 0 || ns.Else < 0 {
		return nil, fmt.Errorf("split node %d must have two children", i)
	}
	if ns.Column < 0 || ns.Column >= len(r.columns) {
		return nil, fmt.Errorf("node %d splits on unknown column %d", i, ns.Column)
	}
	col := r.columns[ns.Column]
	if ns.Type != col.Type {
		return nil, fmt.Errorf("node %d criterion type %q does not match column %d type %q", i, ns.Type, ns.Column, col.Type)
	}
	if ns.Type == feature.Nominal && (ns.Value < 0 || ns.Value >= col.Dictionary.Len()) {
		return nil, fmt.Errorf("node %d splits on unknown value %d of column %d", i, ns.Value, ns.Column)
	}
	var err error
	n.Then, err = r.node(ns.Then, depth+1)
	if err != nil {
		return nil, err
	}
	n.Else, err = r.node(ns.Else, depth+1)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Labels = append([]string(nil), s.Labels...)
	c.Columns = make([]ColumnSnapshot, len(s.Columns))
	for i, cs := range s.Columns {
		cs.Values = append([]string(nil), cs.Values...)
		c.Columns[i] = cs
	}
	c.Nodes = make([]NodeSnapshot, len(s.Nodes))
	for i, ns := range s.Nodes {
		ns.Counts = append([]int(nil), ns.Counts...)
		c.Nodes[i] = ns
	}
	return &c
}
