/*
Package sapling grows binary decision trees to classify rows mixing
nominal and continuous columns, missing values included.

A Classifier is trained with rows and their labels. Column types are
inferred from the data unless overridden, the tree is grown greedily
picking at every node the split with the largest Gini impurity reduction,
and predictions walk the tree from its root to a leaf.
*/
package sapling

import (
	"fmt"
	"time"

	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"go.uber.org/zap"
)

// DefaultMaxDepth is the depth limit used when none is configured
const DefaultMaxDepth = 5

/*
Classifier grows a decision tree out of labeled rows and predicts labels
for new rows with it. Every call to Train replaces the tree with one
grown from the given rows only.

A trained Classifier may be used for predictions concurrently, but Train
and SetColumnTypes must not run concurrently with any other method.
*/
type Classifier struct {
	maxDepth    int
	overrides   []feature.Type
	columnTypes []feature.Type
	columnNames []string
	tree        *tree.Tree
	logger      *zap.Logger
}

// Option configures a Classifier
type Option func(*Classifier)

// WithLogger sets the logger a Classifier reports its training on
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithColumnNames sets names for the columns, used when describing the tree
func WithColumnNames(names []string) Option {
	return func(c *Classifier) {
		c.columnNames = append([]string(nil), names...)
	}
}

/*
New takes the maximum depth of the trees to grow, the root being at
depth 0, and returns an untrained Classifier. A negative depth is taken
as 0, which grows a single leaf.
*/
func New(maxDepth int, opts ...Option) *Classifier {
	if maxDepth < 0 {
		maxDepth = 0
	}
	c := &Classifier{maxDepth: maxDepth, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

/*
Restore takes a tree snapshot and returns a trained Classifier predicting
with the tree it describes, or an error if the snapshot is invalid.
*/
func Restore(s *tree.Snapshot, opts ...Option) (*Classifier, error) {
	t, err := tree.FromSnapshot(s)
	if err != nil {
		return nil, err
	}
	c := New(t.MaxDepth, opts...)
	c.tree = t
	c.columnTypes = t.ColumnTypes()
	c.columnNames = t.ColumnNames()
	return c, nil
}

// MaxDepth returns the depth limit of the trees the classifier grows
func (c *Classifier) MaxDepth() int {
	return c.maxDepth
}

/*
SetColumnTypes takes a vector of column types to use on every following
training instead of inferring them. Undefined entries are still inferred.
It fails with ErrInvalidColumnTypeOverride if a type is unknown or if the
classifier is trained and the vector length is not its number of columns.
*/
func (c *Classifier) SetColumnTypes(types []feature.Type) error {
	for i, t := range types {
		if !t.Valid() {
			return fmt.Errorf("%w: column %d has unknown type %d", ErrInvalidColumnTypeOverride, i, int(t))
		}
	}
	if c.tree != nil && len(types) != c.tree.Width() {
		return fmt.Errorf("%w: %d types given for %d columns", ErrInvalidColumnTypeOverride, len(types), c.tree.Width())
	}
	c.overrides = append([]feature.Type(nil), types...)
	c.columnTypes = append([]feature.Type(nil), types...)
	return nil
}

/*
ColumnTypes returns the column types as last set with SetColumnTypes or,
once trained, as resolved by the training.
*/
func (c *Classifier) ColumnTypes() []feature.Type {
	return append([]feature.Type(nil), c.columnTypes...)
}

/*
Train takes rows and their labels and grows a new tree out of them,
replacing any previous one. All rows must have the same number of
columns, and there must be as many labels as rows, or ErrShapeMismatch
is returned. A type override vector must have one type per column, or
ErrInvalidColumnTypeOverride is returned. On error the classifier keeps
its previous state.

Training with no rows leaves the classifier untrained.
*/
func (c *Classifier) Train(rows [][]interface{}, labels []string) error {
	if len(rows) != len(labels) {
		return fmt.Errorf("%w: %d rows and %d labels", ErrShapeMismatch, len(rows), len(labels))
	}
	if len(rows) == 0 {
		c.tree = nil
		c.columnTypes = append([]feature.Type(nil), c.overrides...)
		c.logger.Info("no rows to train with, classifier left untrained")
		return nil
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d columns, expected %d", ErrShapeMismatch, i, len(row), width)
		}
	}
	if c.overrides != nil && len(c.overrides) != width {
		return fmt.Errorf("%w: %d types given for %d columns", ErrInvalidColumnTypeOverride, len(c.overrides), width)
	}
	start := time.Now()
	types := feature.InferTypes(rows, width, c.overrides)
	columns := make([]*feature.Column, width)
	for j, t := range types {
		var name string
		if j < len(c.columnNames) {
			name = c.columnNames[j]
		}
		columns[j] = feature.NewColumn(name, t)
	}
	g := &grower{
		values:   make([][]feature.Value, len(rows)),
		labels:   make([]int, len(rows)),
		columns:  columns,
		maxDepth: c.maxDepth,
		logger:   c.logger,
	}
	labelIndex := make(map[string]int)
	indexes := make([]int, len(rows))
	for i, row := range rows {
		values := make([]feature.Value, width)
		for j, col := range columns {
			values[j] = col.Learn(row[j])
		}
		g.values[i] = values
		l, ok := labelIndex[labels[i]]
		if !ok {
			l = len(g.labelSet)
			labelIndex[labels[i]] = l
			g.labelSet = append(g.labelSet, labels[i])
		}
		g.labels[i] = l
		indexes[i] = i
	}
	root := g.grow(indexes, 0)
	c.tree = tree.New(root, columns, g.labelSet, c.maxDepth)
	c.columnTypes = types
	c.logger.Info("tree grown",
		zap.Int("rows", len(rows)),
		zap.Int("columns", width),
		zap.Int("labels", len(g.labelSet)),
		zap.Int("nodes", g.nodes),
		zap.Int("depth", c.tree.ActualDepth),
		zap.Int("maxDepth", c.maxDepth),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

/*
Predict takes a row and returns the label the trained tree assigns to it,
or ErrNotTrained. Extra columns are ignored and absent trailing columns,
like values that do not fit their column type, are taken as missing.
*/
func (c *Classifier) Predict(row []interface{}) (string, error) {
	if c.tree == nil {
		return "", ErrNotTrained
	}
	return c.tree.Predict(row)
}

// PredictAll returns the label for each of the given rows, in order, or ErrNotTrained
func (c *Classifier) PredictAll(rows [][]interface{}) ([]string, error) {
	if c.tree == nil {
		return nil, ErrNotTrained
	}
	return c.tree.PredictAll(rows)
}

/*
Test takes rows and their labels and returns the share of rows for which
the classifier predicts the right label, or ErrNotTrained.
*/
func (c *Classifier) Test(rows [][]interface{}, labels []string) (float64, error) {
	if len(rows) != len(labels) {
		return 0.0, fmt.Errorf("%w: %d rows and %d labels", ErrShapeMismatch, len(rows), len(labels))
	}
	if c.tree == nil {
		return 0.0, ErrNotTrained
	}
	return c.tree.Test(rows, labels)
}

// Tree returns the trained tree, nil if the classifier is untrained
func (c *Classifier) Tree() *tree.Tree {
	return c.tree
}

// ActualDepth returns the depth of the deepest node of the trained tree, 0 if untrained
func (c *Classifier) ActualDepth() int {
	if c.tree == nil {
		return 0
	}
	return c.tree.ActualDepth
}

// Snapshot returns the flat form of the trained tree, or ErrNotTrained
func (c *Classifier) Snapshot() (*tree.Snapshot, error) {
	if c.tree == nil {
		return nil, ErrNotTrained
	}
	return c.tree.Snapshot(), nil
}
