package tree

import (
	"github.com/pbanos/sapling/feature"
)

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrNotTrained is the error returned when asking a tree without nodes for
predictions.
*/
const ErrNotTrained = PredictionError("classifier has not been trained")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
Encode takes a raw row and returns it encoded through the tree columns.
Values beyond the trained width are ignored and absent trailing values are
Missing.
*/
func (t *Tree) Encode(row []interface{}) []feature.Value {
	values := make([]feature.Value, len(t.Columns))
	for i, c := range t.Columns {
		if i < len(row) {
			values[i] = c.Encode(row[i])
		}
	}
	return values
}

/*
Predict takes a raw row and returns the label the tree assigns to it or
ErrNotTrained if the tree has no nodes.

From the root, every split node sends the row to its Then child when the
row satisfies its criterion and to its Else child otherwise. A row missing
the value a split node tests gets that node's majority label.
*/
func (t *Tree) Predict(row []interface{}) (string, error) {
	if t == nil || t.Root == nil {
		return "", ErrNotTrained
	}
	return t.predict(t.Encode(row)), nil
}

/*
PredictAll takes a slice of raw rows and returns the label for each, in
the same order, or ErrNotTrained if the tree has no nodes.
*/
func (t *Tree) PredictAll(rows [][]interface{}) ([]string, error) {
	if t == nil || t.Root == nil {
		return nil, ErrNotTrained
	}
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = t.predict(t.Encode(row))
	}
	return labels, nil
}

func (t *Tree) predict(values []feature.Value) string {
	n := t.Root
	for !n.IsLeaf() {
		v := values[n.Column]
		if v.IsMissing() {
			return n.Label
		}
		if n.SatisfiedBy(v) {
			n = n.Then
		} else {
			n = n.Else
		}
	}
	return n.Label
}

/*
Test takes rows and their expected labels and returns the share of rows
for which the tree predicts the expected label. It returns 0.0 for no
rows and ErrNotTrained if the tree has no nodes.
*/
func (t *Tree) Test(rows [][]interface{}, labels []string) (float64, error) {
	predictions, err := t.PredictAll(rows)
	if err != nil {
		return 0.0, err
	}
	if len(rows) == 0 {
		return 0.0, nil
	}
	var hits float64
	for i, p := range predictions {
		if i < len(labels) && p == labels[i] {
			hits++
		}
	}
	return hits / float64(len(rows)), nil
}
