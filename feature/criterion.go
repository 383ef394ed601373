package feature

import (
	"fmt"
	"strconv"
)

/*
Criterion is the test a split node applies to one column of an encoded
row. A continuous criterion is satisfied by values strictly greater than
its Threshold, a nominal one by the value at dictionary index Value.
Samples satisfying the criterion go down the "then" branch.
*/
type Criterion struct {
	Column    int
	Type      Type
	Threshold float64
	Value     int
}

// NewContinuousCriterion returns the criterion "column > threshold"
func NewContinuousCriterion(column int, threshold float64) Criterion {
	return Criterion{Column: column, Type: Continuous, Threshold: threshold}
}

// NewNominalCriterion returns the criterion "column == dictionary[value]"
func NewNominalCriterion(column int, value int) Criterion {
	return Criterion{Column: column, Type: Nominal, Value: value}
}

/*
SatisfiedBy takes an encoded value for the criterion column and returns
whether it satisfies the criterion. Missing values never do: deciding
where they go is up to the caller.
*/
func (c Criterion) SatisfiedBy(v Value) bool {
	if v.IsMissing() {
		return false
	}
	switch c.Type {
	case Continuous:
		return v.Number() > c.Threshold
	case Nominal:
		return v.Index() == c.Value
	}
	return false
}

/*
Describe returns the criterion as text, naming the column and the
nominal value through the given column description when available.
*/
func (c Criterion) Describe(col *Column) string {
	name := col.Label(c.Column)
	switch c.Type {
	case Continuous:
		return fmt.Sprintf("%s > %s", name, strconv.FormatFloat(c.Threshold, 'g', -1, 64))
	case Nominal:
		var v string
		var ok bool
		if col != nil {
			v, ok = col.Dictionary.Value(c.Value)
		}
		if !ok {
			v = fmt.Sprintf("#%d", c.Value)
		}
		return fmt.Sprintf("%s == %s", name, v)
	}
	return "undefined"
}
