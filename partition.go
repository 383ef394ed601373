package sapling

import (
	"github.com/pbanos/sapling/feature"
	"golang.org/x/exp/slices"
)

// minReduction is the impurity reduction a split must exceed to be made
const minReduction = 1e-12

/*
split is a candidate criterion for a node along with the reduction of
Gini impurity it achieves on the node rows.
*/
type split struct {
	feature.Criterion
	reduction float64
}

type observation struct {
	value float64
	label int
}

// gini returns the Gini impurity of a set of total rows with the given label counts
func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0.0
	}
	result := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		result -= p * p
	}
	return result
}

/*
bestSplit takes the rows at a node and returns the split with the largest
impurity reduction over all columns, preferring the lowest column on ties.
It returns false if no column can split the rows.
*/
func (g *grower) bestSplit(rows []int) (split, bool) {
	var best split
	var found bool
	for column := range g.columns {
		s, ok := g.columnSplit(rows, column)
		if !ok {
			continue
		}
		if !found || s.reduction > best.reduction+minReduction {
			best = s
			found = true
		}
	}
	return best, found
}

/*
columnSplit returns the best split on a column for the given rows. Rows
missing the column do not take part in the evaluation, and the reduction
measured on the rest is scaled by the share of rows they represent.
*/
func (g *grower) columnSplit(rows []int, column int) (split, bool) {
	known := make([]int, 0, len(rows))
	for _, r := range rows {
		if !g.values[r][column].IsMissing() {
			known = append(known, r)
		}
	}
	if len(known) == 0 {
		return split{}, false
	}
	weight := float64(len(known)) / float64(len(rows))
	var s split
	var ok bool
	switch g.columns[column].Type {
	case feature.Continuous:
		s, ok = g.continuousSplit(known, column, weight)
	case feature.Nominal:
		s, ok = g.nominalSplit(known, column, weight)
	}
	if !ok || s.reduction <= minReduction {
		return split{}, false
	}
	return s, true
}

/*
continuousSplit tries every distinct value of the column, in ascending
order, as a threshold separating the rows above it from the rest.
*/
func (g *grower) continuousSplit(known []int, column int, weight float64) (split, bool) {
	obs := make([]observation, len(known))
	for i, r := range known {
		obs[i] = observation{g.values[r][column].Number(), g.labels[r]}
	}
	slices.SortFunc(obs, func(a, b observation) bool {
		return a.value < b.value
	})
	k := len(obs)
	thenCounts := g.count(known)
	parent := gini(thenCounts, k)
	elseCounts := make([]int, len(g.labelSet))
	var best split
	var found bool
	for i := 0; i < k; {
		threshold := obs[i].value
		for i < k && obs[i].value == threshold {
			elseCounts[obs[i].label]++
			thenCounts[obs[i].label]--
			i++
		}
		if i == k {
			break
		}
		gain := weight * reduction(parent, thenCounts, k-i, elseCounts, i)
		if !found || gain > best.reduction+minReduction {
			best = split{feature.NewContinuousCriterion(column, threshold), gain}
			found = true
		}
	}
	return best, found
}

/*
nominalSplit tries every value of the column present in the rows, in
dictionary order, as the value separating its rows from the rest.
*/
func (g *grower) nominalSplit(known []int, column int, weight float64) (split, bool) {
	n := g.columns[column].Dictionary.Len()
	perValue := make([][]int, n)
	sizes := make([]int, n)
	for _, r := range known {
		v := g.values[r][column].Index()
		if v < 0 || v >= n {
			continue
		}
		if perValue[v] == nil {
			perValue[v] = make([]int, len(g.labelSet))
		}
		perValue[v][g.labels[r]]++
		sizes[v]++
	}
	k := len(known)
	total := g.count(known)
	parent := gini(total, k)
	elseCounts := make([]int, len(g.labelSet))
	var best split
	var found bool
	for v := 0; v < n; v++ {
		if sizes[v] == 0 || sizes[v] == k {
			continue
		}
		for l := range total {
			elseCounts[l] = total[l] - perValue[v][l]
		}
		gain := weight * reduction(parent, perValue[v], sizes[v], elseCounts, k-sizes[v])
		if !found || gain > best.reduction+minReduction {
			best = split{feature.NewNominalCriterion(column, v), gain}
			found = true
		}
	}
	return best, found
}

func reduction(parent float64, thenCounts []int, thenTotal int, elseCounts []int, elseTotal int) float64 {
	total := float64(thenTotal + elseTotal)
	return parent -
		float64(thenTotal)/total*gini(thenCounts, thenTotal) -
		float64(elseTotal)/total*gini(elseCounts, elseTotal)
}

/*
partition takes the rows at a node and a criterion and returns the rows
satisfying it and the rest. Rows missing the criterion column join the
larger of both, the satisfying one on ties.
*/
func (g *grower) partition(rows []int, c feature.Criterion) ([]int, []int) {
	var thenRows, elseRows, missing []int
	for _, r := range rows {
		v := g.values[r][c.Column]
		switch {
		case v.IsMissing():
			missing = append(missing, r)
		case c.SatisfiedBy(v):
			thenRows = append(thenRows, r)
		default:
			elseRows = append(elseRows, r)
		}
	}
	if len(thenRows) >= len(elseRows) {
		thenRows = append(thenRows, missing...)
	} else {
		elseRows = append(elseRows, missing...)
	}
	return thenRows, elseRows
}
