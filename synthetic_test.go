package sapling

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/pbanos/sapling/feature"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

/*
ruleDataset describes a synthetic dataset: rows of random values for the
given columns labeled "in" when the rule evaluates to true and "out"
otherwise. Continuous columns take uniform values in [0, 1), nominal ones
one of their values. A share of the values can be left missing.
*/
type ruleDataset struct {
	rule       string
	continuous []string
	nominal    map[string][]string
	rows       int
	missing    float64
	seed       int64
}

func (rd ruleDataset) columns() []string {
	nominal := maps.Keys(rd.nominal)
	slices.Sort(nominal)
	return append(append([]string(nil), rd.continuous...), nominal...)
}

func (rd ruleDataset) generate() ([][]interface{}, []string, error) {
	expr, err := govaluate.NewEvaluableExpression(rd.rule)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing rule %q: %v", rd.rule, err)
	}
	r := rand.New(rand.NewSource(rd.seed))
	columns := rd.columns()
	rows := make([][]interface{}, rd.rows)
	labels := make([]string, rd.rows)
	for i := range rows {
		params := make(map[string]interface{}, len(columns))
		row := make([]interface{}, len(columns))
		for j, name := range columns {
			var v interface{}
			if values, ok := rd.nominal[name]; ok {
				v = values[r.Intn(len(values))]
			} else {
				v = r.Float64()
			}
			params[name] = v
			if r.Float64() >= rd.missing {
				row[j] = v
			}
		}
		in, err := expr.Evaluate(params)
		if err != nil {
			return nil, nil, fmt.Errorf("evaluating rule %q: %v", rd.rule, err)
		}
		if b, ok := in.(bool); ok && b {
			labels[i] = "in"
		} else {
			labels[i] = "out"
		}
		rows[i] = row
	}
	return rows, labels, nil
}

var separableDatasets = map[string]ruleDataset{
	"box": {
		rule:       "x > 0.25 && x < 0.75 && y > 0.3",
		continuous: []string{"x", "y"},
		rows:       60,
		seed:       1,
	},
	"triangle": {
		rule:       "y < x && x + y < 1",
		continuous: []string{"x", "y"},
		rows:       60,
		seed:       2,
	},
	"mixed": {
		rule:       "(color == 'red' && x > 0.5) || (color == 'blue' && y < 0.4)",
		continuous: []string{"x", "y"},
		nominal:    map[string][]string{"color": {"red", "green", "blue"}},
		rows:       60,
		seed:       3,
	},
}

func TestSeparableRules(t *testing.T) {
	for name, rd := range separableDatasets {
		rd := rd
		Convey(fmt.Sprintf("Given the %s dataset", name), t, func() {
			rows, labels, err := rd.generate()
			So(err, ShouldBeNil)
			Convey("a tree deep enough makes no mistake on its training rows", func() {
				c := New(rd.rows, WithColumnNames(rd.columns()))
				So(c.Train(rows, labels), ShouldBeNil)
				predictions, err := c.PredictAll(rows)
				So(err, ShouldBeNil)
				So(predictions, ShouldResemble, labels)
				accuracy, err := c.Test(rows, labels)
				So(err, ShouldBeNil)
				So(accuracy, ShouldEqual, 1.0)
				So(c.ActualDepth(), ShouldBeLessThanOrEqualTo, rd.rows)
			})
			Convey("a shallow tree respects its depth limit", func() {
				c := New(2)
				So(c.Train(rows, labels), ShouldBeNil)
				So(c.ActualDepth(), ShouldBeLessThanOrEqualTo, 2)
			})
		})
	}
}

func TestRulesWithMissingValues(t *testing.T) {
	Convey("Given a mixed dataset with missing values", t, func() {
		rd := separableDatasets["mixed"]
		rd.missing = 0.05
		rd.rows = 200
		rd.seed = 4
		rows, labels, err := rd.generate()
		So(err, ShouldBeNil)
		c := New(DefaultMaxDepth)
		So(c.Train(rows, labels), ShouldBeNil)
		Convey("the column types are inferred", func() {
			So(c.ColumnTypes(), ShouldResemble, []feature.Type{feature.Continuous, feature.Continuous, feature.Nominal})
		})
		Convey("every prediction is one of the training labels", func() {
			predictions, err := c.PredictAll(rows)
			So(err, ShouldBeNil)
			So(predictions, ShouldHaveLength, len(rows))
			for _, p := range predictions {
				So(p, ShouldBeIn, []string{"in", "out"})
			}
		})
		Convey("samples missing every value get the root majority label", func() {
			p, err := c.Predict([]interface{}{nil, nil, nil})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, c.Tree().Root.Label)
		})
		Convey("the tree respects the depth limit", func() {
			So(c.ActualDepth(), ShouldBeLessThanOrEqualTo, DefaultMaxDepth)
		})
		Convey("rows it was not trained on are mostly classified right", func() {
			heldOut := rd
			heldOut.seed = 5
			heldOut.rows = 100
			rows, labels, err := heldOut.generate()
			So(err, ShouldBeNil)
			accuracy, err := c.Test(rows, labels)
			So(err, ShouldBeNil)
			So(accuracy, ShouldBeGreaterThanOrEqualTo, 0.8)
		})
	})
}
