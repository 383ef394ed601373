package tree

import (
	"context"
	"strings"
	"testing"

	"github.com/pbanos/sapling/feature"
	. "github.com/smartystreets/goconvey/convey"
)

/*
sampleTree returns the tree:

	outlook == overcast ? Play : (temperature > 75 ? Dont_play : Play)
*/
func sampleTree() *Tree {
	outlook := feature.NewColumn("outlook", feature.Nominal)
	outlook.Dictionary.Add("sunny")
	outlook.Dictionary.Add("overcast")
	outlook.Dictionary.Add("rain")
	temperature := feature.NewColumn("temperature", feature.Continuous)
	root := &Node{
		Criterion: feature.NewNominalCriterion(0, 1),
		Label:     "Play",
		Weight:    14,
		Counts:    []int{5, 9},
		Then:      &Node{Label: "Play", Weight: 4, Depth: 1, Counts: []int{0, 4}},
		Else: &Node{
			Criterion: feature.NewContinuousCriterion(1, 75),
			Label:     "Dont_play",
			Weight:    10,
			Depth:     1,
			Counts:    []int{5, 5},
			Then:      &Node{Label: "Dont_play", Weight: 2, Depth: 2, Counts: []int{2, 0}},
			Else:      &Node{Label: "Play", Weight: 8, Depth: 2, Counts: []int{3, 5}},
		},
	}
	return New(root, []*feature.Column{outlook, temperature}, []string{"Dont_play", "Play"}, 5)
}

func TestTree(t *testing.T) {
	Convey("Given a tree", t, func() {
		tr := sampleTree()
		Convey("its actual depth is the depth of its deepest node", func() {
			So(tr.ActualDepth, ShouldEqual, 2)
			So(tr.NodeCount(), ShouldEqual, 5)
			So(tr.Width(), ShouldEqual, 2)
			So(tr.ColumnTypes(), ShouldResemble, []feature.Type{feature.Nominal, feature.Continuous})
		})
		Convey("predictions follow the criteria", func() {
			p, err := tr.Predict([]interface{}{"overcast", 90})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "Play")
			p, _ = tr.Predict([]interface{}{"sunny", 90})
			So(p, ShouldEqual, "Dont_play")
			p, _ = tr.Predict([]interface{}{"rain", 75})
			So(p, ShouldEqual, "Play")
		})
		Convey("missing values resolve to the majority label of the node testing them", func() {
			p, _ := tr.Predict([]interface{}{nil, 90})
			So(p, ShouldEqual, "Play")
			p, _ = tr.Predict([]interface{}{"sunny"})
			So(p, ShouldEqual, "Dont_play")
		})
		Convey("unknown nominal values go down the else branch", func() {
			p, _ := tr.Predict([]interface{}{"snow", 90})
			So(p, ShouldEqual, "Dont_play")
		})
		Convey("Test returns the share of right predictions", func() {
			rate, err := tr.Test([][]interface{}{{"overcast", 60}, {"sunny", 90}, {"rain", 60}, {"rain", 80}}, []string{"Play", "Dont_play", "Play", "Play"})
			So(err, ShouldBeNil)
			So(rate, ShouldEqual, 0.75)
		})
		Convey("Traverse visits parents first unless asked to go bottom up", func() {
			var topdown, bottomup []string
			So(tr.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
				topdown = append(topdown, tr.Describe(n))
				return nil
			}), ShouldBeNil)
			So(tr.Traverse(context.Background(), true, func(_ context.Context, n *Node) error {
				bottomup = append(bottomup, tr.Describe(n))
				return nil
			}), ShouldBeNil)
			So(topdown, ShouldResemble, []string{"outlook == overcast", "Play", "temperature > 75", "Dont_play", "Play"})
			So(bottomup, ShouldResemble, []string{"Play", "Dont_play", "Play", "temperature > 75", "outlook == overcast"})
		})
		Convey("Traverse stops on cancelled contexts", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := tr.Traverse(ctx, false, func(context.Context, *Node) error { return nil })
			So(err, ShouldEqual, context.Canceled)
		})
		Convey("String draws the tree", func() {
			s := tr.String()
			So(s, ShouldStartWith, "[root]\n{ outlook == overcast | majority Play, 14 rows }\n")
			So(s, ShouldContainSubstring, "|__[then]")
			So(s, ShouldContainSubstring, "temperature > 75")
			So(strings.Count(s, "[else]"), ShouldEqual, 2)
		})
	})
	Convey("Given an untrained tree", t, func() {
		tr := New(nil, nil, nil, 5)
		Convey("predictions fail with ErrNotTrained", func() {
			_, err := tr.Predict([]interface{}{1})
			So(err, ShouldEqual, ErrNotTrained)
			_, err = tr.PredictAll([][]interface{}{{1}})
			So(err, ShouldEqual, ErrNotTrained)
			So(tr.NodeCount(), ShouldEqual, 0)
			So(tr.String(), ShouldEqual, "[empty tree]\n")
		})
	})
}
