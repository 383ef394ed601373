package tree

import (
	"context"
	"testing"

	"github.com/pbanos/sapling/feature"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSnapshot(t *testing.T) {
	Convey("Given the snapshot of a tree", t, func() {
		tr := sampleTree()
		s := tr.Snapshot()
		Convey("nodes are laid out in pre-order", func() {
			So(s.Root, ShouldEqual, 0)
			So(s.Nodes, ShouldHaveLength, 5)
			So(s.Nodes[0].Then, ShouldEqual, 1)
			So(s.Nodes[0].Else, ShouldEqual, 2)
			So(s.Nodes[2].Then, ShouldEqual, 3)
			So(s.Nodes[2].Else, ShouldEqual, 4)
			So(s.Nodes[1].Then, ShouldEqual, -1)
			So(s.Columns[0].Values, ShouldResemble, []string{"sunny", "overcast", "rain"})
			So(s.Columns[1].Values, ShouldBeNil)
		})
		Convey("restoring it yields an equal tree", func() {
			restored, err := FromSnapshot(s)
			So(err, ShouldBeNil)
			So(restored, ShouldResemble, tr)
		})
		Convey("a clone is independent from the original", func() {
			c := s.Clone()
			So(c, ShouldResemble, s)
			c.Nodes[0].Counts[0] = 100
			c.Columns[0].Values[0] = "cloudy"
			So(s.Nodes[0].Counts[0], ShouldEqual, 5)
			So(s.Columns[0].Values[0], ShouldEqual, "sunny")
		})
		Convey("a negative depth limit is restored as 0", func() {
			s.MaxDepth = -1
			restored, err := FromSnapshot(s)
			So(err, ShouldBeNil)
			So(restored.MaxDepth, ShouldEqual, 0)
		})
		Convey("restoring fails when", func() {
			Convey("a child is out of the arena", func() {
				s.Nodes[2].Else = 9
				_, err := FromSnapshot(s)
				So(err, ShouldNotBeNil)
			})
			Convey("a node is referenced twice", func() {
				s.Nodes[2].Then = 1
				_, err := FromSnapshot(s)
				So(err, ShouldNotBeNil)
			})
			Convey("a node points back to its ancestor", func() {
				s.Nodes[2].Then = 0
				_, err := FromSnapshot(s)
				So(err, ShouldNotBeNil)
			})
			Convey("a split node lacks a child", func() {
				s.Nodes[2].Then = -1
				_, err := FromSnapshot(s)
				So(err, ShouldNotBeNil)
			})
			Convey("a criterion refers to an unknown column", func() {
				s.Nodes[0].Column = 7
				_, err := FromSnapshot(s)
				So(err, ShouldNotBeNil)
			})
			Convey("a criterion refers to an unknown nominal value", func() {
				s.Nodes[0].Value = 3
				_, err := FromSnapshot(s)
				So(err, ShouldNotBeNil)
			})
			Convey("a criterion does not match its column type", func() {
				s.Nodes[0].Type = feature.Continuous
				_, err := FromSnapshot(s)
				So(err, ShouldNotBeNil)
			})
			Convey("depths are inconsistent", func() {
				s.Nodes[3].Depth = 5
				_, err := FromSnapshot(s)
				So(err, ShouldNotBeNil)
			})
			Convey("a column has no type", func() {
				s.Columns[1].Type = feature.Undefined
				_, err := FromSnapshot(s)
				So(err, ShouldNotBeNil)
			})
		})
	})
	Convey("The snapshot of an untrained tree restores to an untrained tree", t, func() {
		s := New(nil, nil, nil, 3).Snapshot()
		So(s.Root, ShouldEqual, -1)
		restored, err := FromSnapshot(s)
		So(err, ShouldBeNil)
		So(restored.Root, ShouldBeNil)
		So(restored.MaxDepth, ShouldEqual, 3)
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store", t, func() {
		ctx := context.Background()
		ms := NewMemoryStore()
		s := sampleTree().Snapshot()
		Convey("saved snapshots can be loaded back", func() {
			So(ms.Save(ctx, "weather", s), ShouldBeNil)
			loaded, err := ms.Load(ctx, "weather")
			So(err, ShouldBeNil)
			So(loaded, ShouldResemble, s)
			Convey("and are not affected by later changes to the saved value", func() {
				s.Nodes[0].Label = "changed"
				loaded, _ := ms.Load(ctx, "weather")
				So(loaded.Nodes[0].Label, ShouldEqual, "Play")
			})
			Convey("and deleted", func() {
				So(ms.Delete(ctx, "weather"), ShouldBeNil)
				loaded, err := ms.Load(ctx, "weather")
				So(err, ShouldBeNil)
				So(loaded, ShouldBeNil)
			})
		})
		Convey("loading an unknown name returns nil", func() {
			loaded, err := ms.Load(ctx, "unknown")
			So(err, ShouldBeNil)
			So(loaded, ShouldBeNil)
		})
		Convey("operations fail on cancelled contexts", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			So(ms.Save(cctx, "weather", s), ShouldEqual, context.Canceled)
			_, err := ms.Load(cctx, "weather")
			So(err, ShouldEqual, context.Canceled)
		})
		So(ms.Close(ctx), ShouldBeNil)
	})
}
