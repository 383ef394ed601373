package sqlite3adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/sqldataset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSQLite3Dataset(t *testing.T) {
	Convey("Given an SQLite3 adapter on a new database file", t, func() {
		a, err := New(filepath.Join(t.TempDir(), "samples.db"))
		So(err, ShouldBeNil)
		Reset(func() { a.Close() })
		ctx := context.Background()
		s := dataset.New([]string{"outlook", "temperature"})
		s.Append([]interface{}{"sunny", 85.0}, "Dont_play")
		s.Append([]interface{}{"overcast", nil}, "Play")
		s.Append([]interface{}{nil, 71.5}, "Dont_play")
		Convey("a labeled set written to a table reads back the same", func() {
			So(sqldataset.Write(ctx, a, "weather", s, "play"), ShouldBeNil)
			read, err := sqldataset.Read(ctx, a, "weather", "play")
			So(err, ShouldBeNil)
			So(read.Header, ShouldResemble, s.Header)
			So(read.Rows, ShouldResemble, s.Rows)
			So(read.Labels, ShouldResemble, s.Labels)
		})
		Convey("reading the table without a label keeps the label column", func() {
			So(sqldataset.Write(ctx, a, "weather", s, "play"), ShouldBeNil)
			read, err := sqldataset.Read(ctx, a, "weather", "")
			So(err, ShouldBeNil)
			So(read.Header, ShouldResemble, []string{"outlook", "temperature", "play"})
			So(read.Labeled(), ShouldBeFalse)
		})
		Convey("reading a table that does not exist fails", func() {
			_, err := sqldataset.Read(ctx, a, "missing", "play")
			So(err, ShouldNotBeNil)
		})
		Convey("names with double quotes are rejected", func() {
			_, err := a.QuoteIdentifier(`we"ather`)
			So(err, ShouldNotBeNil)
			So(sqldataset.Write(ctx, a, `we"ather`, s, "play"), ShouldNotBeNil)
		})
	})
}
