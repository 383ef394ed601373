package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	. "github.com/smartystreets/goconvey/convey"
)

const weatherCSV = `outlook,temperature,humidity,windy,play
sunny,85,85,false,Dont_play
overcast,?,86,false,Play
rainy,70,,true,Dont_play
`

func TestReadSet(t *testing.T) {
	Convey("Given a CSV document with a label column", t, func() {
		Convey("reading it with the label yields a labeled set without that column", func() {
			s, err := ReadSet(strings.NewReader(weatherCSV), ReadOptions{Label: "play"})
			So(err, ShouldBeNil)
			So(s.Header, ShouldResemble, []string{"outlook", "temperature", "humidity", "windy"})
			So(s.Labels, ShouldResemble, []string{"Dont_play", "Play", "Dont_play"})
			So(s.Rows[0], ShouldResemble, []interface{}{"sunny", 85.0, 85.0, "false"})
		})
		Convey("undefined and empty cells are read as missing values", func() {
			s, err := ReadSet(strings.NewReader(weatherCSV), ReadOptions{Label: "play"})
			So(err, ShouldBeNil)
			So(s.Rows[1][1], ShouldBeNil)
			So(s.Rows[2][2], ShouldBeNil)
		})
		Convey("columns declared nominal keep their numbers as strings", func() {
			s, err := ReadSet(strings.NewReader(weatherCSV), ReadOptions{
				Label: "play",
				Types: map[string]feature.Type{"humidity": feature.Nominal},
			})
			So(err, ShouldBeNil)
			So(s.Rows[0][2], ShouldEqual, "85")
			So(s.Rows[0][1], ShouldEqual, 85.0)
		})
		Convey("reading it without a label yields an unlabeled set", func() {
			s, err := ReadSet(strings.NewReader(weatherCSV), ReadOptions{})
			So(err, ShouldBeNil)
			So(s.Width(), ShouldEqual, 5)
			So(s.Labeled(), ShouldBeFalse)
		})
		Convey("reading it with an unknown label fails", func() {
			_, err := ReadSet(strings.NewReader(weatherCSV), ReadOptions{Label: "class"})
			So(err, ShouldNotBeNil)
		})
		Convey("a custom undefined value is honored", func() {
			s, err := ReadSet(strings.NewReader("a,b\nNA,1\n"), ReadOptions{UndefinedValue: "NA"})
			So(err, ShouldBeNil)
			So(s.Rows[0], ShouldResemble, []interface{}{nil, 1.0})
		})
	})
	Convey("Given an empty CSV document", t, func() {
		_, err := ReadSet(strings.NewReader(""), ReadOptions{})
		Convey("reading it fails for lack of header", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestWriteSet(t *testing.T) {
	Convey("Given a labeled set with missing values", t, func() {
		s := dataset.New([]string{"outlook", "temperature"})
		s.Append([]interface{}{"sunny", 85.5}, "Dont_play")
		s.Append([]interface{}{nil, 64.0}, "Play")
		Convey("writing it puts the label last and the undefined value in place of missing ones", func() {
			var buf bytes.Buffer
			So(WriteSet(&buf, s, "play", ""), ShouldBeNil)
			So(buf.String(), ShouldEqual, "outlook,temperature,play\nsunny,85.5,Dont_play\n?,64,Play\n")
		})
		Convey("what is written reads back into the same set", func() {
			var buf bytes.Buffer
			So(WriteSet(&buf, s, "play", ""), ShouldBeNil)
			read, err := ReadSet(&buf, ReadOptions{Label: "play"})
			So(err, ShouldBeNil)
			So(read.Header, ShouldResemble, s.Header)
			So(read.Rows, ShouldResemble, s.Rows)
			So(read.Labels, ShouldResemble, s.Labels)
		})
	})
}
