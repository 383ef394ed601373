package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/sapling/tree/json"
	. "github.com/smartystreets/goconvey/convey"
)

const weatherCSV = `outlook,temperature,humidity,windy,play
sunny,85,85,false,Dont_play
sunny,80,90,true,Dont_play
overcast,83,78,false,Play
rain,70,96,false,Play
rain,68,80,false,Play
rain,65,70,true,Dont_play
overcast,64,65,true,Play
sunny,72,95,false,Dont_play
sunny,69,70,false,Play
rain,75,80,false,Play
sunny,75,70,true,Play
overcast,72,90,true,Play
overcast,81,75,false,Play
rain,71,80,true,Dont_play
`

const weatherMetadata = `label: play
features:
  outlook: [sunny, overcast, rain]
  temperature: continuous
  humidity: continuous
  windy: nominal
  play: [Play, Dont_play]
`

func TestCLI(t *testing.T) {
	Convey("Given a weather set and its metadata", t, func() {
		dir := t.TempDir()
		input := filepath.Join(dir, "weather.csv")
		So(os.WriteFile(input, []byte(weatherCSV), 0644), ShouldBeNil)
		metadata := filepath.Join(dir, "weather.yml")
		So(os.WriteFile(metadata, []byte(weatherMetadata), 0644), ShouldBeNil)
		treeFile := filepath.Join(dir, "tree.json")
		Convey("grow writes a tree file that restores the grown tree", func() {
			cmd := cliParser()
			cmd.SetArgs([]string{"grow", "-i", input, "-m", metadata, "-t", treeFile})
			So(cmd.Execute(), ShouldBeNil)
			tr, err := json.ReadJSONTreeFromFile(treeFile)
			So(err, ShouldBeNil)
			So(tr.ColumnNames(), ShouldResemble, []string{"outlook", "temperature", "humidity", "windy"})
			So(tr.ActualDepth, ShouldBeLessThanOrEqualTo, 5)
			p, err := tr.Predict([]interface{}{"overcast", 60.0, 60.0, "false"})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "Play")
			Convey("and predict labels the samples of a set with it", func() {
				output := filepath.Join(dir, "predictions.csv")
				cmd := cliParser()
				cmd.SetArgs([]string{"predict", "-i", input, "-t", treeFile, "-o", output, "-l", "prediction"})
				So(cmd.Execute(), ShouldBeNil)
				content, err := os.ReadFile(output)
				So(err, ShouldBeNil)
				So(string(content), ShouldStartWith, "outlook,temperature,humidity,windy,prediction\n")
			})
		})
		Convey("flags can be given through the environment", func() {
			os.Setenv("SAPLING_MAX_DEPTH", "1")
			Reset(func() { os.Unsetenv("SAPLING_MAX_DEPTH") })
			cmd := cliParser()
			cmd.SetArgs([]string{"grow", "-i", input, "-m", metadata, "-t", treeFile})
			So(cmd.Execute(), ShouldBeNil)
			tr, err := json.ReadJSONTreeFromFile(treeFile)
			So(err, ShouldBeNil)
			So(tr.MaxDepth, ShouldEqual, 1)
			So(tr.ActualDepth, ShouldBeLessThanOrEqualTo, 1)
		})
		Convey("set copies it into an SQLite3 database and back", func() {
			db := filepath.Join(dir, "weather.db")
			cmd := cliParser()
			cmd.SetArgs([]string{"set", "-i", input, "-l", "play", "-o", db})
			So(cmd.Execute(), ShouldBeNil)
			output := filepath.Join(dir, "copy.csv")
			cmd = cliParser()
			cmd.SetArgs([]string{"set", "-i", db, "-l", "play", "-o", output})
			So(cmd.Execute(), ShouldBeNil)
			content, err := os.ReadFile(output)
			So(err, ShouldBeNil)
			So(string(content), ShouldEqual, weatherCSV)
		})
	})
}

func TestLocations(t *testing.T) {
	Convey("Set locations are told apart", t, func() {
		So(isPostgreSQL("postgresql://localhost/weather"), ShouldBeTrue)
		So(isPostgreSQL("postgres://localhost/weather"), ShouldBeTrue)
		So(isMongoDB("mongodb://localhost/weather"), ShouldBeTrue)
		So(isSQLite3("weather.db"), ShouldBeTrue)
		So(isSQLite3("weather.csv"), ShouldBeFalse)
		So(isMongoDB("weather.csv"), ShouldBeFalse)
	})
}

func TestNewLogger(t *testing.T) {
	Convey("Given a log directory", t, func() {
		dir := filepath.Join(t.TempDir(), "logs")
		Convey("the logger writes JSON entries into it", func() {
			logger, err := newLogger(false, dir)
			So(err, ShouldBeNil)
			logger.Info("tree grown")
			logger.Sync()
			matches, err := filepath.Glob(filepath.Join(dir, "sapling_*.log"))
			So(err, ShouldBeNil)
			So(matches, ShouldNotBeEmpty)
		})
	})
}
