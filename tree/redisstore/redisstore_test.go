package redisstore

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/redis.v5"
)

func TestKeyFor(t *testing.T) {
	Convey("Snapshot keys", t, func() {
		Convey("are prefixed when a prefix is given", func() {
			rs := &redisStore{prefix: "sapling"}
			So(rs.keyFor("weather"), ShouldEqual, "sapling:weather")
		})
		Convey("are the bare name otherwise", func() {
			rs := &redisStore{}
			So(rs.keyFor("weather"), ShouldEqual, "weather")
		})
	})
}

func TestCancelledContext(t *testing.T) {
	Convey("Operations on a cancelled context fail before reaching redis", t, func() {
		rc := redis.NewClient(&redis.Options{Addr: "localhost:0"})
		defer rc.Close()
		rs := New(rc, "sapling", nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		So(rs.Save(ctx, "weather", nil), ShouldEqual, context.Canceled)
		_, err := rs.Load(ctx, "weather")
		So(err, ShouldEqual, context.Canceled)
		So(rs.Delete(ctx, "weather"), ShouldEqual, context.Canceled)
	})
}
