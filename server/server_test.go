package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/tree"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func trainedClassifier() *sapling.Classifier {
	c := sapling.New(sapling.DefaultMaxDepth, sapling.WithColumnNames([]string{"outlook", "temperature"}))
	err := c.Train(
		[][]interface{}{{"sunny", 85}, {"overcast", 83}, {"rain", 70}, {"overcast", 64}},
		[]string{"Dont_play", "Play", "Dont_play", "Play"},
	)
	if err != nil {
		panic(err)
	}
	return c
}

func do(h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer(t *testing.T) {
	Convey("Given a server for a trained classifier", t, func() {
		h := New(trainedClassifier(), nil).Handler()
		Convey("GET /health reports it trained", func() {
			w := do(h, http.MethodGet, "/health", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"trained":true`)
		})
		Convey("POST /predict labels samples given as arrays or objects", func() {
			w := do(h, http.MethodPost, "/predict", map[string]interface{}{
				"samples": []interface{}{
					[]interface{}{"overcast", 70},
					map[string]interface{}{"outlook": "sunny", "temperature": 64},
					map[string]interface{}{},
				},
			})
			So(w.Code, ShouldEqual, http.StatusOK)
			var resp PredictResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Labels, ShouldResemble, []string{"Play", "Dont_play", "Dont_play"})
		})
		Convey("POST /predict rejects samples that are neither arrays nor objects", func() {
			w := do(h, http.MethodPost, "/predict", map[string]interface{}{"samples": []interface{}{"sunny"}})
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "decoding sample 0")
			So(w.Body.String(), ShouldContainSubstring, "cannot unmarshal string")
		})
		Convey("POST /predict rejects bodies without samples", func() {
			w := do(h, http.MethodPost, "/predict", map[string]interface{}{})
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
		Convey("POST /test returns the accuracy", func() {
			w := do(h, http.MethodPost, "/test", map[string]interface{}{
				"samples": []interface{}{[]interface{}{"overcast", 70}, []interface{}{"rain", 60}},
				"labels":  []string{"Play", "Play"},
			})
			So(w.Code, ShouldEqual, http.StatusOK)
			var resp TestResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp, ShouldResemble, TestResponse{Samples: 2, Accuracy: 0.5})
		})
		Convey("POST /test rejects label counts not matching the samples", func() {
			w := do(h, http.MethodPost, "/test", map[string]interface{}{
				"samples": []interface{}{[]interface{}{"overcast", 70}},
				"labels":  []string{},
			})
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
		Convey("GET /tree renders the tree", func() {
			w := do(h, http.MethodGet, "/tree", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "outlook == overcast")
			w = do(h, http.MethodGet, "/tree?format=dot", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "digraph")
			w = do(h, http.MethodGet, "/tree?format=svg", nil)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
		Convey("GET /tree/snapshot returns a snapshot that restores the tree", func() {
			w := do(h, http.MethodGet, "/tree/snapshot", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			var s tree.Snapshot
			So(json.Unmarshal(w.Body.Bytes(), &s), ShouldBeNil)
			c, err := sapling.Restore(&s)
			So(err, ShouldBeNil)
			p, err := c.Predict([]interface{}{"overcast", 90})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "Play")
		})
	})
	Convey("Given a server for an untrained classifier", t, func() {
		h := New(sapling.New(3), nil).Handler()
		Convey("GET /health reports it untrained", func() {
			w := do(h, http.MethodGet, "/health", nil)
			So(w.Body.String(), ShouldContainSubstring, `"trained":false`)
		})
		Convey("predictions and trees are a conflict", func() {
			w := do(h, http.MethodPost, "/predict", map[string]interface{}{"samples": []interface{}{[]interface{}{1}}})
			So(w.Code, ShouldEqual, http.StatusConflict)
			So(do(h, http.MethodGet, "/tree", nil).Code, ShouldEqual, http.StatusConflict)
			So(do(h, http.MethodGet, "/tree/snapshot", nil).Code, ShouldEqual, http.StatusConflict)
		})
	})
}
