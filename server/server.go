/*
Package server exposes a trained classifier over HTTP.

Routes:
  - GET /health reports whether the classifier is trained
  - GET /tree renders the tree, in the format given by the "format" query parameter
  - GET /tree/snapshot returns the tree snapshot as JSON
  - POST /predict returns the labels for the samples in the request body
  - POST /test returns the share of right predictions for labeled samples

Samples are JSON arrays holding a value per column, in order, or JSON
objects mapping column names to values.
*/
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/report"
	"go.uber.org/zap"
)

// ShutdownTimeout is how long Run waits for in-flight requests once its context is done
const ShutdownTimeout = 5 * time.Second

// Server serves predictions of a classifier
type Server struct {
	classifier *sapling.Classifier
	logger     *zap.Logger
	engine     *gin.Engine
}

// PredictRequest is the body expected by POST /predict and POST /test
type PredictRequest struct {
	Samples []json.RawMessage `json:"samples" binding:"required"`
	Labels  []string          `json:"labels,omitempty"`
}

// PredictResponse is the body returned by POST /predict
type PredictResponse struct {
	Labels []string `json:"labels"`
}

// TestResponse is the body returned by POST /test
type TestResponse struct {
	Samples  int     `json:"samples"`
	Accuracy float64 `json:"accuracy"`
}

/*
New takes a classifier and a logger and returns a Server answering with
the classifier predictions and logging every request.
*/
func New(classifier *sapling.Classifier, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{classifier: classifier, logger: logger}
	engine := gin.New()
	engine.Use(s.logRequests, gin.Recovery())
	engine.GET("/health", s.health)
	engine.GET("/tree", s.tree)
	engine.GET("/tree/snapshot", s.snapshot)
	engine.POST("/predict", s.predict)
	engine.POST("/test", s.test)
	s.engine = engine
	return s
}

// Handler returns the http.Handler serving the routes
func (s *Server) Handler() http.Handler {
	return s.engine
}

/*
Run takes a context and an address and serves on the address until the
context is done, then shuts the server down waiting at most
ShutdownTimeout for in-flight requests.
*/
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}
	errs := make(chan error, 1)
	go func() {
		s.logger.Info("serving predictions", zap.String("addr", addr))
		errs <- srv.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return fmt.Errorf("serving on %s: %v", addr, err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutting down: %v", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Info("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
		zap.String("client", c.ClientIP()),
	)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"trained": s.classifier.Tree() != nil,
	})
}

func (s *Server) tree(c *gin.Context) {
	t := s.classifier.Tree()
	if t == nil {
		s.fail(c, http.StatusConflict, sapling.ErrNotTrained)
		return
	}
	f := report.Format(c.DefaultQuery("format", string(report.Text)))
	var buf bytes.Buffer
	err := report.Write(&buf, t, f)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (s *Server) snapshot(c *gin.Context) {
	snapshot, err := s.classifier.Snapshot()
	if err != nil {
		s.fail(c, http.StatusConflict, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) predict(c *gin.Context) {
	rows, _, ok := s.bind(c)
	if !ok {
		return
	}
	labels, err := s.classifier.PredictAll(rows)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, PredictResponse{Labels: labels})
}

func (s *Server) test(c *gin.Context) {
	rows, labels, ok := s.bind(c)
	if !ok {
		return
	}
	accuracy, err := s.classifier.Test(rows, labels)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, TestResponse{Samples: len(rows), Accuracy: accuracy})
}

func (s *Server) bind(c *gin.Context) ([][]interface{}, []string, bool) {
	var req PredictRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return nil, nil, false
	}
	var columns []string
	if t := s.classifier.Tree(); t != nil {
		columns = t.ColumnNames()
	}
	rows := make([][]interface{}, len(req.Samples))
	for i, raw := range req.Samples {
		rows[i], err = decodeSample(raw, columns)
		if err != nil {
			s.fail(c, http.StatusBadRequest, fmt.Errorf("decoding sample %d: %v", i, err))
			return nil, nil, false
		}
	}
	return rows, req.Labels, true
}

func decodeSample(raw json.RawMessage, columns []string) ([]interface{}, error) {
	var row []interface{}
	err := json.Unmarshal(raw, &row)
	if err == nil {
		return row, nil
	}
	var sample dataset.Sample
	err = json.Unmarshal(raw, &sample)
	if err != nil {
		return nil, fmt.Errorf("decoding sample as an array or an object of values: %v", err)
	}
	return sample.Row(columns), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sapling.ErrNotTrained):
		return http.StatusConflict
	case errors.Is(err, sapling.ErrShapeMismatch):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	s.logger.Debug("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
