// Package server serves the decoder over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/internal/config"
	"github.com/ericlevine/qrscan/internal/report"
	"github.com/ericlevine/qrscan/qrcode"
)

// DecodeResponse is the body of a successful POST /v1/decode.
type DecodeResponse struct {
	Symbols []report.Symbol `json:"symbols"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server handles decode requests.
type Server struct {
	reader   *qrcode.Reader
	log      *slog.Logger
	metrics  *metrics
	maxBytes int64
	timeout  time.Duration
	version  string
}

// New creates a server from the loaded configuration. log may be nil.
func New(cfg *config.Config, log *slog.Logger, version string) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	opts := cfg.Options()
	opts.Logger = log
	return &Server{
		reader:   qrcode.NewReader(opts),
		log:      log,
		metrics:  newMetrics(),
		maxBytes: int64(cfg.Server.MaxUploadMB) << 20,
		timeout:  time.Duration(cfg.Server.TimeoutSec) * time.Second,
		version:  version,
	}
}

// Handler returns the routes of the service.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	r.POST("/v1/decode", s.requestSizeLimiter(), s.decode)
	return r
}

// ListenAndServe runs the service on addr until ctx ends, then shuts it
// down within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) decode(c *gin.Context) {
	data, err := readImage(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(c, http.StatusRequestEntityTooLarge, "too_large", "image exceeds the upload limit", err)
			return
		}
		s.fail(c, http.StatusBadRequest, "bad_request", "invalid request", err)
		return
	}
	s.metrics.uploadSize.Observe(float64(len(data)))

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()
	start := time.Now()
	symbols, err := s.reader.DecodeContext(ctx, data)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, qrscan.ErrImageLoad):
		s.fail(c, http.StatusBadRequest, "bad_request", "invalid image", err)
		return
	case errors.Is(err, context.DeadlineExceeded):
		s.fail(c, http.StatusGatewayTimeout, "timeout", "decode timed out", err)
		return
	case err != nil:
		s.fail(c, http.StatusServiceUnavailable, "cancelled", "decode cancelled", err)
		return
	}

	for _, sym := range symbols {
		if sym.Err != nil {
			s.metrics.symbols.WithLabelValues("error").Inc()
		} else {
			s.metrics.symbols.WithLabelValues("ok").Inc()
		}
	}
	s.metrics.requests.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, DecodeResponse{Symbols: report.FromSymbols(symbols)})
}

// readImage returns the multipart "image" field when the request is a
// form upload, and the raw body otherwise.
func readImage(c *gin.Context) ([]byte, error) {
	if c.ContentType() != "multipart/form-data" {
		return io.ReadAll(c.Request.Body)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) fail(c *gin.Context, code int, status, message string, err error) {
	s.metrics.requests.WithLabelValues(status).Inc()
	s.log.Warn("request failed",
		"status_code", code,
		"path", c.Request.URL.Path,
		"ip", c.ClientIP(),
		"err", err)
	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: message + ": " + err.Error(),
	})
}

func (s *Server) requestSizeLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBytes)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}
