// Package server exposes one routing-graph file over HTTP.
//
// Reading is single pass, so every request opens the file afresh.
package server

import (
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samcharles93/osrmreader/internal/geojson"
	"github.com/samcharles93/osrmreader/internal/inspect"
	"github.com/samcharles93/osrmreader/internal/logger"
	"github.com/samcharles93/osrmreader/pkg/osrm"
)

const headerRequestID = "X-Request-Id"

// Server answers summary, GeoJSON and metrics requests for one file.
type Server struct {
	path    string
	opts    []osrm.Option
	log     logger.Logger
	metrics *metrics
}

// New creates a Server for the file at path. opts are applied to every
// reader the server opens.
func New(path string, log logger.Logger, opts ...osrm.Option) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		path:    path,
		opts:    opts,
		log:     log,
		metrics: newMetrics(prometheus.NewRegistry()),
	}
}

// Register mounts the routes and the request id middleware on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(s.requestID)
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/summary", s.handleSummary)
	e.GET("/v1/geojson", s.handleGeoJSON)
	e.GET("/metrics", s.handleMetrics)
}

func (s *Server) requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		id := c.Request().Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(headerRequestID, id)
		c.Set("request_id", id)
		return next(c)
	}
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(c *echo.Context) error {
	f, err := osrm.Open(s.path, slices.Concat(s.opts, []osrm.Option{osrm.WithUnknownSections(true)})...)
	if err != nil {
		return s.writeFailure(c, "summary", err)
	}
	defer func() { _ = f.Close() }()

	sum, err := inspect.Summarize(f.Reader)
	if err != nil {
		return s.writeFailure(c, "summary", err)
	}
	s.metrics.observe("summary", sum.Nodes, sum.Edges, sum.DecodeErrors)
	return c.JSON(http.StatusOK, sum)
}

func (s *Server) handleGeoJSON(c *echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return writeError(c, http.StatusBadRequest, "invalid_request_error", "limit must be a non-negative integer")
		}
		limit = n
	}

	f, err := osrm.Open(s.path, s.opts...)
	if err != nil {
		return s.writeFailure(c, "geojson", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := f.Entries()
	if err != nil {
		return s.writeFailure(c, "geojson", err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/geo+json")
	res.WriteHeader(http.StatusOK)

	log := s.log.With("request_id", c.Get("request_id"))
	out, err := geojson.Convert(c.Request().Context(), entries, res, geojson.Options{
		Limit:      limit,
		Properties: c.QueryParam("properties") == "true",
		Logger:     log,
	})
	s.metrics.observe("geojson", uint64(out.Nodes), uint64(out.Features), uint64(out.Skipped))
	if err != nil {
		// Headers are gone; all that is left is to cut the stream short.
		log.Error("geojson stream aborted", "error", err, "features", out.Features)
		return nil
	}
	log.Debug("geojson stream done", "features", out.Features, "skipped", out.Skipped)
	return nil
}

func (s *Server) handleMetrics(c *echo.Context) error {
	promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}).ServeHTTP(c.Response(), c.Request())
	return nil
}

func (s *Server) writeFailure(c *echo.Context, route string, err error) error {
	s.metrics.failures.WithLabelValues(route).Inc()
	s.log.Warn("request failed", "route", route, "request_id", c.Get("request_id"), "error", err)

	switch {
	case errors.Is(err, osrm.ErrFormat):
		return writeError(c, http.StatusUnprocessableEntity, "format_error", err.Error())
	case errors.Is(err, osrm.ErrDecode):
		return writeError(c, http.StatusUnprocessableEntity, "decode_error", err.Error())
	default:
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}
}
