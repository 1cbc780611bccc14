// Package api exposes the converters over HTTP.
package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/bspconv/internal/logger"
	"github.com/samcharles93/bspconv/pkg/brushmodel"
	"github.com/samcharles93/bspconv/pkg/entities"
	"github.com/samcharles93/bspconv/pkg/rbsp"
)

// DefaultMaxBodySize bounds uploaded containers and partitions.
const DefaultMaxBodySize = 256 << 20

// HeaderBrushModels carries the number of migrated brush models.
const HeaderBrushModels = "X-Brush-Models"

type Server struct {
	log         logger.Logger
	maxBodySize int64
}

func NewServer(log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{log: log, maxBodySize: DefaultMaxBodySize}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/inspect", s.handleInspect)
	e.POST("/v1/entities/convert", s.handleConvertEntities)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

// handleInspect summarizes an uploaded container.
func (s *Server) handleInspect(c *echo.Context) error {
	body, err := s.readBody(c)
	if err != nil {
		return writeBodyError(c, err)
	}
	bf, err := rbsp.OpenReaderAt(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return writeKindError(c, err)
	}
	return writeJSON(c, http.StatusOK, rbsp.Summarize(&bf.Header, int64(len(body))))
}

// handleConvertEntities migrates the brush models of an uploaded entity
// partition and returns the converted text.
func (s *Server) handleConvertEntities(c *echo.Context) error {
	expectHeader := true
	if v := c.QueryParam("header"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return writeBadRequest(c, "header: "+err.Error())
		}
		expectHeader = b
	}
	body, err := s.readBody(c)
	if err != nil {
		return writeBodyError(c, err)
	}

	runID := uuid.NewString()
	p, err := entities.Parse(string(body), expectHeader)
	if err != nil {
		return writeKindError(c, err)
	}
	n, err := brushmodel.MigratePartition(p)
	if err != nil {
		s.log.Warn("entity conversion failed", "run", runID, "err", err)
		return writeKindError(c, err)
	}
	s.log.Info("converted entities", "run", runID, "objects", len(p.Objects), "brush_models", n)

	c.Response().Header().Set(HeaderBrushModels, strconv.Itoa(n))
	c.Response().Header().Set("X-Run-ID", runID)
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, []byte(p.Serialize()))
}

var errBodyTooLarge = errors.New("request body exceeds limit")

func (s *Server) readBody(c *echo.Context) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, s.maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > s.maxBodySize {
		return nil, errBodyTooLarge
	}
	return body, nil
}

func writeBodyError(c *echo.Context, err error) error {
	if errors.Is(err, errBodyTooLarge) {
		return writeError(c, http.StatusRequestEntityTooLarge, "too_large", err.Error())
	}
	return writeBadRequest(c, "read body: "+err.Error())
}
