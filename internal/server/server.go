package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexiusacademia/gocoil/internal/coil"
	"github.com/alexiusacademia/gocoil/internal/diagram"
	"github.com/alexiusacademia/gocoil/internal/material"
	"github.com/alexiusacademia/gocoil/internal/report"
	"github.com/alexiusacademia/gocoil/internal/version"
	"github.com/gin-gonic/gin"
)

// Server exposes the layout calculator over HTTP. Every request recomputes
// the layout from the posted design; nothing is kept between requests.
type Server struct {
	router *gin.Engine
	logger *slog.Logger
}

// New builds the router
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router: gin.New(),
		logger: logger,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())

	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/defaults", s.handleDefaults)
	api.POST("/layout", s.handleLayout)
	api.POST("/render", s.handleRender)
	api.POST("/chart", s.handleChart)
	api.POST("/export", s.handleExport)

	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Version})
}

func (s *Server) handleDefaults(c *gin.Context) {
	unit, ok := s.unit(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, coil.Design{
		Name:   "Reference design",
		Units:  unit,
		Inputs: coil.DefaultInputs().InUnit(unit),
	})
}

// layoutResponse is the JSON body of /api/layout, lengths in Units
type layoutResponse struct {
	Units     coil.Unit         `json:"units"`
	Inputs    coil.Inputs       `json:"inputs"`
	Result    *coil.Result      `json:"result"`
	Estimate  material.Estimate `json:"estimate"`
	Shortfall *shortfall        `json:"shortfall,omitempty"`
}

type shortfall struct {
	Requested int    `json:"requested"`
	Placed    int    `json:"placed"`
	Unplaced  int    `json:"unplaced"`
	Message   string `json:"message"`
}

func (s *Server) handleLayout(c *gin.Context) {
	design, res, unit, ok := s.compute(c)
	if !ok {
		return
	}

	body := layoutResponse{
		Units:    unit,
		Inputs:   design.Inputs.InUnit(unit),
		Result:   res.InUnit(unit),
		Estimate: material.Lookup(design.WireType).Estimate(design.Inputs, res),
	}
	if err := res.Err(); err != nil {
		body.Shortfall = &shortfall{
			Requested: res.RequestedStrands,
			Placed:    res.PlacedStrands,
			Unplaced:  res.Unplaced(),
			Message:   err.Error(),
		}
	}
	c.JSON(http.StatusOK, body)
}

var renderTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
	"pdf": "application/pdf",
}

func (s *Server) handleRender(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "png"))
	contentType, known := renderTypes[format]
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be png, svg or pdf"})
		return
	}

	design, res, unit, ok := s.compute(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := diagram.WriteLayoutDiagram(diagram.NewLayoutData(design.Inputs, res, unit), &buf, format); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (s *Server) handleChart(c *gin.Context) {
	design, res, unit, ok := s.compute(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := diagram.WriteLayoutChart(diagram.NewLayoutData(design.Inputs, res, unit), &buf); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleExport(c *gin.Context) {
	design, res, unit, ok := s.compute(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, design.Inputs, res, unit); err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="coil.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// compute decodes the posted design and lays it out. It writes the error
// response itself and reports false when the request cannot proceed.
func (s *Server) compute(c *gin.Context) (*coil.Design, *coil.Result, coil.Unit, bool) {
	unit, ok := s.unit(c)
	if !ok {
		return nil, nil, "", false
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, "", false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	design, err := coil.ParseDesign(body)
	if err != nil {
		s.fail(c, err)
		return nil, nil, "", false
	}

	res, err := coil.Compute(design.Inputs)
	if err != nil {
		s.fail(c, err)
		return nil, nil, "", false
	}

	if res.HasShortfall() {
		s.logger.Warn("coverage shortfall", "requested", res.RequestedStrands, "placed", res.PlacedStrands)
	}
	return design, res, unit, true
}

// unit reads the ?units= query parameter, defaulting to millimetres
func (s *Server) unit(c *gin.Context) (coil.Unit, bool) {
	unit, err := coil.ParseUnit(c.Query("units"))
	if err != nil {
		s.fail(c, err)
		return "", false
	}
	return unit, true
}

// fail maps an error onto a status code and a JSON body
func (s *Server) fail(c *gin.Context, err error) {
	var inputErr *coil.InputError
	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "field": inputErr.Field})
	case errors.Is(err, coil.ErrInvalidInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case isDecodeError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
