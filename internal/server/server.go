// Package server exposes the converter over HTTP.
//
// Routes:
//
//	GET  /healthz
//	POST /api/v1/convert          PDF -> JSON envelope or .docx (?format=docx)
//	POST /api/v1/convert/html     PDF -> HTML preview
//	POST /api/v1/convert/tables   PDF -> .xlsx of the detected tables
//	POST /api/v1/export           edited HTML -> .docx
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tsawler/pdfword"
	"github.com/tsawler/pdfword/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end of a Converter.
type Server struct {
	cfg    config.ServerConfig
	logger *slog.Logger
	engine *gin.Engine
}

// New creates a Server with all routes and middleware.
func New(conv *pdfword.Converter, cfg config.ServerConfig, logger *slog.Logger) *Server {
	h := NewHandler(conv, logger, cfg.MaxUploadBytes())
	return &Server{
		cfg:    cfg,
		logger: logger,
		engine: Router(h, logger, cfg.ConversionTimeout),
	}
}

// Router configures the Gin engine with all routes and middleware.
func Router(h *Handler, logger *slog.Logger, timeout time.Duration) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(Recovery(logger))
	r.Use(RequestID())
	r.Use(Logger(logger))

	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	v1.Use(Timeout(timeout))
	v1.POST("/convert", h.Convert)
	v1.POST("/convert/html", h.ConvertHTML)
	v1.POST("/convert/tables", h.ConvertTables)
	v1.POST("/export", h.Export)

	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Port,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
