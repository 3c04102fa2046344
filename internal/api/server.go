// Package api exposes the note service over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/jotter/pkg/core"
)

// DateLayout is the format of the date query parameter and of scheduled dates in requests.
const DateLayout = "2006-01-02"

// Service is the subset of core.Service the API needs.
type Service interface {
	SaveNote(ctx context.Context, n core.Note) (core.Note, error)
	GetNote(ctx context.Context, id int64) (core.Note, error)
	ListNotes(ctx context.Context) ([]core.Note, error)
	NotesOn(ctx context.Context, day time.Time) ([]core.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	Settings(ctx context.Context) (core.Settings, error)
	UpdateSettings(ctx context.Context, st core.Settings) (core.Settings, error)
}

// Server routes HTTP requests to the note service.
type Server struct {
	svc    Service
	logger *slog.Logger
	router *gin.Engine
}

// New builds the router. logger may be nil.
func New(svc Service, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{svc: svc, logger: logger, router: gin.New()}
	s.router.Use(gin.Recovery(), s.logRequests)

	s.router.GET("/health", s.health)
	notes := s.router.Group("/notes")
	{
		notes.GET("", s.listNotes)
		notes.POST("", s.createNote)
		notes.GET("/:id", s.getNote)
		notes.GET("/:id/html", s.noteHTML)
		notes.PUT("/:id", s.updateNote)
		notes.DELETE("/:id", s.deleteNote)
	}
	s.router.GET("/settings", s.getSettings)
	s.router.PUT("/settings", s.updateSettings)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	if s.logger != nil {
		s.logger.Info("api listening", "addr", addr)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	if s.logger != nil {
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// fail maps domain errors to status codes.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrReadOnly):
		status = http.StatusForbidden
	}
	if status == http.StatusInternalServerError && s.logger != nil {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
