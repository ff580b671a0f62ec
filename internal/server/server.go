// Package server exposes the timetable service as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/javiermolinar/jadwal/internal/config"
	"github.com/javiermolinar/jadwal/internal/timetable"
)

const shutdownTimeout = 5 * time.Second

// Server routes HTTP requests to a timetable service.
type Server struct {
	svc    *timetable.Service
	cfg    config.ServerConfig
	logger *zap.Logger
	engine *gin.Engine
}

// New creates a Server with recovery, request logging, CORS and, when
// cfg.RatePerMinute is positive, per-client rate limiting.
func New(svc *timetable.Service, cfg config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{svc: svc, cfg: cfg, logger: logger, engine: gin.New()}
	s.engine.Use(gin.Recovery())
	s.engine.Use(requestLogger(logger))
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	if cfg.RatePerMinute > 0 {
		s.engine.Use(newLimiterStore(cfg.RatePerMinute, cfg.Burst).middleware(logger))
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	{
		api.GET("/schedules", s.listSchedules)
		api.POST("/schedules", s.addSchedule)
		api.PUT("/schedules/:id", s.updateSchedule)
		api.DELETE("/schedules/:id", s.deleteSchedule)
		api.GET("/conflicts", s.conflicts)
		api.GET("/statistics", s.statistics)
		api.GET("/logs", s.logs)
		api.DELETE("/logs", s.clearLogs)
		api.GET("/report", s.report)
		api.GET("/free", s.freeSlots)
	}

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
