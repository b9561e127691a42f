package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rusafidt/Sentiment-Analyzer/internal/config"
	"github.com/rusafidt/Sentiment-Analyzer/internal/handler"
	"github.com/rusafidt/Sentiment-Analyzer/internal/middleware"
	"github.com/rusafidt/Sentiment-Analyzer/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Files served from the root of the frontend build when present.
var rootFiles = []string{"favicon.ico", "robots.txt", "sitemap.xml"}

// Server is the HTTP front of the sentiment service.
type Server struct {
	router *gin.Engine
	srv    *http.Server
	logger *zap.Logger
}

// NewServer builds the router and wraps it in an http.Server listening on cfg's address.
func NewServer(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *Server {
	router := NewRouter(cfg, h, logger)
	return &Server{
		router: router,
		srv: &http.Server{
			Addr:    cfg.Addr(),
			Handler: router,
		},
		logger: logger,
	}
}

// NewRouter assembles middleware, API routes, metrics and the frontend.
func NewRouter(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(),
	)

	h.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	mountFrontend(router, cfg.Frontend.BuildDir, logger)
	return router
}

func mountFrontend(router *gin.Engine, buildDir string, logger *zap.Logger) {
	index := filepath.Join(buildDir, "index.html")

	if dir := filepath.Join(buildDir, "_next", "static"); isDir(dir) {
		router.Static("/_next/static", dir)
	}
	if dir := filepath.Join(buildDir, "assets"); isDir(dir) {
		router.Static("/assets", dir)
	}
	for _, name := range rootFiles {
		if file := filepath.Join(buildDir, name); isFile(file) {
			router.StaticFile("/"+name, file)
		}
	}

	if isFile(index) {
		logger.Info("Serving frontend", zap.String("build_dir", buildDir))
	} else {
		logger.Info("Frontend not built, serving API only", zap.String("build_dir", buildDir))
	}

	// The index is checked per request so a frontend built after startup is picked up.
	router.GET("/", func(c *gin.Context) {
		if isFile(index) {
			c.File(index)
			return
		}
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  "healthy",
			Message: "Sentiment Analyzer API is running! Frontend not built yet.",
		})
	})

	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, models.ErrorDetail{Detail: "Not Found"})
			return
		}
		if isFile(index) {
			c.File(index)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Frontend not built. Please build the frontend first."})
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Run() error {
	s.logger.Info("Server starting", zap.String("address", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.srv.Shutdown(ctx)
}

func isDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}
