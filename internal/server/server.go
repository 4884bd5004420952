// Package server exposes crossgen's generation engine over HTTP: a
// synchronous generate endpoint, a websocket progress stream, and a
// JWT-protected admin surface for rebuilding the pattern index and
// purging cached search state. Routing, CORS, and performance
// monitoring carry over the original server's route grouping almost
// verbatim; the auth and room/player machinery built for a multiplayer
// lobby has no place here and was replaced by the single admin role in
// auth.go.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"crossgen/internal/config"
	"crossgen/internal/store"
)

// Server wraps the gin router and the background progress hub.
type Server struct {
	cfg      config.Config
	router   *gin.Engine
	hub      *progressHub
	handlers *handlers
	st       *store.Store
}

// New wires the router, the admin auth service, and the generation
// handlers. cfg.AdminPassword must be set or admin login always fails.
func New(cfg config.Config) (*Server, error) {
	auth, err := newAuthService(cfg.JWTSecret, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("server: setting up admin auth: %w", err)
	}

	var st *store.Store
	if cfg.PostgresURL != "" || cfg.RedisURL != "" {
		st, err = store.New(cfg.PostgresURL, cfg.RedisURL)
		if err != nil {
			log.Printf("server: store unavailable, running without persistence: %v", err)
			st = nil
		} else if err := st.InitSchema(); err != nil {
			return nil, fmt.Errorf("server: initializing schema: %w", err)
		}
	}

	hub := newProgressHub()
	go hub.run()

	h, err := newHandlers(cfg, st, auth, hub)
	if err != nil {
		return nil, fmt.Errorf("server: loading dictionary: %w", err)
	}

	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(performanceMonitor())

	router.GET("/health", h.health)
	router.GET("/metrics", h.metrics)

	api := router.Group("/api")
	api.POST("/generate", h.generate)
	api.GET("/ws/progress", h.progress)
	api.POST("/admin/login", h.adminLogin)

	admin := api.Group("/admin")
	admin.Use(requireAdmin(auth))
	admin.POST("/rebuild-index", h.rebuildIndexHandler)
	admin.POST("/purge-cache", h.purgeCache)

	return &Server{cfg: cfg, router: router, hub: hub, handlers: h, st: st}, nil
}

// Run starts the HTTP server on cfg.Port and blocks until SIGINT/SIGTERM,
// then shuts down gracefully.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: listen failed: %v", err)
		}
	}()
	log.Printf("server: listening on port %s", s.cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("server: shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: forced shutdown: %w", err)
	}
	if s.st != nil {
		s.st.Close()
	}
	if err := s.handlers.Close(); err != nil {
		log.Printf("server: closing pattern index cache: %v", err)
	}
	log.Println("server: exited")
	return nil
}
