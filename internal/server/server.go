package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/testcloud/grid-proxy/internal/config"
	"github.com/testcloud/grid-proxy/internal/handlers"
	"github.com/testcloud/grid-proxy/internal/server/middlewares"
)

type Server struct {
	srv    *http.Server
	engine *gin.Engine
}

func NewServer(cfg *config.Configuration, h *handlers.Handler) (*Server, error) {
	if cfg.Server.ServerMode == config.ServerModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middlewares.RequestID(),
		middlewares.Logger(),
		ginzap.CustomRecoveryWithZap(zap.L(), true, h.Recover),
		cors.New(corsConfig(cfg.Server.AllowedOrigins)),
	)

	engine.GET("/health", h.Health)
	if cfg.Server.MetricsEnabled {
		engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	for _, mount := range handlers.Mounts {
		handlers.RegisterRoutes(engine.Group(mount), h)
	}
	engine.NoRoute(h.NotFound)

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. A graceful Stop returns nil.
func (s *Server) Start(ctx context.Context) error {
	zap.S().Named("server").Infow("server listening", "addr", s.srv.Addr)
	// requests inherit ctx so outbound grid calls stop when the process shuts down
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	zap.S().Named("server").Info("shutting down server")
	return s.srv.Shutdown(ctx)
}

// corsConfig allows the configured origins; "*" allows any origin.
func corsConfig(origins []string) cors.Config {
	allowAll := slices.Contains(origins, "*")
	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowAll || slices.Contains(origins, origin)
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{middlewares.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
