package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/MiniOS/internal/api/http"
	"github.com/GriffinCanCode/MiniOS/internal/api/middleware"
	"github.com/GriffinCanCode/MiniOS/internal/api/ws"
	"github.com/GriffinCanCode/MiniOS/internal/events"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/monitoring"
)

const shutdownTimeout = 5 * time.Second

// Server is the read-only status HTTP server
type Server struct {
	router  *gin.Engine
	http    *http.Server
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer builds the router for a session. Nothing is served until Start.
func NewServer(cfg *config.Config, source apihttp.Source, broadcaster *events.Broadcaster, metrics *monitoring.Metrics, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("status")

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	if metrics != nil {
		router.Use(monitoring.Middleware(metrics))
	}
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			IdleTTL:           middleware.DefaultRateLimitConfig().IdleTTL,
		}))
	}

	handlers := apihttp.NewHandlers(source, metrics)
	wsHandler := ws.NewHandler(broadcaster, metrics, logger)

	router.GET("/health", handlers.Health)
	router.GET("/status", handlers.Status)
	router.GET("/processes", handlers.Processes)
	router.GET("/metrics", handlers.Metrics)
	router.GET("/metrics/summary", handlers.MetricsSummary)
	router.GET("/ws/events", wsHandler.HandleConnection)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.StatusAddr(),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listener and serves in the background. Bind errors are
// returned; later serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	s.http.Addr = ln.Addr().String()

	s.logger.Info("Starting status server", zap.String("addr", s.http.Addr))
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Status server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the listen address; after Start it is the bound address
func (s *Server) Addr() string {
	return s.http.Addr
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down status server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down status server: %w", err)
	}
	return nil
}
