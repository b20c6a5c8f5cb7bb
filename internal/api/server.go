package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/crusher/config"
	"example.com/backstage/services/crusher/internal/api/handlers"
	"example.com/backstage/services/crusher/internal/integrity"
	"example.com/backstage/services/crusher/internal/services"
)

// Services bundles the service layer for route registration
type Services struct {
	MasterData *services.MasterDataService
	Crusher    *services.CrusherService
	Orders     *services.OrderService
	Dispatch   *services.DispatchService
	Users      *services.UserService
	Integrity  *integrity.Checker
}

// Server represents the HTTP server
type Server struct {
	config     config.Config
	router     *gin.Engine
	httpServer *http.Server
	services   Services
}

// NewServer creates a new HTTP server
func NewServer(cfg config.Config, svcs Services) *Server {
	server := &Server{
		config:   cfg,
		services: svcs,
	}

	router := server.setupRouter()
	server.router = router

	httpServer := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		ReadTimeout:  cfg.ServerTimeout,
		WriteTimeout: cfg.ServerTimeout,
	}
	server.httpServer = httpServer

	return server
}

// setupRouter configures the HTTP router
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Recovery middleware
	router.Use(gin.Recovery())

	// Register handlers
	handlers.NewMasterDataHandler(s.services.MasterData).RegisterRoutes(router)
	handlers.NewCrusherHandler(s.services.Crusher).RegisterRoutes(router)
	handlers.NewOrderHandler(s.services.Orders).RegisterRoutes(router)
	handlers.NewDispatchHandler(s.services.Dispatch).RegisterRoutes(router)
	handlers.NewUserHandler(s.services.Users).RegisterRoutes(router)
	handlers.NewIntegrityHandler(s.services.Integrity).RegisterRoutes(router)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("address", s.config.ServerAddress).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "HTTP server error")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "HTTP server shutdown error")
	}

	log.Info().Msg("HTTP server shut down successfully")
	return nil
}
