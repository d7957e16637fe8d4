// Package rest exposes the service boundary over HTTP: auth, document
// upload/download/safety-check and activity management.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/legalvault/internal/logging"
	"github.com/dmitrijs2005/legalvault/internal/server/services"
)

type Server struct {
	address    string
	logger     logging.Logger
	users      *services.UserService
	documents  *services.DocumentService
	activities *services.ActivityService
	jwtSecret  []byte
}

func NewServer(address string, l logging.Logger, us *services.UserService, ds *services.DocumentService, as *services.ActivityService, secretKey string) *Server {
	return &Server{
		address:    address,
		logger:     l.With("module", "rest_server"),
		users:      us,
		documents:  ds,
		activities: as,
		jwtSecret:  []byte(secretKey),
	}
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s.registerRoutes(e)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "server shutdown", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) registerRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	api := e.Group("/api/v1")

	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	authed := api.Group("", s.jwtAuth)
	authed.POST("/documents", s.handleUploadDocument)
	authed.GET("/documents/:id", s.handleGetDocument)
	authed.GET("/documents/:id/file", s.handleDownloadDocument)
	authed.POST("/documents/:id/safety-check", s.handleSafetyCheck)
	authed.POST("/activities", s.handleCreateActivity)
	authed.GET("/activities", s.handleListActivities)
}
