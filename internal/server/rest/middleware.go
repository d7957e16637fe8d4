package rest

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/legalvault/internal/server/auth"
	"github.com/dmitrijs2005/legalvault/internal/server/models"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// jwtAuth validates the Bearer access token and injects the requester's
// identity into the echo context for handlers.
func (s *Server) jwtAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), s.jwtSecret)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		return next(c)
	}
}

func requester(c echo.Context) (string, models.UserRole) {
	id, _ := c.Get(ctxUserID).(string)
	role, _ := c.Get(ctxRole).(models.UserRole)
	return id, role
}
