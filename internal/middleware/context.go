package middleware

import (
	"strings"

	"github.com/anonto42/oomool/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo context key holding the acting user's id.
const UserIDKey = "userID"

// UserID returns the authenticated user's id, or "" on public routes.
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}

func setUser(c echo.Context, userID string) {
	c.Set(UserIDKey, userID)
	req := c.Request()
	c.SetRequest(req.WithContext(logger.WithUserID(req.Context(), userID)))
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	// Expecting "Bearer <token>"
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
