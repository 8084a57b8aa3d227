package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/repositories"
	"github.com/anonto42/oomool/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles the caller's own account
type UserHandler struct {
	userRepository repositories.UserRepository
}

func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetProfile)
	g.PUT("/users/me/fcm-token", h.UpdateFCMToken)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, services.ErrUserNotFound)
		}
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateFCMToken registers the device token used for push delivery. An empty
// token unregisters the device.
func (h *UserHandler) UpdateFCMToken(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateFCMTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userRepository.UpdateFCMToken(c.Request().Context(), userID, req.Token); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, services.ErrUserNotFound)
		}
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
