package handlers

import (
	"net/http"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	community Community
}

func NewFollowHandler(community Community) *FollowHandler {
	return &FollowHandler{community: community}
}

func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/toggle-follow", h.ToggleFollow)
}

func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.ToggleFollowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	following, err := h.community.ToggleFollow(c.Request().Context(), userID, req.UserID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": following}})
}
