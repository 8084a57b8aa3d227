package handlers

import (
	"net/http"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like toggling on posts, comments and answers
type LikeHandler struct {
	community Community
}

func NewLikeHandler(community Community) *LikeHandler {
	return &LikeHandler{community: community}
}

func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/toggle-like", h.ToggleLike)
}

// ToggleLike likes the target, or removes the like when it already exists.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.ToggleLikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	targetType, err := models.ParseTargetType(req.TargetType)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid target_type")
	}

	result, err := h.community.ToggleLike(c.Request().Context(), userID, models.Target{Type: targetType, ID: req.TargetID})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"liked":      result.Active,
			"like_count": result.Count,
		},
	})
}
