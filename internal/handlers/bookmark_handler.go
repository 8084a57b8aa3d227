package handlers

import (
	"net/http"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler handles saving posts
type BookmarkHandler struct {
	community Community
}

func NewBookmarkHandler(community Community) *BookmarkHandler {
	return &BookmarkHandler{community: community}
}

func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.POST("/toggle-bookmark", h.ToggleBookmark)
}

func (h *BookmarkHandler) ToggleBookmark(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.ToggleBookmarkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.community.ToggleBookmark(c.Request().Context(), userID, req.PostID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"bookmarked":     result.Active,
			"bookmark_count": result.Count,
		},
	})
}
