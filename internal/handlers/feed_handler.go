package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// FeedHandler serves the trending feed and search
type FeedHandler struct {
	reader Reader
}

func NewFeedHandler(reader Reader) *FeedHandler {
	return &FeedHandler{reader: reader}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed/trending", h.GetTrending)
	g.GET("/search", h.Search)
}

// GetTrending ranks recent posts and questions; period is 24h, 7d or 30d
func (h *FeedHandler) GetTrending(c echo.Context) error {
	page, perPage := pageParams(c, 20, 50)
	items, err := h.reader.Trending(c.Request().Context(), c.QueryParam("period"), page, perPage)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "page": page, "perPage": perPage})
}

func (h *FeedHandler) Search(c echo.Context) error {
	page, perPage := pageParams(c, 20, 50)
	results, err := h.reader.Search(c.Request().Context(), c.QueryParam("q"), c.QueryParam("type"), page, perPage)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": results, "page": page, "perPage": perPage})
}
