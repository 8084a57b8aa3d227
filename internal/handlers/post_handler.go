package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/repositories"
	"github.com/anonto42/oomool/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to community posts
type PostHandler struct {
	community      Community
	views          ViewCounter
	postRepository repositories.PostRepository
}

func NewPostHandler(community Community, views ViewCounter, postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{
		community:      community,
		views:          views,
		postRepository: postRepo,
	}
}

func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/view", h.IncrementView)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.community.CreatePost(c.Request().Context(), userID, req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, services.ErrPostNotFound)
		}
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts lists posts newest first, paginated by page and limit
func (h *PostHandler) GetPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	skip := int64((page - 1) * limit)
	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    posts,
		"meta":    echo.Map{"currentPage": page, "itemsPerPage": limit},
	})
}

// IncrementView counts one view of a post or question.
func (h *PostHandler) IncrementView(c echo.Context) error {
	var req models.IncrementViewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	targetType, err := models.ParseTargetType(req.Type)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid type")
	}

	views, err := h.views.IncrementView(c.Request().Context(), models.Target{Type: targetType, ID: req.ID})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, services.ErrTargetNotFound)
		}
		if errors.Is(err, models.ErrUnknownTargetType) {
			return errorResponse(c, services.ErrInvalidTarget)
		}
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"view_count": views}})
}
