package handlers

import (
	"net/http"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	community         Community
	reader            Reader
	commentRepository repositories.CommentRepository
}

func NewCommentHandler(community Community, reader Reader, commentRepo repositories.CommentRepository) *CommentHandler {
	return &CommentHandler{
		community:         community,
		reader:            reader,
		commentRepository: commentRepo,
	}
}

func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.GET("/comments/:post_id", h.GetCommentTree)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment comments on a post, optionally replying to another comment
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.community.CreateComment(c.Request().Context(), userID, req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	comments, err := h.commentRepository.GetCommentsByPostID(c.Request().Context(), c.Param("post_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": comments})
}

// GetCommentTree returns the post's comments with replies nested under their parents
func (h *CommentHandler) GetCommentTree(c echo.Context) error {
	_, perPage := pageParams(c, 100, 200)
	tree, total, err := h.reader.CommentTree(c.Request().Context(), c.Param("post_id"), perPage)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": tree, "totalItems": total})
}

// DeleteComment deletes the caller's own comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.community.DeleteComment(c.Request().Context(), userID, c.Param("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
