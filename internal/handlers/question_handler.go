package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/repositories"
	"github.com/anonto42/oomool/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// QuestionHandler handles questions and their answers
type QuestionHandler struct {
	community          Community
	reader             Reader
	questionRepository repositories.QuestionRepository
}

func NewQuestionHandler(community Community, reader Reader, questionRepo repositories.QuestionRepository) *QuestionHandler {
	return &QuestionHandler{
		community:          community,
		reader:             reader,
		questionRepository: questionRepo,
	}
}

func (h *QuestionHandler) RegisterQuestionRoutes(g *echo.Group) {
	g.POST("/questions", h.CreateQuestion)
	g.GET("/questions", h.GetQuestions)
	g.GET("/questions/:id", h.GetQuestion)
	g.POST("/toggle-curious", h.ToggleCurious)
	g.POST("/answers", h.CreateAnswer)
	g.POST("/accept-answer", h.AcceptAnswer)
}

func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateQuestionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	question, err := h.community.CreateQuestion(c.Request().Context(), userID, req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) GetQuestion(c echo.Context) error {
	question, err := h.questionRepository.GetQuestionByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, services.ErrQuestionNotFound)
		}
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, question)
}

// GetQuestions lists questions, paginated by page and perPage and ordered by sort
func (h *QuestionHandler) GetQuestions(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	page, perPage := pageParams(c, 20, 100)
	items, total, err := h.reader.ListQuestions(c.Request().Context(), userID, repositories.QuestionListOptions{
		Page:    page,
		PerPage: perPage,
		Sort:    c.QueryParam("sort"),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":      items,
		"page":       page,
		"perPage":    perPage,
		"totalItems": total,
		"totalPages": (total + int64(perPage) - 1) / int64(perPage),
	})
}

func (h *QuestionHandler) ToggleCurious(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.ToggleCuriousRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.community.ToggleCurious(c.Request().Context(), userID, req.QuestionID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"curious":       result.Active,
			"curious_count": result.Count,
		},
	})
}

func (h *QuestionHandler) CreateAnswer(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateAnswerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	answer, err := h.community.CreateAnswer(c.Request().Context(), userID, req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, answer)
}

// AcceptAnswer marks an answer accepted; only the question's author may do this.
func (h *QuestionHandler) AcceptAnswer(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.AcceptAnswerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	answer, err := h.community.AcceptAnswer(c.Request().Context(), userID, req.AnswerID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": answer})
}
