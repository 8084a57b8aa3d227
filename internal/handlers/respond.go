package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/oomool/backend/internal/middleware"
	"github.com/anonto42/oomool/backend/pkg/apperrors"
	"github.com/anonto42/oomool/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "서버 오류가 발생했습니다."

// errorResponse maps service errors onto the API's error bodies. Client errors
// go through echo's HTTPError; server errors are logged and rendered as {error}.
func errorResponse(c echo.Context, err error) error {
	status := apperrors.HTTPStatus(err)
	message := internalErrorMessage
	if appErr, ok := apperrors.As(err); ok {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request().Context()).Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return c.JSON(status, echo.Map{"error": message})
	}
	return echo.NewHTTPError(status, message)
}

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func currentUser(c echo.Context) (string, error) {
	id := middleware.UserID(c)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

// pageParams reads page and perPage, falling back to page 1 and def when a
// value is missing or outside 1..limit.
func pageParams(c echo.Context, def, limit int) (page, perPage int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.QueryParam("perPage"))
	if perPage < 1 || perPage > limit {
		perPage = def
	}
	return page, perPage
}
