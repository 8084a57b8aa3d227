package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type CodeVerifier interface {
	SendCode(ctx context.Context, email string) (*models.VerificationCode, error)
	VerifyCode(ctx context.Context, email, code string) error
}

// VerificationHandler serves the public email verification endpoints.
type VerificationHandler struct {
	verifier CodeVerifier
}

func NewVerificationHandler(verifier CodeVerifier) *VerificationHandler {
	return &VerificationHandler{verifier: verifier}
}

func (h *VerificationHandler) RegisterVerificationRoutes(g *echo.Group) {
	g.POST("/send-code", h.SendCode)
	g.POST("/verify-code", h.VerifyCode)
}

func (h *VerificationHandler) SendCode(c echo.Context) error {
	var req models.SendCodeRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, services.ErrEmailRequired)
	}

	if _, err := h.verifier.SendCode(c.Request().Context(), req.Email); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "인증 코드가 발송되었습니다.",
	})
}

func (h *VerificationHandler) VerifyCode(c echo.Context) error {
	var req models.VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, services.ErrCodeRequired)
	}

	if err := h.verifier.VerifyCode(c.Request().Context(), req.Email, req.Code); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "인증이 완료되었습니다.",
	})
}
