package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/repositories"
	"github.com/anonto42/oomool/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the owner's notification inbox
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.POST("/notifications/mark-all-read", h.MarkAllAsRead)
	g.DELETE("/notifications/:id", h.DeleteNotification)
}

type ActorSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnrichedNotification includes the actor's display name
type EnrichedNotification struct {
	models.Notification
	ActorProfile *ActorSummary `json:"actor_profile,omitempty"`
}

func (h *NotificationHandler) enrichNotifications(c echo.Context, notifications []models.Notification) []EnrichedNotification {
	enriched := make([]EnrichedNotification, len(notifications))
	actors := make(map[string]*ActorSummary)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		if n.ActorID == "" {
			continue
		}
		if actor, ok := actors[n.ActorID]; ok {
			enriched[i].ActorProfile = actor
			continue
		}
		user, err := h.userRepository.GetUserByID(c.Request().Context(), n.ActorID)
		if err != nil {
			continue
		}
		actor := &ActorSummary{ID: user.ID, Name: user.DisplayName()}
		actors[n.ActorID] = actor
		enriched[i].ActorProfile = actor
	}
	return enriched
}

// GetNotifications returns the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	notifications, total, err := h.notificationRepository.GetByUserID(c.Request().Context(), userID, page, limit)
	if err != nil {
		return errorResponse(c, err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": h.enrichNotifications(c, notifications),
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.notificationRepository.GetUnreadCount(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAsRead(c.Request().Context(), c.Param("id"), userID); err != nil {
		return h.ownedError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	updated, err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"updated": updated}})
}

func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.notificationRepository.DeleteNotification(c.Request().Context(), c.Param("id"), userID); err != nil {
		return h.ownedError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ownedError hides whether a notification exists when the caller does not own it.
func (h *NotificationHandler) ownedError(c echo.Context, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return errorResponse(c, services.ErrNotificationAbsent)
	}
	return errorResponse(c, err)
}
