package handlers

import (
	"errors"

	"github.com/brainlink-app/brainlink-backend/internal/dto"
	"github.com/brainlink-app/brainlink-backend/internal/middleware"
	"github.com/brainlink-app/brainlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /notifications?page=N&mark_read=true. When mark_read is
// set, every unread notification is consumed by this request; the returned
// unread_count is the count as it stood before the bulk flip, so the client
// sees what it just consumed rather than a racy zero.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	var unread int64
	if c.QueryBool("mark_read", false) {
		unread, err = h.notificationService.MarkAllRead(userID)
	} else {
		unread, err = h.notificationService.UnreadCount(userID)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load notifications",
		})
	}

	notifications, total, err := h.notificationService.ListAll(userID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load notifications",
		})
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		resp := dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			IsRead:    n.IsRead,
			Target:    h.notificationService.TargetPath(n),
			CreatedAt: n.CreatedAt,
		}
		if n.Sender != nil {
			resp.SenderUsername = n.Sender.Username
		}
		responses = append(responses, resp)
	}

	totalPages := int((total + services.NotificationPageSize - 1) / services.NotificationPageSize)

	return c.JSON(dto.NotificationListResponse{
		Notifications: responses,
		Page:          page,
		TotalPages:    totalPages,
		UnreadCount:   unread,
	})
}

// UnreadCount handles GET /notifications/unread-count.
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	count, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to count notifications",
		})
	}

	return c.JSON(dto.UnreadCountResponse{UnreadCount: count})
}

// MarkRead handles POST /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid notification ID",
		})
	}

	if err := h.notificationService.MarkRead(notificationID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotificationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Notification not found",
			})
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Not your notification",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to mark notification read",
		})
	}

	return c.JSON(fiber.Map{"message": "Notification marked read"})
}
