package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/brainlink-app/brainlink-backend/internal/config"
	"github.com/brainlink-app/brainlink-backend/internal/dto"
	"github.com/brainlink-app/brainlink-backend/internal/middleware"
	"github.com/brainlink-app/brainlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messageService *services.MessageService
	cfg            *config.Config
}

func NewMessageHandler(messageService *services.MessageService, cfg *config.Config) *MessageHandler {
	return &MessageHandler{messageService: messageService, cfg: cfg}
}

// Fetch handles GET /messages/:username?since=<RFC3339> - the polling arm of
// the chat. The since cursor is inclusive; clients de-duplicate by id.
func (h *MessageHandler) Fetch(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, raw)
		}
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid since timestamp",
			})
		}
		since = &parsed
	}

	messages, err := h.messageService.FetchMessages(userID, c.Params("username"), since)
	if err != nil {
		if errors.Is(err, services.ErrRecipientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch messages",
		})
	}

	return c.JSON(messages)
}

// Send handles POST /messages/:username/send with multipart form fields
// content (optional) and file (optional); at least one must be present.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	content := c.FormValue("content", "")

	var upload *services.FileUpload
	var savePath string
	if file, err := c.FormFile("file"); err == nil && file != nil {
		if file.Size > h.cfg.MaxUploadSize {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "File too large",
			})
		}

		fileExt := filepath.Ext(file.Filename)
		filename := fmt.Sprintf("%s_%s%s", userID.String()[:8], uuid.New().String()[:8], fileExt)
		savePath = filepath.Join(h.cfg.UploadDir, "messages", filename)
		if err := c.SaveFile(file, savePath); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to save file",
			})
		}

		upload = &services.FileUpload{
			URL:  "/uploads/messages/" + filename,
			Name: file.Filename,
			MIME: file.Header.Get("Content-Type"),
		}
	}

	message, err := h.messageService.SendMessage(userID, c.Params("username"), content, upload)
	if err != nil {
		if savePath != "" {
			os.Remove(savePath)
		}
		switch {
		case errors.Is(err, services.ErrEmptyMessage):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Message must have content or a file",
			})
		case errors.Is(err, services.ErrRecipientNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkRead handles POST /messages/:id/read.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid message ID",
		})
	}

	if err := h.messageService.MarkRead(messageID, userID); err != nil {
		return h.messageError(c, err, "Failed to mark message read")
	}

	return c.JSON(fiber.Map{"message": "Message marked read"})
}

// Delete handles DELETE /messages/:id - recipient-only hard delete.
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid message ID",
		})
	}

	if err := h.messageService.Delete(messageID, userID); err != nil {
		return h.messageError(c, err, "Failed to delete message")
	}

	return c.JSON(fiber.Map{"message": "Message deleted"})
}

// Conversations handles GET /conversations - one entry per peer with the
// latest message and the unread count.
func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	conversations, err := h.messageService.Conversations(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load conversations",
		})
	}

	return c.JSON(fiber.Map{"conversations": conversations})
}

func (h *MessageHandler) messageError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrMessageNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Message not found",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Not your message",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}
