package handlers

import (
	"errors"

	"github.com/brainlink-app/brainlink-backend/internal/dto"
	"github.com/brainlink-app/brainlink-backend/internal/middleware"
	"github.com/brainlink-app/brainlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ConnectionHandler struct {
	connectionService *services.ConnectionService
}

func NewConnectionHandler(connectionService *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

// SendRequest handles POST /connections/:username - offers a connection to
// the named user.
func (h *ConnectionHandler) SendRequest(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	request, err := h.connectionService.SendRequest(userID, c.Params("username"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrSelfConnection):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "You cannot connect with yourself",
			})
		case errors.Is(err, services.ErrAlreadyConnected):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "You are already connected",
			})
		case errors.Is(err, services.ErrDuplicatePending):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Request already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send connection request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// Accept handles POST /connections/requests/:id/accept.
func (h *ConnectionHandler) Accept(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request ID",
		})
	}

	connection, err := h.connectionService.AcceptRequest(requestID, userID)
	if err != nil {
		return h.resolveError(c, err, "Failed to accept connection request")
	}

	return c.JSON(connection)
}

// Reject handles POST /connections/requests/:id/reject.
func (h *ConnectionHandler) Reject(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request ID",
		})
	}

	if err := h.connectionService.RejectRequest(requestID, userID); err != nil {
		return h.resolveError(c, err, "Failed to reject connection request")
	}

	return c.JSON(fiber.Map{"message": "Connection request declined"})
}

func (h *ConnectionHandler) resolveError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrRequestNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Connection request not found",
		})
	case errors.Is(err, services.ErrAlreadyResolved):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: "Connection request already resolved",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}

// Remove handles DELETE /connections/:username - disconnects from the named
// user regardless of which side created the edge.
func (h *ConnectionHandler) Remove(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.connectionService.RemoveConnection(userID, c.Params("username")); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrConnectionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Connection not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to remove connection",
		})
	}

	return c.JSON(fiber.Map{"message": "Connection removed"})
}

// List handles GET /connections.
func (h *ConnectionHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	connections, err := h.connectionService.ListConnections(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list connections",
		})
	}

	return c.JSON(fiber.Map{"connections": connections})
}

// ListRequests handles GET /connections/requests - incoming pending requests.
func (h *ConnectionHandler) ListRequests(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	requests, err := h.connectionService.ListIncomingRequests(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list connection requests",
		})
	}

	return c.JSON(fiber.Map{"requests": requests})
}
