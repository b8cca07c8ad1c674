package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/errorutil"
)

// ResponsesHandler manages the ticket response thread and the ticket
// status transition.
type ResponsesHandler struct {
	service *service.ResponseService
}

// NewResponsesHandler constructs handler.
func NewResponsesHandler(responseService *service.ResponseService) *ResponsesHandler {
	return &ResponsesHandler{service: responseService}
}

// CreateReply POST /ticket-response/:ticketId.
func (h *ResponsesHandler) CreateReply(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId query parameter required", nil)
	}
	var req dto.CreateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	summary, err := h.service.CreateReply(c.UserContext(), c.Params("ticketId"), userID, c.Query("role"), req.ResponseText)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": responseSummary(summary)})
}

// UpdateReply PUT /ticket-response/:ticketId/response/:responseId.
func (h *ResponsesHandler) UpdateReply(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId query parameter required", nil)
	}
	var req dto.UpdateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	summary, err := h.service.UpdateReply(c.UserContext(), userID, c.Params("ticketId"), c.Params("responseId"), req.ResponseText)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": responseSummary(summary)})
}

// DeleteReply DELETE /ticket-response/:ticketId/response/:responseId.
func (h *ResponsesHandler) DeleteReply(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId query parameter required", nil)
	}

	if err := h.service.DeleteReply(c.UserContext(), userID, c.Params("ticketId"), c.Params("responseId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// UpdateStatus PUT /ticket-response/:ticketId/update-status.
func (h *ResponsesHandler) UpdateStatus(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId query parameter required", nil)
	}

	ticketID := c.Params("ticketId")
	resolved, err := h.service.Resolve(c.UserContext(), userID, ticketID)
	if err != nil {
		return err
	}
	if !resolved {
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"resolved": true}})
}
