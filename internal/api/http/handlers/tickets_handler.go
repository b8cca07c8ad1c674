package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/errorutil"
)

// TicketsHandler manages ticket creation, lookup and listing endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /ticket.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id required", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), req.UserID, req.Category, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// SearchTicket GET /ticket/search/:userId/:ticketId.
func (h *TicketsHandler) SearchTicket(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 0)
	size := parseInt(c.Query("size"), 10)

	detail, err := h.service.SearchTicket(c.UserContext(), c.Params("userId"), c.Params("ticketId"), page, size)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(detail)})
}

// ListTickets GET /ticket/search.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId query parameter required", nil)
	}
	page := parseInt(c.Query("page"), 0)
	size := parseInt(c.Query("size"), 10)

	result, err := h.service.ListTickets(c.UserContext(), userID,
		c.Query("role"), c.Query("status", "ALL"), c.Query("category", "ALL"), page, size)
	if err != nil {
		return err
	}

	items := make([]dto.TicketSummary, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ticketSummary(&result.Items[i]))
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{
		Items:      items,
		Page:       result.Page,
		Size:       result.Size,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	}})
}

// CountTickets GET /ticket/count/search.
func (h *TicketsHandler) CountTickets(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId query parameter required", nil)
	}

	counts, err := h.service.CountActiveResolved(c.UserContext(), userID,
		c.Query("role"), c.Query("category", "ALL"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

// TicketResponses GET /ticket/:ticketId/response.
func (h *TicketsHandler) TicketResponses(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId query parameter required", nil)
	}

	responses, err := h.service.TicketResponses(c.UserContext(), userID, c.Params("ticketId"))
	if err != nil {
		return err
	}
	items := make([]dto.ResponseSummary, 0, len(responses))
	for i := range responses {
		items = append(items, responseSummary(&responses[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}

func ticketSummary(ticket *service.TicketSummary) dto.TicketSummary {
	return dto.TicketSummary{
		ID:            ticket.ID,
		Description:   ticket.Description,
		Status:        ticket.Status,
		Category:      ticket.Category,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
		AgentEmail:    ticket.AgentEmail,
		CustomerEmail: ticket.CustomerEmail,
	}
}

func ticketDetail(detail *service.TicketDetail) dto.TicketDetailResponse {
	responses := make([]dto.ResponseSummary, 0, len(detail.Responses))
	for i := range detail.Responses {
		responses = append(responses, responseSummary(&detail.Responses[i]))
	}
	return dto.TicketDetailResponse{
		TicketSummary:  ticketSummary(&detail.TicketSummary),
		Page:           detail.Page,
		Size:           detail.Size,
		TotalResponses: detail.TotalResponses,
		Responses:      responses,
	}
}

func responseSummary(summary *service.ResponseSummary) dto.ResponseSummary {
	return dto.ResponseSummary{
		ID:               summary.ID,
		TicketID:         summary.TicketID,
		ResponseText:     summary.Text,
		Role:             summary.Role,
		AuthorEmail:      summary.AuthorEmail,
		CounterpartEmail: summary.CounterpartEmail,
		CreatedAt:        summary.CreatedAt,
	}
}
