package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/errorutil"
)

// BookingsHandler validates booking ownership.
type BookingsHandler struct {
	service *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{service: bookingService}
}

// ValidateBooking GET /booking/:bookingId/validate.
func (h *BookingsHandler) ValidateBooking(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId query parameter required", nil)
	}

	valid, err := h.service.ValidateBooking(c.UserContext(), userID, c.Params("bookingId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"valid": valid}})
}
