package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/support-desk/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Users     *handlers.UsersHandler
	Tickets   *handlers.TicketsHandler
	Responses *handlers.ResponsesHandler
	Bookings  *handlers.BookingsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/users/signup", cfg.Users.Signup)
	app.Post("/users/login", cfg.Users.Login)

	app.Post("/ticket", cfg.Tickets.CreateTicket)
	app.Get("/ticket/search", cfg.Tickets.ListTickets)
	app.Get("/ticket/count/search", cfg.Tickets.CountTickets)
	app.Get("/ticket/search/:userId/:ticketId", cfg.Tickets.SearchTicket)
	app.Get("/ticket/:ticketId/response", cfg.Tickets.TicketResponses)

	responseGroup := app.Group("/ticket-response")
	responseGroup.Post("/:ticketId", cfg.Responses.CreateReply)
	responseGroup.Put("/:ticketId/update-status", cfg.Responses.UpdateStatus)
	responseGroup.Put("/:ticketId/response/:responseId", cfg.Responses.UpdateReply)
	responseGroup.Delete("/:ticketId/response/:responseId", cfg.Responses.DeleteReply)

	app.Get("/booking/:bookingId/validate", cfg.Bookings.ValidateBooking)
}
