package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// StatsHandler serves the dashboard counts and the debug table dump.
type StatsHandler struct {
	service *service.StatsService
	clock   service.Clock
}

// NewStatsHandler constructs the handler. A nil clock defaults to time.Now.
func NewStatsHandler(statsService *service.StatsService, clock service.Clock) *StatsHandler {
	if clock == nil {
		clock = time.Now
	}
	return &StatsHandler{service: statsService, clock: clock}
}

// Get GET /api/stats.
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	counts, err := h.service.Compute(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.StatsResponse{
		Total:      counts.Total,
		Open:       counts.Open,
		InProgress: counts.InProgress,
		Resolved:   counts.Resolved,
		Closed:     counts.Closed,
	})
}

// Dump GET /api/debug/tables.
func (h *StatsHandler) Dump(c *fiber.Ctx) error {
	dump, err := h.service.Dump(c.UserContext())
	if err != nil {
		return err
	}
	now := h.clock().UTC()
	tickets := make([]dto.TicketResponse, 0, len(dump.Tickets))
	for i := range dump.Tickets {
		tickets = append(tickets, dto.NewTicketResponse(&dump.Tickets[i], now))
	}
	comments := make([]dto.CommentResponse, 0, len(dump.Comments))
	for i := range dump.Comments {
		comments = append(comments, dto.NewCommentResponse(&dump.Comments[i]))
	}
	return c.JSON(dto.TableDumpResponse{
		Tickets:       tickets,
		Comments:      comments,
		TotalTickets:  dump.TotalTickets,
		TotalComments: dump.TotalComments,
	})
}
