package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/sla"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketResponse is the read view of a ticket. The two sla_status fields are
// derived from the server clock at read time and are never stored.
type TicketResponse struct {
	ID            int64                 `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Category      string                `json:"category"`
	Priority      domain.TicketPriority `json:"priority"`
	Status        domain.TicketStatus   `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	SLADueDate    time.Time             `json:"sla_due_date"`
	SLAStatus     sla.Status            `json:"sla_status"`
	SLAStatusText string                `json:"sla_status_text"`
}

// CreateTicketResponse is returned by the create endpoint.
type CreateTicketResponse struct {
	ID         int64     `json:"id"`
	Message    string    `json:"message"`
	SLADueDate time.Time `json:"sla_due_date"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewTicketResponse builds the read view, deriving the SLA fields at now.
func NewTicketResponse(ticket *domain.Ticket, now time.Time) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID,
		Title:         ticket.Title,
		Description:   ticket.Description,
		Category:      ticket.Category,
		Priority:      ticket.Priority,
		Status:        ticket.Status,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
		SLADueDate:    ticket.SLADueDate,
		SLAStatus:     sla.Derive(ticket.SLADueDate, now),
		SLAStatusText: sla.StatusText(ticket.SLADueDate, now),
	}
}
