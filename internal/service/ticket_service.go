package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/sla"
	"github.com/spec-kit/helpdesk-service/internal/storage"
	"github.com/spec-kit/helpdesk-service/pkg/util"
)

const commentTicketCreated = "Ticket created"

// TicketService coordinates ticket workflows: creation with SLA computation,
// reads, the status transition, and cascade deletion. Every mutation and its
// system comment run in one storage transaction.
type TicketService struct {
	store storage.Store
	clock Clock
}

// TicketCreateInput describes the ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    domain.TicketPriority
}

// NewTicketService constructs the service. A nil clock defaults to time.Now.
func NewTicketService(store storage.Store, clock Clock) *TicketService {
	if clock == nil {
		clock = time.Now
	}
	return &TicketService{store: store, clock: clock}
}

// Create validates the input, assigns the SLA due date from the priority at
// the creation instant, persists the ticket with status Open and appends the
// "Ticket created" system comment atomically.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)
	if input.Title == "" || input.Description == "" || input.Category == "" || input.Priority == "" {
		return nil, util.NewValidationError("title, description, category and priority are required", nil)
	}

	now := s.clock().UTC()
	ticket := &domain.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      domain.TicketStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
		SLADueDate:  sla.DueDate(input.Priority, now),
	}

	err := s.store.WithinTx(ctx, func(tx storage.Store) error {
		if err := tx.Tickets().Create(ctx, ticket); err != nil {
			return err
		}
		return tx.Comments().Create(ctx, &domain.Comment{
			TicketID:  ticket.ID,
			Comment:   commentTicketCreated,
			UserType:  domain.UserTypeSystem,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, util.NewStorageUnavailable(err)
	}
	return ticket, nil
}

// List returns all tickets, most recently created first.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.store.Tickets().List(ctx)
	if err != nil {
		return nil, util.NewStorageUnavailable(err)
	}
	return tickets, nil
}

// Get returns the ticket with the given id.
func (s *TicketService) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.store.Tickets().GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err, "ticket")
	}
	return ticket, nil
}

// UpdateStatus moves the ticket to newStatus, refreshes updated_at and logs
// the transition as a system comment. The status must be one of the four
// enumerated workflow states.
func (s *TicketService) UpdateStatus(ctx context.Context, id int64, newStatus domain.TicketStatus) error {
	newStatus = domain.TicketStatus(strings.TrimSpace(string(newStatus)))
	if newStatus == "" {
		return util.NewValidationError("status is required", nil)
	}
	if !newStatus.Valid() {
		return util.NewValidationError("invalid status", map[string]any{"status": string(newStatus)})
	}

	now := s.clock().UTC()
	err := s.store.WithinTx(ctx, func(tx storage.Store) error {
		if err := tx.Tickets().UpdateStatus(ctx, id, newStatus, now); err != nil {
			return err
		}
		return tx.Comments().Create(ctx, &domain.Comment{
			TicketID:  id,
			Comment:   fmt.Sprintf("Status changed to: %s", newStatus),
			UserType:  domain.UserTypeSystem,
			CreatedAt: now,
		})
	})
	if err != nil {
		return storageErr(err, "ticket")
	}
	return nil
}

// Delete removes the ticket and all of its comments. The comment delete is
// attempted first and is a no-op when the ticket has none.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTx(ctx, func(tx storage.Store) error {
		if err := tx.Comments().DeleteByTicket(ctx, id); err != nil {
			return err
		}
		return tx.Tickets().Delete(ctx, id)
	})
	if err != nil {
		return storageErr(err, "ticket")
	}
	return nil
}
