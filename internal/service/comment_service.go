package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/storage"
	"github.com/spec-kit/helpdesk-service/pkg/util"
)

// CommentService owns the comment thread of a ticket. Adding a comment also
// refreshes the owning ticket's updated_at, in the same transaction.
type CommentService struct {
	store storage.Store
	clock Clock
}

// NewCommentService constructs the service. A nil clock defaults to time.Now.
func NewCommentService(store storage.Store, clock Clock) *CommentService {
	if clock == nil {
		clock = time.Now
	}
	return &CommentService{store: store, clock: clock}
}

// ListForTicket returns the ticket's comments in chronological order. An
// unknown ticket id yields an empty list, not an error.
func (s *CommentService) ListForTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	comments, err := s.store.Comments().ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, util.NewStorageUnavailable(err)
	}
	return comments, nil
}

// Add appends a comment to the ticket and touches the ticket's updated_at.
// The ticket must exist; the check runs inside the insert transaction so
// behavior does not depend on the backend's foreign-key enforcement.
func (s *CommentService) Add(ctx context.Context, ticketID int64, text, userType string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	userType = strings.TrimSpace(userType)
	if text == "" || userType == "" {
		return nil, util.NewValidationError("comment and user_type are required", nil)
	}

	now := s.clock().UTC()
	comment := &domain.Comment{
		TicketID:  ticketID,
		Comment:   text,
		UserType:  userType,
		CreatedAt: now,
	}

	err := s.store.WithinTx(ctx, func(tx storage.Store) error {
		exists, err := tx.Tickets().Exists(ctx, ticketID)
		if err != nil {
			return err
		}
		if !exists {
			return storage.ErrNotFound
		}
		if err := tx.Comments().Create(ctx, comment); err != nil {
			return err
		}
		return tx.Tickets().Touch(ctx, ticketID, now)
	})
	if err != nil {
		return nil, storageErr(err, "ticket")
	}
	return comment, nil
}
