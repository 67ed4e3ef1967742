// Package storage defines the persistence contract the services are written
// against. Two adapters implement it: a Postgres adapter on pgx and an
// embedded SQLite adapter on GORM. Composite operations that must be atomic
// (ticket create plus system comment, status update plus system comment,
// cascade delete, comment insert plus ticket touch) run through WithinTx with
// first-failure-aborts semantics.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ErrNotFound is returned when a referenced record does not exist. Adapters
// translate their driver-level sentinels (pgx.ErrNoRows, gorm
// ErrRecordNotFound, zero rows affected) to this error.
var ErrNotFound = errors.New("record not found")

// TicketRepository owns ticket rows.
type TicketRepository interface {
	// Create inserts the ticket and fills in its assigned id.
	Create(ctx context.Context, ticket *domain.Ticket) error
	// List returns all tickets, most recently created first.
	List(ctx context.Context) ([]domain.Ticket, error)
	// GetByID returns the ticket or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	// UpdateStatus sets the status and refreshes updated_at, returning
	// ErrNotFound when no row matches.
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus, now time.Time) error
	// Delete removes the ticket row, returning ErrNotFound when no row
	// matches. Comments are deleted separately by the caller's transaction.
	Delete(ctx context.Context, id int64) error
	// Exists reports whether a ticket with the id is present.
	Exists(ctx context.Context, id int64) (bool, error)
	// Touch refreshes updated_at without any other change.
	Touch(ctx context.Context, id int64, now time.Time) error
}

// CommentRepository owns comment rows scoped to a ticket.
type CommentRepository interface {
	// Create inserts the comment and fills in its assigned id.
	Create(ctx context.Context, comment *domain.Comment) error
	// ListByTicket returns the ticket's comments in chronological order.
	// An unknown ticket id yields an empty slice, not an error.
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error)
	// DeleteByTicket removes all comments for the ticket. Deleting zero
	// rows is not an error.
	DeleteByTicket(ctx context.Context, ticketID int64) error
}

// StatsRepository serves read-only aggregate views.
type StatsRepository interface {
	CountByStatus(ctx context.Context) (*domain.StatusCounts, error)
	DumpTickets(ctx context.Context) ([]domain.Ticket, error)
	DumpComments(ctx context.Context) ([]domain.Comment, error)
}

// Store aggregates the repositories over one backend connection and provides
// transaction scoping across them.
type Store interface {
	Tickets() TicketRepository
	Comments() CommentRepository
	Stats() StatsRepository

	// WithinTx runs fn against a transaction-bound Store. The transaction
	// commits when fn returns nil and rolls back on the first error.
	WithinTx(ctx context.Context, fn func(Store) error) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the underlying connection handle.
	Close() error
}
