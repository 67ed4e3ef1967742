package postgres

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

type statsRepository struct {
	q querier
}

// CountByStatus derives the five dashboard counts from a single grouped scan
// so they reflect one snapshot of the table.
func (r *statsRepository) CountByStatus(ctx context.Context) (*domain.StatusCounts, error) {
	const query = `SELECT status, COUNT(*) FROM tickets GROUP BY status`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := &domain.StatusCounts{}
	for rows.Next() {
		var status domain.TicketStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts.Total += n
		switch status {
		case domain.TicketStatusOpen:
			counts.Open = n
		case domain.TicketStatusInProgress:
			counts.InProgress = n
		case domain.TicketStatusResolved:
			counts.Resolved = n
		case domain.TicketStatusClosed:
			counts.Closed = n
		}
	}
	return counts, rows.Err()
}

func (r *statsRepository) DumpTickets(ctx context.Context) ([]domain.Ticket, error) {
	return (&ticketRepository{q: r.q}).List(ctx)
}

func (r *statsRepository) DumpComments(ctx context.Context) ([]domain.Comment, error) {
	const query = `
        SELECT id, ticket_id, comment, user_type, created_at
        FROM comments ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}
