package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

type commentRepository struct {
	q querier
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (ticket_id, comment, user_type, created_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	return r.q.QueryRow(ctx, query,
		comment.TicketID,
		comment.Comment,
		comment.UserType,
		comment.CreatedAt,
	).Scan(&comment.ID)
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	const query = `
        SELECT id, ticket_id, comment, user_type, created_at
        FROM comments WHERE ticket_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func (r *commentRepository) DeleteByTicket(ctx context.Context, ticketID int64) error {
	// Zero rows affected is fine: deleting comments of a ticket that has
	// none (or never existed) is a no-op.
	_, err := r.q.Exec(ctx, `DELETE FROM comments WHERE ticket_id=$1`, ticketID)
	return err
}

func scanComments(rows pgx.Rows) ([]domain.Comment, error) {
	result := []domain.Comment{}
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.Comment,
			&comment.UserType,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
