package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

type statsRepository struct {
	db *gorm.DB
}

// CountByStatus derives the five dashboard counts from a single grouped scan
// so they reflect one snapshot of the table.
func (r *statsRepository) CountByStatus(ctx context.Context) (*domain.StatusCounts, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&ticketRecord{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := &domain.StatusCounts{}
	for _, row := range rows {
		counts.Total += row.N
		switch domain.TicketStatus(row.Status) {
		case domain.TicketStatusOpen:
			counts.Open = row.N
		case domain.TicketStatusInProgress:
			counts.InProgress = row.N
		case domain.TicketStatusResolved:
			counts.Resolved = row.N
		case domain.TicketStatusClosed:
			counts.Closed = row.N
		}
	}
	return counts, nil
}

func (r *statsRepository) DumpTickets(ctx context.Context) ([]domain.Ticket, error) {
	return (&ticketRepository{db: r.db}).List(ctx)
}

func (r *statsRepository) DumpComments(ctx context.Context) ([]domain.Comment, error) {
	var recs []commentRecord
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	result := make([]domain.Comment, 0, len(recs))
	for i := range recs {
		result = append(result, recs[i].toDomain())
	}
	return result, nil
}
