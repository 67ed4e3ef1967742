package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

type commentRepository struct {
	db *gorm.DB
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	rec := recordFromComment(comment)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	comment.ID = rec.ID
	return nil
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	var recs []commentRecord
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
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

func (r *commentRepository) DeleteByTicket(ctx context.Context, ticketID int64) error {
	// No-op when the ticket has no comments.
	return r.db.WithContext(ctx).Delete(&commentRecord{}, "ticket_id = ?", ticketID).Error
}
