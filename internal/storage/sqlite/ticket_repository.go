package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/storage"
)

type ticketRepository struct {
	db *gorm.DB
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	rec := recordFromTicket(ticket)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	ticket.ID = rec.ID
	return nil
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	var recs []ticketRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	result := make([]domain.Ticket, 0, len(recs))
	for i := range recs {
		result = append(result, recs[i].toDomain())
	}
	return result, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var rec ticketRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	ticket := rec.toDomain()
	return &ticket, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus, now time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&ticketRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&ticketRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *ticketRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ticketRecord{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *ticketRepository) Touch(ctx context.Context, id int64, now time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&ticketRecord{}).
		Where("id = ?", id).
		Update("updated_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
