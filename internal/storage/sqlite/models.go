package sqlite

import (
	"time"

	"gorm.io/gorm"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ticketRecord is the GORM mapping for the tickets table. Timestamp
// bookkeeping is disabled so the values always come from the injected clock,
// never from GORM's own tracking.
type ticketRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Category    string    `gorm:"not null"`
	Priority    string    `gorm:"not null"`
	Status      string    `gorm:"not null;default:Open"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
	SLADueDate  time.Time `gorm:"column:sla_due_date;not null"`
}

func (ticketRecord) TableName() string { return "tickets" }

type commentRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	TicketID  int64     `gorm:"not null;index"`
	Comment   string    `gorm:"not null"`
	UserType  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (commentRecord) TableName() string { return "comments" }

// AutoMigrate creates or updates the schema for the embedded backend.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&ticketRecord{}, &commentRecord{})
}

func recordFromTicket(t *domain.Ticket) *ticketRecord {
	return &ticketRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		SLADueDate:  t.SLADueDate,
	}
}

func (r *ticketRecord) toDomain() domain.Ticket {
	return domain.Ticket{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Priority:    domain.TicketPriority(r.Priority),
		Status:      domain.TicketStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		SLADueDate:  r.SLADueDate,
	}
}

func recordFromComment(c *domain.Comment) *commentRecord {
	return &commentRecord{
		ID:        c.ID,
		TicketID:  c.TicketID,
		Comment:   c.Comment,
		UserType:  c.UserType,
		CreatedAt: c.CreatedAt,
	}
}

func (r *commentRecord) toDomain() domain.Comment {
	return domain.Comment{
		ID:        r.ID,
		TicketID:  r.TicketID,
		Comment:   r.Comment,
		UserType:  r.UserType,
		CreatedAt: r.CreatedAt,
	}
}
