package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Comment  string `json:"comment"`
	UserType string `json:"user_type"`
}

// CommentResponse is the read view of a comment.
type CommentResponse struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	Comment   string    `json:"comment"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentResponse is returned by the add-comment endpoint.
type CreateCommentResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// NewCommentResponse builds the read view.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		Comment:   comment.Comment,
		UserType:  comment.UserType,
		CreatedAt: comment.CreatedAt,
	}
}
