package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestCommentAdd(t *testing.T) {
	tickets, comments, clock := newTicketFixture(t)
	ticket, err := tickets.Create(context.Background(), TicketCreateInput{
		Title: "t", Description: "d", Category: "c", Priority: domain.TicketPriorityLow,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	clock.Advance(10 * time.Minute)
	comment, err := comments.Add(context.Background(), ticket.ID, "  rebooted the switch  ", "agent")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if comment.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if comment.Comment != "rebooted the switch" {
		t.Errorf("comment = %q, want trimmed text", comment.Comment)
	}
	if !comment.CreatedAt.Equal(clock.now) {
		t.Errorf("created_at = %v, want %v", comment.CreatedAt, clock.now)
	}

	// Adding a comment refreshes the ticket's updated_at.
	got, err := tickets.Get(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.UpdatedAt.Equal(clock.now) {
		t.Errorf("ticket updated_at = %v, want %v", got.UpdatedAt, clock.now)
	}
}

func TestCommentAdd_Validation(t *testing.T) {
	tickets, comments, _ := newTicketFixture(t)
	ticket, _ := tickets.Create(context.Background(), TicketCreateInput{
		Title: "t", Description: "d", Category: "c", Priority: domain.TicketPriorityLow,
	})

	_, err := comments.Add(context.Background(), ticket.ID, "", "agent")
	assertCode(t, err, "VALIDATION_FAILED")

	_, err = comments.Add(context.Background(), ticket.ID, "text", "   ")
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestCommentAdd_UnknownTicket(t *testing.T) {
	_, comments, _ := newTicketFixture(t)

	_, err := comments.Add(context.Background(), 42, "orphan", "agent")
	assertCode(t, err, "NOT_FOUND")

	// The rejected comment must not have been persisted.
	thread, err := comments.ListForTicket(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListForTicket: %v", err)
	}
	if len(thread) != 0 {
		t.Fatalf("comments = %d, want 0", len(thread))
	}
}

func TestCommentListForTicket_UnknownTicketIsEmpty(t *testing.T) {
	_, comments, _ := newTicketFixture(t)
	thread, err := comments.ListForTicket(context.Background(), 99)
	if err != nil {
		t.Fatalf("ListForTicket: %v", err)
	}
	if len(thread) != 0 {
		t.Fatalf("comments = %d, want 0", len(thread))
	}
}
