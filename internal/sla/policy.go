// Package sla implements the service-level-agreement policy: the fixed
// due-date offset per priority tier and the read-time derivation of an SLA
// state from a stored due date. Everything here is pure arithmetic over the
// timestamps passed in; nothing is persisted.
package sla

import (
	"fmt"
	"math"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// Status is the derived SLA state of a ticket at a point in time.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusBreach  Status = "breach"
)

// warningWindow is how close to the due date a ticket may get before it is
// reported as at risk.
const warningWindow = 4 * time.Hour

// DueDate returns the resolution deadline for a ticket created at now with
// the given priority. Unrecognized priorities fall back to the Low tier
// offset.
func DueDate(priority domain.TicketPriority, now time.Time) time.Time {
	offset := 24 * time.Hour
	switch priority {
	case domain.TicketPriorityHigh:
		offset = 4 * time.Hour
	case domain.TicketPriorityMedium:
		offset = 12 * time.Hour
	case domain.TicketPriorityLow:
		offset = 24 * time.Hour
	}
	return now.Add(offset)
}

// Derive classifies the remaining time until dueDate. Breach requires the due
// date to have strictly passed; anything inside the warning window but not
// yet due is a warning.
func Derive(dueDate, now time.Time) Status {
	left := dueDate.Sub(now)
	switch {
	case left < 0:
		return StatusBreach
	case left < warningWindow:
		return StatusWarning
	default:
		return StatusOK
	}
}

// StatusText renders the remaining (or overrun) time as a human string.
// Hours are floored toward negative infinity, so half an hour past due reads
// "Breached 1h ago". Presentation only, never persisted.
func StatusText(dueDate, now time.Time) string {
	hoursLeft := int(math.Floor(dueDate.Sub(now).Hours()))
	switch {
	case hoursLeft < 0:
		return fmt.Sprintf("Breached %dh ago", -hoursLeft)
	case hoursLeft < 1:
		return "Due in < 1 hour"
	default:
		return fmt.Sprintf("%dh remaining", hoursLeft)
	}
}
