package domain

import "time"

// UserTypeSystem marks comments written by the service itself, such as the
// creation note and status transition entries.
const UserTypeSystem = "system"

// Comment is a single entry in a ticket's thread. Comments are append-only;
// they are removed only when the owning ticket is deleted.
type Comment struct {
	ID        int64
	TicketID  int64
	Comment   string
	UserType  string
	CreatedAt time.Time
}
