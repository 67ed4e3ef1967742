package dto

// StatsResponse mirrors the dashboard counts payload.
type StatsResponse struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

// TableDumpResponse is the debug view of both tables.
type TableDumpResponse struct {
	Tickets       []TicketResponse  `json:"tickets"`
	Comments      []CommentResponse `json:"comments"`
	TotalTickets  int               `json:"total_tickets"`
	TotalComments int               `json:"total_comments"`
}
