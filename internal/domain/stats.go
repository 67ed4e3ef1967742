package domain

// StatusCounts aggregates the ticket table by workflow state. The JSON tags
// match the dashboard payload, which uses camelCase for inProgress only.
type StatusCounts struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}
