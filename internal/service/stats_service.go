package service

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/storage"
	"github.com/spec-kit/helpdesk-service/pkg/util"
)

// CountsCache caches computed status counts for a short period. These are
// dashboard figures, so slightly stale values are acceptable. Implementations
// must treat every failure as a miss.
type CountsCache interface {
	Get(ctx context.Context) (*domain.StatusCounts, bool)
	Set(ctx context.Context, counts *domain.StatusCounts)
}

// TableDump is the debug/introspection view of both tables.
type TableDump struct {
	Tickets       []domain.Ticket
	Comments      []domain.Comment
	TotalTickets  int
	TotalComments int
}

// StatsService derives aggregate counts from the ticket store on demand.
type StatsService struct {
	store storage.Store
	cache CountsCache
}

// NewStatsService constructs the service. cache may be nil, in which case
// every call recomputes from storage.
func NewStatsService(store storage.Store, cache CountsCache) *StatsService {
	return &StatsService{store: store, cache: cache}
}

// Compute returns the total ticket count plus one count per status.
func (s *StatsService) Compute(ctx context.Context) (*domain.StatusCounts, error) {
	if s.cache != nil {
		if counts, ok := s.cache.Get(ctx); ok {
			return counts, nil
		}
	}
	counts, err := s.store.Stats().CountByStatus(ctx)
	if err != nil {
		return nil, util.NewStorageUnavailable(err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, counts)
	}
	return counts, nil
}

// Dump returns the full ticket and comment sets with their counts.
func (s *StatsService) Dump(ctx context.Context) (*TableDump, error) {
	tickets, err := s.store.Stats().DumpTickets(ctx)
	if err != nil {
		return nil, util.NewStorageUnavailable(err)
	}
	comments, err := s.store.Stats().DumpComments(ctx)
	if err != nil {
		return nil, util.NewStorageUnavailable(err)
	}
	return &TableDump{
		Tickets:       tickets,
		Comments:      comments,
		TotalTickets:  len(tickets),
		TotalComments: len(comments),
	}, nil
}
