// Package postgres implements the storage contract on a pgx connection pool.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/storage"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so the repositories
// work identically inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store wires the repositories over a shared pool or transaction.
type Store struct {
	pool *pgxpool.Pool
	q    querier
}

// NewStore builds a Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

func (s *Store) Tickets() storage.TicketRepository   { return &ticketRepository{q: s.q} }
func (s *Store) Comments() storage.CommentRepository { return &commentRepository{q: s.q} }
func (s *Store) Stats() storage.StatsRepository      { return &statsRepository{q: s.q} }

// WithinTx begins a transaction and hands fn a transaction-bound Store. A
// Store that is already transaction-bound runs fn directly, so nested calls
// share the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(storage.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(&Store{q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Ping verifies pool connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
