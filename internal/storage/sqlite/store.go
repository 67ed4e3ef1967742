// Package sqlite implements the storage contract on an embedded SQLite
// database through GORM, using the pure-Go glebarez driver. It is the default
// backend and the one the test suite runs against (in memory).
package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/spec-kit/helpdesk-service/internal/storage"
)

// Store wires the repositories over a shared GORM handle, which may be
// transaction-bound.
type Store struct {
	db *gorm.DB
}

// NewStore builds a Store on the given handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Tickets() storage.TicketRepository   { return &ticketRepository{db: s.db} }
func (s *Store) Comments() storage.CommentRepository { return &commentRepository{db: s.db} }
func (s *Store) Stats() storage.StatsRepository      { return &statsRepository{db: s.db} }

// WithinTx runs fn against a transaction-bound Store. GORM turns nested calls
// into savepoints, so composite operations compose safely.
func (s *Store) WithinTx(ctx context.Context, fn func(storage.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Ping verifies the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
