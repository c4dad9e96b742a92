package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a PostgreSQL connection pool and verifies connectivity.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Store bundles the lead repositories with the lifecycle of their backing
// connection.
type Store struct {
	Contacts      ContactRepository
	Subscriptions SubscriptionRepository

	db    DB
	close func() error
}

// NewPgStore returns a Store backed by a PostgreSQL pool. Close closes the pool.
func NewPgStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Contacts:      NewPgContactRepository(pool),
		Subscriptions: NewPgSubscriptionRepository(pool),
		db:            pool,
		close: func() error {
			pool.Close()
			return nil
		},
	}
}

// Ping checks the backing connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close releases the backing connection.
func (s *Store) Close() error {
	return s.close()
}
