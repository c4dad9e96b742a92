package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/safepsy/backend/internal/model"
)

// PgSubscriptionRepository is the PostgreSQL implementation of SubscriptionRepository.
type PgSubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubscriptionRepository creates a PgSubscriptionRepository backed by the given pool.
func NewPgSubscriptionRepository(pool *pgxpool.Pool) *PgSubscriptionRepository {
	return &PgSubscriptionRepository{pool: pool}
}

var _ SubscriptionRepository = (*PgSubscriptionRepository)(nil)

// Upsert relies on the unique email constraint: a single conditional insert,
// so concurrent submissions for one address cannot create duplicates.
func (r *PgSubscriptionRepository) Upsert(ctx context.Context, sub *model.EmailSubscription) (bool, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO email_subscriptions
		   (email, full_name, role, ip_hash, consent_given, consent_timestamp, created_at)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id::text`,
		sub.Email, sub.FullName, sub.Role, sub.IPHash, sub.ConsentGiven, sub.ConsentTimestamp, sub.CreatedAt,
	).Scan(&sub.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PgSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*model.EmailSubscription, error) {
	var s model.EmailSubscription
	err := r.pool.QueryRow(ctx,
		`SELECT id::text, email, COALESCE(full_name, ''), COALESCE(role, ''), COALESCE(ip_hash, ''),
		        consent_given, consent_timestamp, created_at
		 FROM email_subscriptions WHERE email = $1`,
		email,
	).Scan(&s.ID, &s.Email, &s.FullName, &s.Role, &s.IPHash, &s.ConsentGiven, &s.ConsentTimestamp, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
