package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/safepsy/backend/internal/model"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Create inserts a new contact_messages row and populates msg.ID from the
// RETURNING clause. An empty IPHash is stored as NULL.
func (r *PgContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (email, full_name, subject, message, ip_hash, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		 RETURNING id::text`,
		msg.Email, msg.FullName, msg.Subject, msg.Message, msg.IPHash, msg.CreatedAt,
	).Scan(&msg.ID)
}
