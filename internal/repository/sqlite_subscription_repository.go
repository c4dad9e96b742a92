package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/safepsy/backend/internal/model"
)

// SQLiteSubscriptionRepository is the SQLite implementation of SubscriptionRepository.
type SQLiteSubscriptionRepository struct {
	db *sql.DB
}

func NewSQLiteSubscriptionRepository(db *sql.DB) *SQLiteSubscriptionRepository {
	return &SQLiteSubscriptionRepository{db: db}
}

var _ SubscriptionRepository = (*SQLiteSubscriptionRepository)(nil)

func (r *SQLiteSubscriptionRepository) Upsert(ctx context.Context, sub *model.EmailSubscription) (bool, error) {
	id := uuid.NewString()
	var consentAt sql.NullTime
	if sub.ConsentTimestamp != nil {
		consentAt = sql.NullTime{Time: *sub.ConsentTimestamp, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO email_subscriptions
		   (id, email, full_name, role, ip_hash, consent_given, consent_timestamp, created_at)
		 VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), ?, ?, ?)
		 ON CONFLICT (email) DO NOTHING`,
		id, sub.Email, sub.FullName, sub.Role, sub.IPHash, sub.ConsentGiven, consentAt, sub.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	sub.ID = id
	return true, nil
}

func (r *SQLiteSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*model.EmailSubscription, error) {
	var (
		s         model.EmailSubscription
		consentAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, COALESCE(full_name, ''), COALESCE(role, ''), COALESCE(ip_hash, ''),
		        consent_given, consent_timestamp, created_at
		 FROM email_subscriptions WHERE email = ?`,
		email,
	).Scan(&s.ID, &s.Email, &s.FullName, &s.Role, &s.IPHash, &s.ConsentGiven, &consentAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if consentAt.Valid {
		t := consentAt.Time
		s.ConsentTimestamp = &t
	}
	return &s, nil
}
