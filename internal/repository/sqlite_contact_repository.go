package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/safepsy/backend/internal/model"
)

// SQLiteContactRepository is the SQLite implementation of ContactRepository.
type SQLiteContactRepository struct {
	db *sql.DB
}

func NewSQLiteContactRepository(db *sql.DB) *SQLiteContactRepository {
	return &SQLiteContactRepository{db: db}
}

var _ ContactRepository = (*SQLiteContactRepository)(nil)

func (r *SQLiteContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, email, full_name, subject, message, ip_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, NULLIF(?, ''), ?)`,
		id, msg.Email, msg.FullName, msg.Subject, msg.Message, msg.IPHash, msg.CreatedAt,
	)
	if err != nil {
		return err
	}
	msg.ID = id
	return nil
}
