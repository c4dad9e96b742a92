package repository

import (
	"context"

	"github.com/safepsy/backend/internal/model"
)

// DB checks that the underlying store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository persists contact messages. Every call inserts a new row;
// duplicate emails are allowed.
type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
}

// SubscriptionRepository persists waitlist subscriptions keyed by email.
type SubscriptionRepository interface {
	// Upsert inserts sub unless a row for sub.Email already exists, in which
	// case the stored row is left unmodified. created reports whether a row
	// was written; sub.ID is populated only then.
	Upsert(ctx context.Context, sub *model.EmailSubscription) (created bool, err error)

	// FindByEmail returns ErrNotFound when no subscription exists.
	FindByEmail(ctx context.Context, email string) (*model.EmailSubscription, error)
}
