package service

import (
	"context"

	"github.com/safepsy/backend/internal/validation"
)

// SubscriptionService defines the business logic for waitlist signups.
type SubscriptionService interface {
	// Subscribe validates in and stores a subscription unless one already
	// exists for the email, in which case nothing is changed and nil is
	// returned. Errors follow ContactService.Submit.
	Subscribe(ctx context.Context, in validation.SubscriptionInput, clientIP string) error
}
