package service

import (
	"context"

	"github.com/safepsy/backend/internal/validation"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates in and stores it as a new contact message. It returns
	// a *validation.Error for bad input and an error wrapping ErrPersistence
	// when the store fails. clientIP is only ever hashed, never stored.
	Submit(ctx context.Context, in validation.ContactInput, clientIP string) error
}
