package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/safepsy/backend/internal/iphash"
	"github.com/safepsy/backend/internal/model"
	"github.com/safepsy/backend/internal/repository"
	"github.com/safepsy/backend/internal/validation"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo      repository.ContactRepository
	validator *validation.Validator
	hasher    *iphash.Hasher
	now       func() time.Time
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository, v *validation.Validator, hasher *iphash.Hasher) ContactService {
	return &contactServiceImpl{
		repo:      repo,
		validator: v,
		hasher:    hasher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *contactServiceImpl) Submit(ctx context.Context, in validation.ContactInput, clientIP string) error {
	in, err := s.validator.Contact(in)
	if err != nil {
		return err
	}

	msg := &model.ContactMessage{
		Email:     in.Email,
		FullName:  in.FullName,
		Subject:   in.Subject,
		Message:   in.Message,
		IPHash:    s.hasher.Hash(clientIP),
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "contact message create failed", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	slog.InfoContext(ctx, "contact message stored", "id", msg.ID, "ip_hashed", msg.IPHash != "")
	return nil
}
