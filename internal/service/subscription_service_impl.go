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

type subscriptionServiceImpl struct {
	repo      repository.SubscriptionRepository
	validator *validation.Validator
	hasher    *iphash.Hasher
	now       func() time.Time
}

// NewSubscriptionService creates a SubscriptionService backed by the given repository.
func NewSubscriptionService(repo repository.SubscriptionRepository, v *validation.Validator, hasher *iphash.Hasher) SubscriptionService {
	return &subscriptionServiceImpl{
		repo:      repo,
		validator: v,
		hasher:    hasher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *subscriptionServiceImpl) Subscribe(ctx context.Context, in validation.SubscriptionInput, clientIP string) error {
	in, err := s.validator.Subscription(in)
	if err != nil {
		return err
	}

	now := s.now()
	sub := &model.EmailSubscription{
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         in.Role,
		IPHash:       s.hasher.Hash(clientIP),
		ConsentGiven: in.ConsentGiven,
		CreatedAt:    now,
	}
	if sub.ConsentGiven {
		sub.ConsentTimestamp = &now
	}

	created, err := s.repo.Upsert(ctx, sub)
	if err != nil {
		slog.ErrorContext(ctx, "subscription upsert failed", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if created {
		slog.InfoContext(ctx, "subscription stored", "id", sub.ID, "role", sub.Role, "consent", sub.ConsentGiven)
	} else {
		slog.InfoContext(ctx, "subscription already exists; left unchanged")
	}
	return nil
}
