package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/safepsy/backend/internal/iphash"
	"github.com/safepsy/backend/internal/model"
	"github.com/safepsy/backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSalt = strings.Repeat("s", iphash.MinSaltLength)

// ---------------------------------------------------------------------------
// mockContactRepository: in-memory stub for testing
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	createFunc func(ctx context.Context, msg *model.ContactMessage) error
}

func (m *mockContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, msg)
	}
	return nil
}

func validContactInput() validation.ContactInput {
	return validation.ContactInput{
		Email:    "a@b.com",
		FullName: "Jo",
		Subject:  "Hello there",
		Message:  "This is a test message.",
	}
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestContactService_Submit_StoresNormalizedMessage(t *testing.T) {
	var saved *model.ContactMessage
	repo := &mockContactRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			saved = msg
			msg.ID = "msg-1"
			return nil
		},
	}
	svc := NewContactService(repo, validation.New(), iphash.New(false, ""))

	in := validContactInput()
	in.Email = "  A@B.COM "
	before := time.Now().UTC()
	require.NoError(t, svc.Submit(context.Background(), in, "1.2.3.4"))
	after := time.Now().UTC()

	require.NotNil(t, saved)
	assert.Equal(t, "a@b.com", saved.Email)
	assert.Equal(t, "Jo", saved.FullName)
	assert.Equal(t, "Hello there", saved.Subject)
	assert.False(t, saved.CreatedAt.Before(before) || saved.CreatedAt.After(after))
}

func TestContactService_Submit_NoIPHashWhenDisabled(t *testing.T) {
	var saved *model.ContactMessage
	repo := &mockContactRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			saved = msg
			return nil
		},
	}
	svc := NewContactService(repo, validation.New(), iphash.New(false, testSalt))

	require.NoError(t, svc.Submit(context.Background(), validContactInput(), "1.2.3.4"))
	assert.Empty(t, saved.IPHash)
}

func TestContactService_Submit_HashesIPWhenEnabled(t *testing.T) {
	var saved *model.ContactMessage
	repo := &mockContactRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			saved = msg
			return nil
		},
	}
	hasher := iphash.New(true, testSalt)
	svc := NewContactService(repo, validation.New(), hasher)

	require.NoError(t, svc.Submit(context.Background(), validContactInput(), "1.2.3.4"))
	assert.Equal(t, hasher.Hash("1.2.3.4"), saved.IPHash)
	assert.NotContains(t, saved.IPHash, "1.2.3.4")
}

func TestContactService_Submit_ValidationErrorSkipsStore(t *testing.T) {
	called := false
	repo := &mockContactRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			called = true
			return nil
		},
	}
	svc := NewContactService(repo, validation.New(), iphash.New(false, ""))

	in := validContactInput()
	in.FullName = "J"
	err := svc.Submit(context.Background(), in, "1.2.3.4")

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Full name must be at least 2 characters", verr.Message)
	assert.False(t, called, "store must not be called for invalid input")
}

func TestContactService_Submit_RepositoryErrorIsPersistenceError(t *testing.T) {
	dbErr := errors.New("db write failed")
	repo := &mockContactRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			return dbErr
		},
	}
	svc := NewContactService(repo, validation.New(), iphash.New(false, ""))

	err := svc.Submit(context.Background(), validContactInput(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, dbErr)
}
