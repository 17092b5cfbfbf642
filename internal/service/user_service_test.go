package service

import (
	"context"
	"testing"
	"time"

	"github.com/runwayrivets/pictopost-api/internal/ai"
	"github.com/runwayrivets/pictopost-api/internal/domain"
	"github.com/runwayrivets/pictopost-api/internal/dto"
	"github.com/runwayrivets/pictopost-api/internal/repository"
	"github.com/runwayrivets/pictopost-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestUserService(t *testing.T) (UserService, *fakeUserRepo, *fakeListingRepo, *fakeUsageRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	listingRepo := newFakeListingRepo()
	usageRepo := &fakeUsageRepo{}
	svc := NewUserService(userRepo, listingRepo, usageRepo, utils.NewKeyCipher(testSecret), zap.NewNop())
	return svc, userRepo, listingRepo, usageRepo
}

func TestCreateOrFetchIdempotent(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	email := "seller@example.com"
	first, err := svc.CreateOrFetch(ctx, &dto.CreateUserRequest{UserID: "user-1", Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "user-1", first.ID)

	// Second call with different metadata returns the existing row unchanged
	other := "other@example.com"
	second, err := svc.CreateOrFetch(ctx, &dto.CreateUserRequest{UserID: "user-1", Email: &other})
	require.NoError(t, err)
	require.NotNil(t, second.Email)
	assert.Equal(t, "seller@example.com", *second.Email)
}

func TestSetAIProviderEncryptsKey(t *testing.T) {
	svc, userRepo, _, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.CreateOrFetch(ctx, &dto.CreateUserRequest{UserID: "user-1"})
	require.NoError(t, err)

	apiKey := "sk-proj-abcdefghijklmnopqrstuvwx"
	require.NoError(t, svc.SetAIProvider(ctx, "user-1", "openai", apiKey))

	stored := userRepo.users["user-1"]
	require.NotNil(t, stored.AIAPIKeyEnc)
	assert.NotEqual(t, apiKey, *stored.AIAPIKeyEnc)

	decrypted, err := utils.NewKeyCipher(testSecret).Decrypt(*stored.AIAPIKeyEnc)
	require.NoError(t, err)
	assert.Equal(t, apiKey, decrypted)

	provider, err := svc.GetAIProvider(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "openai", provider)
}

func TestSetAIProviderRejectsBadInput(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.CreateOrFetch(ctx, &dto.CreateUserRequest{UserID: "user-1"})
	require.NoError(t, err)

	err = svc.SetAIProvider(ctx, "user-1", "mistral", "sk-proj-abcdefghijklmnopqrst")
	assert.ErrorIs(t, err, ai.ErrUnsupportedProvider)

	err = svc.SetAIProvider(ctx, "user-1", "openai", "not-a-key")
	assert.ErrorIs(t, err, ai.ErrInvalidKeyFormat)

	// Nothing was stored
	_, err = svc.GetAIProvider(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNoProviderConfigured)
}

func TestClearAIProvider(t *testing.T) {
	svc, userRepo, _, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.CreateOrFetch(ctx, &dto.CreateUserRequest{UserID: "user-1"})
	require.NoError(t, err)
	require.NoError(t, svc.SetAIProvider(ctx, "user-1", "openai", "sk-proj-abcdefghijklmnopqrst"))

	require.NoError(t, svc.ClearAIProvider(ctx, "user-1"))

	// Provider and encrypted key are both gone
	stored := userRepo.users["user-1"]
	assert.Nil(t, stored.AIProvider)
	assert.Nil(t, stored.AIAPIKeyEnc)

	_, err = svc.GetAIProvider(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNoProviderConfigured)
}

func TestGetAIProviderUnknownUser(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	_, err := svc.GetAIProvider(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUsageStats(t *testing.T) {
	svc, _, listingRepo, usageRepo := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.CreateOrFetch(ctx, &dto.CreateUserRequest{UserID: "user-1"})
	require.NoError(t, err)

	require.NoError(t, listingRepo.Create(ctx, &domain.Listing{UserID: "user-1", Title: "a", Status: domain.ListingStatusActive}))
	require.NoError(t, listingRepo.Create(ctx, &domain.Listing{UserID: "user-1", Title: "b"}))

	require.NoError(t, usageRepo.Create(ctx, &domain.AIUsageRecord{UserID: "user-1", Cost: 0.01, Success: true}))
	require.NoError(t, usageRepo.Create(ctx, &domain.AIUsageRecord{UserID: "user-1", Cost: 0.02, Success: true}))
	// Old record outside the 30-day window
	require.NoError(t, usageRepo.Create(ctx, &domain.AIUsageRecord{
		UserID: "user-1", Cost: 5, CreatedAt: time.Now().Add(-40 * 24 * time.Hour),
	}))

	stats, err := svc.UsageStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalListings)
	assert.Equal(t, 1, stats.ActiveListings)
	assert.Equal(t, 2, stats.AIRequests30d)
	assert.InDelta(t, 0.03, stats.AICost30d, 1e-9)
	require.NotNil(t, stats.LastAIUsage)
}
