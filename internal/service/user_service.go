package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runwayrivets/pictopost-api/internal/ai"
	"github.com/runwayrivets/pictopost-api/internal/domain"
	"github.com/runwayrivets/pictopost-api/internal/dto"
	"github.com/runwayrivets/pictopost-api/internal/repository"
	"github.com/runwayrivets/pictopost-api/internal/utils"
	"go.uber.org/zap"
)

const usageStatsWindow = 30 * 24 * time.Hour

// userService implements UserService interface
type userService struct {
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	usageRepo   repository.AIUsageRepository
	cipher      *utils.KeyCipher
	logger      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	usageRepo repository.AIUsageRepository,
	cipher *utils.KeyCipher,
	logger *zap.Logger,
) UserService {
	return &userService{
		userRepo:    userRepo,
		listingRepo: listingRepo,
		usageRepo:   usageRepo,
		cipher:      cipher,
		logger:      logger,
	}
}

// CreateOrFetch creates a user with the client-supplied id, or returns the
// existing row unchanged. Calling it twice with the same id is a no-op.
func (s *userService) CreateOrFetch(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.GetByID(ctx, req.UserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	user := &domain.User{
		ID:    req.UserID,
		Email: req.Email,
		Name:  req.Name,
	}

	err = s.userRepo.Create(ctx, user)
	if err != nil {
		// Lost a create race, the other writer's row wins
		if errors.Is(err, repository.ErrDuplicateID) {
			return s.userRepo.GetByID(ctx, req.UserID)
		}
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", user.ID))
	return user, nil
}

// Get retrieves a user by id
func (s *userService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Delete removes a user. Listings and usage records go with it via the
// cascading foreign keys.
func (s *userService) Delete(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", userID))
	return nil
}

// SetAIProvider validates the key's shape, encrypts it and overwrites the
// user's provider/key pair. Only one provider is active per user.
func (s *userService) SetAIProvider(ctx context.Context, userID, provider, apiKey string) error {
	if _, ok := ai.GetProvider(provider); !ok {
		return fmt.Errorf("%w: %s", ai.ErrUnsupportedProvider, provider)
	}
	if err := ai.ValidateKeyFormat(provider, apiKey); err != nil {
		return fmt.Errorf("%w: %v", ai.ErrInvalidKeyFormat, err)
	}

	encrypted, err := s.cipher.Encrypt(apiKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt api key: %w", err)
	}

	if err := s.userRepo.SetAIProvider(ctx, userID, provider, encrypted); err != nil {
		return err
	}

	s.logger.Info("ai provider configured",
		zap.String("user_id", userID),
		zap.String("provider", provider))
	return nil
}

// ClearAIProvider removes the user's provider configuration and stored key
func (s *userService) ClearAIProvider(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearAIProvider(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("ai provider cleared", zap.String("user_id", userID))
	return nil
}

// GetAIProvider returns the configured provider name, never the key.
func (s *userService) GetAIProvider(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.AIProvider == nil || *user.AIProvider == "" {
		return "", ErrNoProviderConfigured
	}
	return *user.AIProvider, nil
}

// SetEBayCredentials stores the user's eBay application credentials
func (s *userService) SetEBayCredentials(ctx context.Context, userID string, creds domain.EBayCredentials) error {
	if err := s.userRepo.SetEBayCredentials(ctx, userID, creds); err != nil {
		return err
	}
	s.logger.Info("ebay credentials stored", zap.String("user_id", userID))
	return nil
}

// UpdatePreferences replaces the user's preferences
func (s *userService) UpdatePreferences(ctx context.Context, userID string, prefs domain.Preferences) error {
	return s.userRepo.UpdatePreferences(ctx, userID, prefs)
}

// UsageStats aggregates listing counts and 30-day AI usage for a user
func (s *userService) UsageStats(ctx context.Context, userID string) (*domain.UsageStats, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	total, err := s.listingRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	active, err := s.listingRepo.CountByUserAndStatus(ctx, userID, domain.ListingStatusActive)
	if err != nil {
		return nil, err
	}

	records, err := s.usageRepo.ListByUser(ctx, userID, time.Now().Add(-usageStatsWindow))
	if err != nil {
		return nil, err
	}

	stats := &domain.UsageStats{
		TotalListings:  total,
		ActiveListings: active,
		AIRequests30d:  len(records),
	}
	for _, record := range records {
		stats.AICost30d += record.Cost
	}
	if len(records) > 0 {
		// Records are ordered most recent first
		stats.LastAIUsage = &records[0].CreatedAt
	}

	return stats, nil
}

// RecentAIUsage returns the user's usage records from the last 30 days
func (s *userService) RecentAIUsage(ctx context.Context, userID string) ([]*domain.AIUsageRecord, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.usageRepo.ListByUser(ctx, userID, time.Now().Add(-usageStatsWindow))
}
