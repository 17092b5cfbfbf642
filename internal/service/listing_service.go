package service

import (
	"context"
	"fmt"

	"github.com/runwayrivets/pictopost-api/internal/ai"
	"github.com/runwayrivets/pictopost-api/internal/domain"
	"github.com/runwayrivets/pictopost-api/internal/dto"
	"github.com/runwayrivets/pictopost-api/internal/ebay"
	"github.com/runwayrivets/pictopost-api/internal/repository"
	"github.com/runwayrivets/pictopost-api/internal/utils"
	"go.uber.org/zap"
)

// listingService implements ListingService interface
type listingService struct {
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	gateway     *ai.Gateway
	drafts      DraftService
	publisher   EBayPublisher
	cipher      *utils.KeyCipher
	logger      *zap.Logger
}

// NewListingService creates a new listing service
func NewListingService(
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	gateway *ai.Gateway,
	drafts DraftService,
	publisher EBayPublisher,
	cipher *utils.KeyCipher,
	logger *zap.Logger,
) ListingService {
	return &listingService{
		userRepo:    userRepo,
		listingRepo: listingRepo,
		gateway:     gateway,
		drafts:      drafts,
		publisher:   publisher,
		cipher:      cipher,
		logger:      logger,
	}
}

// Generate runs the AI gateway over staged draft images and persists the
// resulting listing as a draft. All or nothing: a failed generation leaves
// no row behind.
func (s *listingService) Generate(ctx context.Context, userID string, req *dto.GenerateListingRequest) (*domain.Listing, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	configuredProvider := ""
	apiKey := ""
	if user.AIProvider != nil && *user.AIProvider != "" && user.AIAPIKeyEnc != nil {
		configuredProvider = *user.AIProvider
		apiKey, err = s.cipher.Decrypt(*user.AIAPIKeyEnc)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt api key: %w", err)
		}
	}

	provider, credential, err := s.gateway.ResolveProvider(configuredProvider, apiKey)
	if err != nil {
		return nil, err
	}

	images, err := s.drafts.ReadImages(userID, req.ImageFilenames)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Generate(ctx, userID, provider, credential, images, req.Message)
	if err != nil {
		return nil, err
	}

	generated := result.Listing
	listing := &domain.Listing{
		UserID:               userID,
		Title:                generated.Title,
		Description:          generated.Description,
		Category:             generated.Category,
		Condition:            generated.Condition,
		EstimatedPrice:       generated.EstimatedPrice,
		Brand:                generated.Brand,
		ItemType:             generated.ItemType,
		Material:             generated.Material,
		Color:                generated.Color,
		CountryOfManufacture: generated.CountryOfManufacture,
		ImageURLs:            req.ImageFilenames,
		UserMessage:          req.Message,
		AIProvider:           provider,
		AIGenerated:          true,
		Status:               domain.ListingStatusDraft,
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	clearDrafts := user.Preferences.ClearDraftsAfterGenerate
	if req.ClearDrafts != nil {
		clearDrafts = *req.ClearDrafts
	}
	if clearDrafts {
		s.drafts.Remove(userID, req.ImageFilenames)
	}

	s.logger.Info("listing generated",
		zap.String("user_id", userID),
		zap.String("listing_id", listing.ID),
		zap.String("provider", provider))

	return listing, nil
}

// List returns all of a user's listings, most recent first
func (s *listingService) List(ctx context.Context, userID string) ([]*domain.Listing, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.listingRepo.ListByUser(ctx, userID)
}

// Get returns one listing scoped to its owner. A listing owned by another
// user reports not-found rather than forbidden.
func (s *listingService) Get(ctx context.Context, userID, listingID string) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID != userID {
		return nil, fmt.Errorf("listing with id %s not found: %w", listingID, repository.ErrNotFound)
	}
	return listing, nil
}

// Delete hard-deletes a listing, scoped to its owner
func (s *listingService) Delete(ctx context.Context, userID, listingID string) error {
	if _, err := s.Get(ctx, userID, listingID); err != nil {
		return err
	}
	return s.listingRepo.Delete(ctx, listingID)
}

// Publish pushes a listing to eBay. The user's refresh token is exchanged
// for a fresh access token on every call. On success the listing becomes
// active with the returned eBay id; on failure it stays a draft and the
// upstream error is surfaced as-is.
func (s *listingService) Publish(ctx context.Context, userID, listingID string) (*domain.Listing, error) {
	listing, err := s.Get(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	creds, ok := user.EBayCredentials()
	if !ok {
		return nil, ErrNoEBayCredentials
	}

	accessToken, err := s.publisher.RefreshAccessToken(ctx, creds)
	if err != nil {
		return nil, err
	}

	item := ebay.BuildInventoryItem(listing, user.Preferences)
	ebayListingID, err := s.publisher.CreateListing(ctx, accessToken, item)
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.MarkPublished(ctx, listingID, ebayListingID); err != nil {
		return nil, err
	}

	listing.Status = domain.ListingStatusActive
	listing.EBayListingID = &ebayListingID

	s.logger.Info("listing published",
		zap.String("user_id", userID),
		zap.String("listing_id", listingID),
		zap.String("ebay_listing_id", ebayListingID))

	return listing, nil
}
