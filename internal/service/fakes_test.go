package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/runwayrivets/pictopost-api/internal/ai"
	"github.com/runwayrivets/pictopost-api/internal/domain"
	"github.com/runwayrivets/pictopost-api/internal/ebay"
	"github.com/runwayrivets/pictopost-api/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("user with id %s already exists: %w", user.ID, repository.ErrDuplicateID)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %s not found: %w", id, repository.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) SetAIProvider(ctx context.Context, userID, provider, encryptedKey string) error {
	user, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.AIProvider = &provider
	user.AIAPIKeyEnc = &encryptedKey
	return nil
}

func (r *fakeUserRepo) ClearAIProvider(ctx context.Context, userID string) error {
	user, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.AIProvider = nil
	user.AIAPIKeyEnc = nil
	return nil
}

func (r *fakeUserRepo) SetEBayCredentials(ctx context.Context, userID string, creds domain.EBayCredentials) error {
	user, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.EBayAppID = &creds.AppID
	user.EBayCertID = &creds.CertID
	user.EBayRefreshToken = &creds.RefreshToken
	if creds.DevID != "" {
		user.EBayDevID = &creds.DevID
	}
	return nil
}

func (r *fakeUserRepo) UpdatePreferences(ctx context.Context, userID string, prefs domain.Preferences) error {
	user, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.Preferences = prefs
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeListingRepo struct {
	listings map[string]*domain.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[string]*domain.Listing{}}
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	if listing.Status == "" {
		listing.Status = domain.ListingStatusDraft
	}
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	r.listings[listing.ID] = listing
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, fmt.Errorf("listing with id %s not found: %w", id, repository.ErrNotFound)
	}
	copied := *listing
	return &copied, nil
}

func (r *fakeListingRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Listing, error) {
	listings := []*domain.Listing{}
	for _, listing := range r.listings {
		if listing.UserID == userID {
			copied := *listing
			listings = append(listings, &copied)
		}
	}
	return listings, nil
}

func (r *fakeListingRepo) MarkPublished(ctx context.Context, id, ebayListingID string) error {
	listing, ok := r.listings[id]
	if !ok {
		return repository.ErrNotFound
	}
	listing.Status = domain.ListingStatusActive
	listing.EBayListingID = &ebayListingID
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.listings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, listing := range r.listings {
		if listing.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeListingRepo) CountByUserAndStatus(ctx context.Context, userID, status string) (int, error) {
	count := 0
	for _, listing := range r.listings {
		if listing.UserID == userID && listing.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeUsageRepo struct {
	records []*domain.AIUsageRecord
}

func (r *fakeUsageRepo) Create(ctx context.Context, record *domain.AIUsageRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	// Most recent first, like the real repository
	r.records = append([]*domain.AIUsageRecord{record}, r.records...)
	return nil
}

func (r *fakeUsageRepo) ListByUser(ctx context.Context, userID string, since time.Time) ([]*domain.AIUsageRecord, error) {
	records := []*domain.AIUsageRecord{}
	for _, record := range r.records {
		if record.UserID == userID && !record.CreatedAt.Before(since) {
			records = append(records, record)
		}
	}
	return records, nil
}

type fakeAIClient struct {
	result      *ai.GenerationResult
	generateErr error
}

func (c *fakeAIClient) Generate(ctx context.Context, apiKey string, images []ai.Image, userMessage string) (*ai.GenerationResult, error) {
	if c.generateErr != nil {
		return nil, c.generateErr
	}
	return c.result, nil
}

func (c *fakeAIClient) ValidateKey(ctx context.Context, apiKey string) error {
	return nil
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(ctx context.Context, userID, providerID string, dailyLimit int) (bool, error) {
	return true, nil
}

type fakePublisher struct {
	token      string
	listingID  string
	refreshErr error
	createErr  error
	lastItem   ebay.InventoryItem
}

func (p *fakePublisher) RefreshAccessToken(ctx context.Context, creds domain.EBayCredentials) (string, error) {
	if p.refreshErr != nil {
		return "", p.refreshErr
	}
	return p.token, nil
}

func (p *fakePublisher) CreateListing(ctx context.Context, accessToken string, item ebay.InventoryItem) (string, error) {
	p.lastItem = item
	if p.createErr != nil {
		return "", p.createErr
	}
	return p.listingID, nil
}
