package service

import (
	"context"
	"mime/multipart"

	"github.com/runwayrivets/pictopost-api/internal/ai"
	"github.com/runwayrivets/pictopost-api/internal/domain"
	"github.com/runwayrivets/pictopost-api/internal/dto"
	"github.com/runwayrivets/pictopost-api/internal/ebay"
)

// UserService defines methods for account and configuration operations
type UserService interface {
	CreateOrFetch(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
	SetAIProvider(ctx context.Context, userID, provider, apiKey string) error
	ClearAIProvider(ctx context.Context, userID string) error
	GetAIProvider(ctx context.Context, userID string) (string, error)
	SetEBayCredentials(ctx context.Context, userID string, creds domain.EBayCredentials) error
	UpdatePreferences(ctx context.Context, userID string, prefs domain.Preferences) error
	UsageStats(ctx context.Context, userID string) (*domain.UsageStats, error)
	RecentAIUsage(ctx context.Context, userID string) ([]*domain.AIUsageRecord, error)
}

// DraftService defines methods for per-user draft image staging on disk
type DraftService interface {
	Upload(ctx context.Context, userID string, files []*multipart.FileHeader) (*dto.UploadResponse, error)
	List(ctx context.Context, userID string) ([]dto.DraftInfo, error)
	Delete(ctx context.Context, userID, filename string) error
	Path(userID, filename string) (string, error)
	ReadImages(userID string, filenames []string) ([]ai.Image, error)
	Remove(userID string, filenames []string)
}

// ListingService defines methods for the generate/publish listing workflow
type ListingService interface {
	Generate(ctx context.Context, userID string, req *dto.GenerateListingRequest) (*domain.Listing, error)
	List(ctx context.Context, userID string) ([]*domain.Listing, error)
	Get(ctx context.Context, userID, listingID string) (*domain.Listing, error)
	Delete(ctx context.Context, userID, listingID string) error
	Publish(ctx context.Context, userID, listingID string) (*domain.Listing, error)
}

// EBayPublisher is the slice of the eBay client the listing workflow needs.
type EBayPublisher interface {
	RefreshAccessToken(ctx context.Context, creds domain.EBayCredentials) (string, error)
	CreateListing(ctx context.Context, accessToken string, item ebay.InventoryItem) (string, error)
}
