package repository

import (
	"context"
	"time"

	"github.com/runwayrivets/pictopost-api/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	SetAIProvider(ctx context.Context, userID, provider, encryptedKey string) error
	ClearAIProvider(ctx context.Context, userID string) error
	SetEBayCredentials(ctx context.Context, userID string, creds domain.EBayCredentials) error
	UpdatePreferences(ctx context.Context, userID string, prefs domain.Preferences) error
	Delete(ctx context.Context, id string) error
}

// ListingRepository defines methods for listing operations
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Listing, error)
	MarkPublished(ctx context.Context, id, ebayListingID string) error
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int, error)
	CountByUserAndStatus(ctx context.Context, userID, status string) (int, error)
}

// AIUsageRepository defines methods for the append-only AI usage log
type AIUsageRepository interface {
	Create(ctx context.Context, record *domain.AIUsageRecord) error
	ListByUser(ctx context.Context, userID string, since time.Time) ([]*domain.AIUsageRecord, error)
}
