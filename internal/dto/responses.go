package dto

import "github.com/runwayrivets/pictopost-api/internal/domain"

// ErrorResponse is the failure envelope for every endpoint
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResponse builds the standard failure envelope
func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}

// MessageResponse is the minimal happy-path envelope
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UserResponse represents a user without sensitive fields. The encrypted
// API key and eBay secrets are never serialized.
type UserResponse struct {
	Success     bool               `json:"success"`
	UserID      string             `json:"user_id"`
	Email       *string            `json:"email"`
	Name        *string            `json:"name"`
	AIProvider  *string            `json:"ai_provider"`
	Preferences domain.Preferences `json:"preferences"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
}

// ProviderInfo describes one supported AI provider
type ProviderInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Model       string `json:"model"`
	SetupURL    string `json:"setup_url"`
	KeyFormat   string `json:"key_format"`
	PricingInfo string `json:"pricing_info"`
	DailyLimit  int    `json:"daily_limit"`
}

// ProviderListResponse lists the supported AI providers
type ProviderListResponse struct {
	Success   bool           `json:"success"`
	Providers []ProviderInfo `json:"providers"`
	Count     int            `json:"count"`
}

// ValidateKeyResponse reports the result of a key validation
type ValidateKeyResponse struct {
	Success  bool   `json:"success"`
	Provider string `json:"provider"`
	IsValid  bool   `json:"is_valid"`
	Message  string `json:"message"`
}

// AIProviderResponse reports a user's configured provider, never the key
type AIProviderResponse struct {
	Success  bool   `json:"success"`
	UserID   string `json:"user_id"`
	Provider string `json:"provider"`
}

// DraftInfo describes one staged draft image
type DraftInfo struct {
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploaded_at"`
}

// DraftListResponse lists a user's staged draft images
type DraftListResponse struct {
	Success    bool        `json:"success"`
	Drafts     []DraftInfo `json:"drafts"`
	Count      int         `json:"count"`
	MaxAllowed int         `json:"max_allowed"`
}

// FileUploadResult reports the per-file outcome of an upload
type FileUploadResult struct {
	Filename string `json:"filename"`
	Stored   string `json:"stored,omitempty"`
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
}

// UploadResponse reports a draft image upload, file by file
type UploadResponse struct {
	Success bool               `json:"success"`
	Files   []FileUploadResult `json:"files"`
	Count   int                `json:"count"`
}

// ListingResponse wraps a single listing
type ListingResponse struct {
	Success bool            `json:"success"`
	Listing *domain.Listing `json:"listing"`
}

// ListingListResponse wraps a user's listings
type ListingListResponse struct {
	Success  bool              `json:"success"`
	Listings []*domain.Listing `json:"listings"`
	Count    int               `json:"count"`
}

// PublishResponse reports a successful eBay publish
type PublishResponse struct {
	Success       bool   `json:"success"`
	ListingID     string `json:"listing_id"`
	EBayListingID string `json:"ebay_listing_id"`
	Status        string `json:"status"`
}

// UsageStatsResponse wraps a user's usage statistics
type UsageStatsResponse struct {
	Success bool               `json:"success"`
	UserID  string             `json:"user_id"`
	Stats   *domain.UsageStats `json:"stats"`
}

// AIUsageListResponse lists a user's recent AI usage records
type AIUsageListResponse struct {
	Success bool                    `json:"success"`
	Records []*domain.AIUsageRecord `json:"records"`
	Count   int                     `json:"count"`
}
