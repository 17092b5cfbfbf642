package dto

import "github.com/runwayrivets/pictopost-api/internal/domain"

// CreateUserRequest represents a create-or-fetch user request
type CreateUserRequest struct {
	UserID string  `json:"user_id" binding:"required"`
	Email  *string `json:"email"`
	Name   *string `json:"name"`
}

// SetAIProviderRequest represents a request to configure a user's AI provider
type SetAIProviderRequest struct {
	Provider string `json:"provider" binding:"required"`
	APIKey   string `json:"api_key" binding:"required"`
}

// ValidateKeyRequest represents a format-only API key validation request
type ValidateKeyRequest struct {
	Provider string `json:"provider" binding:"required"`
	APIKey   string `json:"api_key" binding:"required"`
}

// ValidateKeyLiveRequest represents a live API key validation request. The
// user id is required because live checks are logged to the usage history.
type ValidateKeyLiveRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Provider string `json:"provider" binding:"required"`
	APIKey   string `json:"api_key" binding:"required"`
}

// UpdatePreferencesRequest represents a preferences update
type UpdatePreferencesRequest struct {
	Preferences domain.Preferences `json:"preferences" binding:"required"`
}

// SetEBayCredentialsRequest represents a request to store eBay app credentials
type SetEBayCredentialsRequest struct {
	AppID        string `json:"app_id" binding:"required"`
	CertID       string `json:"cert_id" binding:"required"`
	DevID        string `json:"dev_id"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// GenerateListingRequest represents a listing generation request against
// staged draft images
type GenerateListingRequest struct {
	ImageFilenames []string `json:"image_filenames" binding:"required,min=1"`
	Message        string   `json:"message"`
	ClearDrafts    *bool    `json:"clear_drafts"`
}
