package domain

import "time"

// Request type tags recorded with each AI usage row.
const (
	AIRequestTypeListingGeneration = "listing_generation"
	AIRequestTypeKeyValidation     = "key_validation"
)

// AIUsageRecord is one row of the append-only AI usage log. Exactly one
// record is written per gateway call, success or failure.
type AIUsageRecord struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Provider     string    `json:"provider" db:"provider"`
	Model        string    `json:"model" db:"model"`
	TokensUsed   int       `json:"tokens_used" db:"tokens_used"`
	Cost         float64   `json:"cost" db:"cost"`
	RequestType  string    `json:"request_type" db:"request_type"`
	Success      bool      `json:"success" db:"success"`
	ErrorMessage *string   `json:"error_message" db:"error_message"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// UsageStats summarizes a user's activity for the dashboard.
type UsageStats struct {
	TotalListings  int        `json:"total_listings"`
	ActiveListings int        `json:"active_listings"`
	AIRequests30d  int        `json:"ai_requests_30d"`
	AICost30d      float64    `json:"ai_cost_30d"`
	LastAIUsage    *time.Time `json:"last_ai_usage"`
}
