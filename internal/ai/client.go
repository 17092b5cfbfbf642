package ai

import "context"

// Image is one staged photo handed to a provider.
type Image struct {
	Data     []byte
	MIMEType string
}

// Usage contains token usage and cost information reported by a provider.
// Providers that report nothing leave it zero.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	CostUSD      float64
}

// GenerationResult contains the parsed listing and usage information.
type GenerationResult struct {
	Listing *GeneratedListing
	Usage   Usage
}

// Client can generate a listing from item photos and validate a credential
// against the provider's API. For ollama the apiKey argument is the endpoint
// URL.
type Client interface {
	Generate(ctx context.Context, apiKey string, images []Image, userMessage string) (*GenerationResult, error)
	ValidateKey(ctx context.Context, apiKey string) error
}

func costPerMillion(inputTokens, outputTokens int64, inputPrice, outputPrice float64) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * inputPrice
	outputCost := float64(outputTokens) / 1_000_000 * outputPrice
	return inputCost + outputCost
}
