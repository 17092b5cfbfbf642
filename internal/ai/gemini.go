package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"google.golang.org/genai"
)

const geminiModelsURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Gemini 1.5 Flash pricing (per million tokens)
const (
	geminiInputPricePerMillion  = 0.075
	geminiOutputPricePerMillion = 0.30
)

// GeminiClient calls Google's Gemini API. A genai client is created per call
// because the API key belongs to the requesting user.
type GeminiClient struct {
	httpClient *resty.Client
}

func NewGeminiClient(timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		httpClient: resty.New().SetTimeout(timeout),
	}
}

// Generate implements the Client interface using Gemini vision.
func (c *GeminiClient) Generate(ctx context.Context, apiKey string, images []Image, userMessage string) (*GenerationResult, error) {
	provider := catalog[ProviderGemini]

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	parts := []*genai.Part{genai.NewPartFromText(BuildPrompt(userMessage))}
	for _, img := range images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MIMEType},
		})
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, provider.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini api error: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	listing, err := ParseGeneratedListing(result.Text())
	if err != nil {
		return nil, err
	}

	usage := Usage{}
	if result.UsageMetadata != nil {
		usage.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int64(result.UsageMetadata.TotalTokenCount)
		usage.CostUSD = costPerMillion(usage.InputTokens, usage.OutputTokens,
			geminiInputPricePerMillion, geminiOutputPricePerMillion)
	}

	return &GenerationResult{Listing: listing, Usage: usage}, nil
}

// ValidateKey checks the key against the public models listing endpoint.
func (c *GeminiClient) ValidateKey(ctx context.Context, apiKey string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", apiKey).
		Get(geminiModelsURL)
	if err != nil {
		return fmt.Errorf("gemini validation request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("gemini rejected the key (status %d)", resp.StatusCode())
	}
	return nil
}
