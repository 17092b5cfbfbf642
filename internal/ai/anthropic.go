package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com/v1"
	anthropicAPIVersion = "2023-06-01"
)

// Claude 3 Sonnet pricing (per million tokens)
const (
	anthropicInputPricePerMillion  = 3.00
	anthropicOutputPricePerMillion = 15.00
)

type anthropicImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicContentPart struct {
	Type   string                `json:"type"`
	Text   string                `json:"text,omitempty"`
	Source *anthropicImageSource `json:"source,omitempty"`
}

type anthropicMessage struct {
	Role    string                 `json:"role"`
	Content []anthropicContentPart `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int64 `json:"input_tokens"`
		OutputTokens int64 `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// AnthropicClient calls the Anthropic messages API with vision input.
type AnthropicClient struct {
	httpClient *resty.Client
}

// NewAnthropicClient creates an Anthropic client against the production API.
func NewAnthropicClient(timeout time.Duration) *AnthropicClient {
	return NewAnthropicClientWithBaseURL(anthropicBaseURL, timeout)
}

// NewAnthropicClientWithBaseURL creates a client against a custom base URL.
func NewAnthropicClientWithBaseURL(baseURL string, timeout time.Duration) *AnthropicClient {
	return &AnthropicClient{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("anthropic-version", anthropicAPIVersion),
	}
}

// Generate implements the Client interface using Claude 3 vision.
func (c *AnthropicClient) Generate(ctx context.Context, apiKey string, images []Image, userMessage string) (*GenerationResult, error) {
	provider := catalog[ProviderAnthropic]

	parts := []anthropicContentPart{{Type: "text", Text: BuildPrompt(userMessage)}}
	for _, img := range images {
		parts = append(parts, anthropicContentPart{
			Type: "image",
			Source: &anthropicImageSource{
				Type:      "base64",
				MediaType: img.MIMEType,
				Data:      base64.StdEncoding.EncodeToString(img.Data),
			},
		})
	}

	result := &anthropicResponse{}
	apiErr := &anthropicErrorResponse{}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("x-api-key", apiKey).
		SetBody(anthropicRequest{
			Model:     provider.Model,
			MaxTokens: provider.MaxTokens,
			Messages:  []anthropicMessage{{Role: "user", Content: parts}},
		}).
		SetResult(result).
		SetError(apiErr).
		Post("/messages")
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("anthropic api error: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("anthropic api error: status %d", resp.StatusCode())
	}
	if len(result.Content) == 0 {
		return nil, fmt.Errorf("empty response from anthropic")
	}

	listing, err := ParseGeneratedListing(result.Content[0].Text)
	if err != nil {
		return nil, err
	}

	inputTokens := result.Usage.InputTokens
	outputTokens := result.Usage.OutputTokens

	return &GenerationResult{
		Listing: listing,
		Usage: Usage{
			InputTokens:  inputTokens,
			OutputTokens: outputTokens,
			TotalTokens:  inputTokens + outputTokens,
			CostUSD: costPerMillion(inputTokens, outputTokens,
				anthropicInputPricePerMillion, anthropicOutputPricePerMillion),
		},
	}, nil
}

// ValidateKey checks the key with a cheap models listing call.
func (c *AnthropicClient) ValidateKey(ctx context.Context, apiKey string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("x-api-key", apiKey).
		Get("/models")
	if err != nil {
		return fmt.Errorf("anthropic validation request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("anthropic rejected the key (status %d)", resp.StatusCode())
	}
	return nil
}
