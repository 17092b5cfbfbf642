package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const openAIBaseURL = "https://api.openai.com/v1"

// GPT-4o pricing (per million tokens)
const (
	openAIInputPricePerMillion  = 2.50
	openAIOutputPricePerMillion = 10.00
)

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIContentPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIMessage struct {
	Role    string              `json:"role"`
	Content []openAIContentPart `json:"content"`
}

type openAIChatRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
		TotalTokens      int64 `json:"total_tokens"`
	} `json:"usage"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIClient calls the OpenAI chat completions API with vision input.
type OpenAIClient struct {
	httpClient *resty.Client
}

// NewOpenAIClient creates an OpenAI client against the production API.
func NewOpenAIClient(timeout time.Duration) *OpenAIClient {
	return NewOpenAIClientWithBaseURL(openAIBaseURL, timeout)
}

// NewOpenAIClientWithBaseURL creates a client against a custom base URL.
func NewOpenAIClientWithBaseURL(baseURL string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

// Generate implements the Client interface using GPT-4o vision.
func (c *OpenAIClient) Generate(ctx context.Context, apiKey string, images []Image, userMessage string) (*GenerationResult, error) {
	provider := catalog[ProviderOpenAI]

	parts := []openAIContentPart{{Type: "text", Text: BuildPrompt(userMessage)}}
	for _, img := range images {
		dataURL := fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
		parts = append(parts, openAIContentPart{Type: "image_url", ImageURL: &openAIImageURL{URL: dataURL}})
	}

	result := &openAIChatResponse{}
	apiErr := &openAIErrorResponse{}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(apiKey).
		SetBody(openAIChatRequest{
			Model:     provider.Model,
			Messages:  []openAIMessage{{Role: "user", Content: parts}},
			MaxTokens: provider.MaxTokens,
		}).
		SetResult(result).
		SetError(apiErr).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("openai api error: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("openai api error: status %d", resp.StatusCode())
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("empty response from openai")
	}

	listing, err := ParseGeneratedListing(result.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &GenerationResult{
		Listing: listing,
		Usage: Usage{
			InputTokens:  result.Usage.PromptTokens,
			OutputTokens: result.Usage.CompletionTokens,
			TotalTokens:  result.Usage.TotalTokens,
			CostUSD: costPerMillion(result.Usage.PromptTokens, result.Usage.CompletionTokens,
				openAIInputPricePerMillion, openAIOutputPricePerMillion),
		},
	}, nil
}

// ValidateKey checks the key with a cheap models listing call.
func (c *OpenAIClient) ValidateKey(ctx context.Context, apiKey string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(apiKey).
		Get("/models")
	if err != nil {
		return fmt.Errorf("openai validation request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("openai rejected the key (status %d)", resp.StatusCode())
	}
	return nil
}
