package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Images  []string       `json:"images"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response        string `json:"response"`
	PromptEvalCount int64  `json:"prompt_eval_count"`
	EvalCount       int64  `json:"eval_count"`
}

type ollamaError struct {
	Error string `json:"error"`
}

// OllamaClient calls a self-hosted Ollama instance running a vision model.
// The user's credential is the endpoint URL; there is no secret key and no
// cost per token.
type OllamaClient struct {
	httpClient *resty.Client
}

func NewOllamaClient(timeout time.Duration) *OllamaClient {
	return &OllamaClient{
		httpClient: resty.New().SetTimeout(timeout),
	}
}

// Generate implements the Client interface using LLaVA via /api/generate.
func (c *OllamaClient) Generate(ctx context.Context, endpoint string, images []Image, userMessage string) (*GenerationResult, error) {
	provider := catalog[ProviderOllama]

	encoded := make([]string, 0, len(images))
	for _, img := range images {
		encoded = append(encoded, base64.StdEncoding.EncodeToString(img.Data))
	}

	result := &ollamaGenerateResponse{}
	apiErr := &ollamaError{}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(ollamaGenerateRequest{
			Model:   provider.Model,
			Prompt:  BuildPrompt(userMessage),
			Images:  encoded,
			Stream:  false,
			Options: map[string]any{"num_predict": provider.MaxTokens},
		}).
		SetResult(result).
		SetError(apiErr).
		Post(strings.TrimRight(endpoint, "/") + "/api/generate")
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error != "" {
			return nil, fmt.Errorf("ollama api error: %s", apiErr.Error)
		}
		return nil, fmt.Errorf("ollama api error: status %d", resp.StatusCode())
	}
	if result.Response == "" {
		return nil, fmt.Errorf("empty response from ollama")
	}

	listing, err := ParseGeneratedListing(result.Response)
	if err != nil {
		return nil, err
	}

	return &GenerationResult{
		Listing: listing,
		Usage: Usage{
			InputTokens:  result.PromptEvalCount,
			OutputTokens: result.EvalCount,
			TotalTokens:  result.PromptEvalCount + result.EvalCount,
			CostUSD:      0,
		},
	}, nil
}

// ValidateKey checks the endpoint is reachable via the tags listing.
func (c *OllamaClient) ValidateKey(ctx context.Context, endpoint string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(strings.TrimRight(endpoint, "/") + "/api/tags")
	if err != nil {
		return fmt.Errorf("ollama endpoint unreachable: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("ollama endpoint returned status %d", resp.StatusCode())
	}
	return nil
}
