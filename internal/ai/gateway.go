package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runwayrivets/pictopost-api/internal/config"
	"github.com/runwayrivets/pictopost-api/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported ai provider")
	ErrInvalidKeyFormat    = errors.New("invalid api key format")
	ErrDailyLimitExceeded  = errors.New("daily usage limit exceeded")
)

// UsageRecorder persists one usage record per gateway call. The AI usage
// repository satisfies this directly.
type UsageRecorder interface {
	Create(ctx context.Context, record *domain.AIUsageRecord) error
}

// DailyLimiter tracks per-user, per-provider daily request counts.
type DailyLimiter interface {
	Allow(ctx context.Context, userID, providerID string, dailyLimit int) (bool, error)
}

// Gateway routes generation and validation requests to the user's provider
// and writes exactly one usage record per call, success or failure.
type Gateway struct {
	clients  map[string]Client
	recorder UsageRecorder
	limiter  DailyLimiter
	logger   *zap.Logger

	fallbackProvider string
	ollamaEndpoint   string

	callCounter metric.Int64Counter
}

// NewGateway builds a gateway with real provider clients.
func NewGateway(cfg config.AIConfig, recorder UsageRecorder, limiter DailyLimiter, logger *zap.Logger) *Gateway {
	clients := map[string]Client{
		ProviderOpenAI:    NewOpenAIClient(cfg.RequestTimeout.Duration),
		ProviderAnthropic: NewAnthropicClient(cfg.RequestTimeout.Duration),
		ProviderGemini:    NewGeminiClient(cfg.RequestTimeout.Duration),
		ProviderOllama:    NewOllamaClient(cfg.RequestTimeout.Duration),
	}
	return NewGatewayWithClients(cfg, clients, recorder, limiter, logger)
}

// NewGatewayWithClients builds a gateway with caller-supplied clients.
func NewGatewayWithClients(cfg config.AIConfig, clients map[string]Client, recorder UsageRecorder, limiter DailyLimiter, logger *zap.Logger) *Gateway {
	meter := otel.Meter("pictopost/ai")
	callCounter, _ := meter.Int64Counter("ai_gateway_calls_total",
		metric.WithDescription("AI gateway calls by provider and outcome"))

	return &Gateway{
		clients:          clients,
		recorder:         recorder,
		limiter:          limiter,
		logger:           logger,
		fallbackProvider: cfg.FallbackProvider,
		ollamaEndpoint:   cfg.OllamaEndpoint,
		callCounter:      callCounter,
	}
}

// ResolveProvider picks the provider and credential for a generation call.
// Users without a configured provider get the designated fallback; a
// configured provider is used as-is and never silently replaced.
func (g *Gateway) ResolveProvider(providerID, apiKey string) (string, string, error) {
	if providerID == "" {
		providerID = g.fallbackProvider
		if providerID == ProviderOllama {
			apiKey = g.ollamaEndpoint
		}
	}
	if _, ok := catalog[providerID]; !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, providerID)
	}
	if apiKey == "" {
		return "", "", fmt.Errorf("no credential available for provider %s", providerID)
	}
	return providerID, apiKey, nil
}

// Generate analyzes item images with the resolved provider and returns the
// structured listing. Every call leaves one usage record.
func (g *Gateway) Generate(ctx context.Context, userID, providerID, apiKey string, images []Image, userMessage string) (*GenerationResult, error) {
	provider, ok := catalog[providerID]
	if !ok {
		g.record(ctx, userID, providerID, "", domain.AIRequestTypeListingGeneration, Usage{}, fmt.Errorf("%w: %s", ErrUnsupportedProvider, providerID))
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, providerID)
	}

	allowed, err := g.limiter.Allow(ctx, userID, providerID, provider.DailyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to check usage limit: %w", err)
	}
	if !allowed {
		limitErr := fmt.Errorf("%w for provider %s", ErrDailyLimitExceeded, providerID)
		g.record(ctx, userID, providerID, provider.Model, domain.AIRequestTypeListingGeneration, Usage{}, limitErr)
		return nil, limitErr
	}

	result, err := g.clients[providerID].Generate(ctx, apiKey, images, userMessage)
	if err != nil {
		g.record(ctx, userID, providerID, provider.Model, domain.AIRequestTypeListingGeneration, Usage{}, err)
		return nil, err
	}

	g.record(ctx, userID, providerID, provider.Model, domain.AIRequestTypeListingGeneration, result.Usage, nil)
	return result, nil
}

// ValidateKeyLive checks a credential against the provider's API. Format
// validation runs first so malformed keys are rejected without a network
// call; those calls still leave a usage record.
func (g *Gateway) ValidateKeyLive(ctx context.Context, userID, providerID, apiKey string) error {
	provider, ok := catalog[providerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedProvider, providerID)
	}

	if err := ValidateKeyFormat(providerID, apiKey); err != nil {
		formatErr := fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
		g.record(ctx, userID, providerID, provider.Model, domain.AIRequestTypeKeyValidation, Usage{}, formatErr)
		return formatErr
	}

	err := g.clients[providerID].ValidateKey(ctx, apiKey)
	g.record(ctx, userID, providerID, provider.Model, domain.AIRequestTypeKeyValidation, Usage{}, err)
	return err
}

func (g *Gateway) record(ctx context.Context, userID, providerID, model, requestType string, usage Usage, callErr error) {
	record := &domain.AIUsageRecord{
		UserID:      userID,
		Provider:    providerID,
		Model:       model,
		TokensUsed:  int(usage.TotalTokens),
		Cost:        usage.CostUSD,
		RequestType: requestType,
		Success:     callErr == nil,
		CreatedAt:   time.Now(),
	}
	if callErr != nil {
		msg := callErr.Error()
		record.ErrorMessage = &msg
	}

	if err := g.recorder.Create(ctx, record); err != nil {
		g.logger.Error("failed to record ai usage",
			zap.String("user_id", userID),
			zap.String("provider", providerID),
			zap.Error(err))
	}

	g.callCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", providerID),
		attribute.String("request_type", requestType),
		attribute.Bool("success", callErr == nil),
	))
}
