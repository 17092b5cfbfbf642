package ai

import (
	"fmt"
	"net/url"
	"strings"
)

// Provider identifiers accepted by the catalog.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

// Provider describes one entry of the provider catalog: the defaults used for
// generation requests and the limits and hints surfaced to clients.
type Provider struct {
	ID                 string
	Name               string
	Model              string
	MaxTokens          int
	RateLimitPerMinute int
	DailyLimit         int
	SetupURL           string
	PricingInfo        string
	KeyFormatHint      string
}

var catalog = map[string]Provider{
	ProviderOpenAI: {
		ID:                 ProviderOpenAI,
		Name:               "OpenAI GPT-4o Vision",
		Model:              "gpt-4o",
		MaxTokens:          1000,
		RateLimitPerMinute: 5,
		DailyLimit:         100,
		SetupURL:           "https://platform.openai.com/api-keys",
		PricingInfo:        "Free: $5 credit/month (~50-100 requests)",
		KeyFormatHint:      "starts with sk-",
	},
	ProviderAnthropic: {
		ID:                 ProviderAnthropic,
		Name:               "Claude 3 Vision",
		Model:              "claude-3-sonnet-20240229",
		MaxTokens:          1000,
		RateLimitPerMinute: 5,
		DailyLimit:         100,
		SetupURL:           "https://console.anthropic.com/",
		PricingInfo:        "Free: $5 credit/month (~50-100 requests)",
		KeyFormatHint:      "starts with sk-ant-",
	},
	ProviderGemini: {
		ID:                 ProviderGemini,
		Name:               "Google Gemini Vision",
		Model:              "gemini-1.5-flash",
		MaxTokens:          1000,
		RateLimitPerMinute: 15,
		DailyLimit:         1500,
		SetupURL:           "https://makersuite.google.com/app/apikey",
		PricingInfo:        "Free: 15 requests/minute, 1500 requests/day",
		KeyFormatHint:      "API key from Google AI Studio",
	},
	ProviderOllama: {
		ID:                 ProviderOllama,
		Name:               "Local Ollama (LLaVA)",
		Model:              "llava",
		MaxTokens:          1000,
		RateLimitPerMinute: 999,
		DailyLimit:         99999,
		SetupURL:           "https://ollama.ai/",
		PricingInfo:        "Free: Unlimited (self-hosted)",
		KeyFormatHint:      "HTTP endpoint URL, e.g. http://localhost:11434",
	},
}

// providerOrder fixes the order providers are listed in responses.
var providerOrder = []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama}

// GetProvider returns the catalog entry for an identifier.
func GetProvider(id string) (Provider, bool) {
	p, ok := catalog[id]
	return p, ok
}

// ListProviders returns all catalog entries in a stable order.
func ListProviders() []Provider {
	providers := make([]Provider, 0, len(providerOrder))
	for _, id := range providerOrder {
		providers = append(providers, catalog[id])
	}
	return providers
}

// ValidateKeyFormat checks a credential's shape for a provider without any
// network calls. For ollama the credential is the endpoint URL rather than a
// secret key.
func ValidateKeyFormat(providerID, apiKey string) error {
	switch providerID {
	case ProviderOpenAI:
		if !strings.HasPrefix(apiKey, "sk-") || len(apiKey) <= 20 {
			return fmt.Errorf("openai keys start with sk- and are longer than 20 characters")
		}
	case ProviderAnthropic:
		if !strings.HasPrefix(apiKey, "sk-ant-") || len(apiKey) <= 20 {
			return fmt.Errorf("anthropic keys start with sk-ant- and are longer than 20 characters")
		}
	case ProviderGemini:
		if len(apiKey) <= 20 {
			return fmt.Errorf("gemini keys are longer than 20 characters")
		}
	case ProviderOllama:
		u, err := url.Parse(apiKey)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("ollama expects an http(s) endpoint URL")
		}
	default:
		return fmt.Errorf("unknown provider %q", providerID)
	}
	return nil
}
