package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKeyFormat(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		key      string
		wantErr  bool
	}{
		{"openai valid", ProviderOpenAI, "sk-proj-abcdefghijklmnopqrstuvwxyz", false},
		{"openai wrong prefix", ProviderOpenAI, "pk-proj-abcdefghijklmnopqrstuvwxyz", true},
		{"openai too short", ProviderOpenAI, "sk-short", true},
		{"anthropic valid", ProviderAnthropic, "sk-ant-REDACTED", false},
		{"anthropic plain sk prefix", ProviderAnthropic, "sk-abcdefghijklmnopqrstuvwxyz", true},
		{"gemini valid", ProviderGemini, "AIzaSyAbCdEfGhIjKlMnOpQrStUv", false},
		{"gemini too short", ProviderGemini, "AIzaShort", true},
		{"ollama valid http", ProviderOllama, "http://localhost:11434", false},
		{"ollama valid https", ProviderOllama, "https://ollama.internal:11434", false},
		{"ollama not a url", ProviderOllama, "sk-abcdefghijklmnopqrstu", true},
		{"ollama missing scheme", ProviderOllama, "localhost:11434", true},
		{"unknown provider", "mistral", "sk-abcdefghijklmnopqrstu", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKeyFormat(tt.provider, tt.key)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListProvidersStableOrder(t *testing.T) {
	providers := ListProviders()
	require.Len(t, providers, 4)

	ids := make([]string, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama}, ids)
}

func TestGetProvider(t *testing.T) {
	p, ok := GetProvider(ProviderGemini)
	require.True(t, ok)
	assert.Equal(t, "gemini-1.5-flash", p.Model)
	assert.Equal(t, 1500, p.DailyLimit)

	_, ok = GetProvider("mistral")
	assert.False(t, ok)
}
