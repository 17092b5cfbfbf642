package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Set required environment variable
	os.Setenv("AI_ENCRYPTION_SECRET", "test-encryption-secret-at-least-32-chars")
	defer os.Unsetenv("AI_ENCRYPTION_SECRET")

	ctx := context.Background()
	cfg, err := Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	// Test default values
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected Server.Port to be '8080', got '%s'", cfg.Server.Port)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected Server.Host to be '0.0.0.0', got '%s'", cfg.Server.Host)
	}

	if cfg.Server.ReadTimeout.Duration != 30*time.Second {
		t.Errorf("Expected Server.ReadTimeout to be 30s, got %v", cfg.Server.ReadTimeout.Duration)
	}

	if cfg.Postgres.Host != "localhost" {
		t.Errorf("Expected Postgres.Host to be 'localhost', got '%s'", cfg.Postgres.Host)
	}

	if cfg.Redis.Host != "localhost" {
		t.Errorf("Expected Redis.Host to be 'localhost', got '%s'", cfg.Redis.Host)
	}

	if cfg.AI.FallbackProvider != "ollama" {
		t.Errorf("Expected AI.FallbackProvider to be 'ollama', got '%s'", cfg.AI.FallbackProvider)
	}

	if cfg.AI.RequestTimeout.Duration != 120*time.Second {
		t.Errorf("Expected AI.RequestTimeout to be 120s, got %v", cfg.AI.RequestTimeout.Duration)
	}

	if cfg.Staging.MaxDrafts != 10 {
		t.Errorf("Expected Staging.MaxDrafts to be 10, got %d", cfg.Staging.MaxDrafts)
	}

	if cfg.Staging.MaxUploadSize != 10*1024*1024 {
		t.Errorf("Expected Staging.MaxUploadSize to be 10MiB, got %d", cfg.Staging.MaxUploadSize)
	}

	if cfg.EBay.Environment != "production" {
		t.Errorf("Expected EBay.Environment to be 'production', got '%s'", cfg.EBay.Environment)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be 'development', got '%s'", cfg.Env)
	}

	// Test CORS defaults
	if len(cfg.CORS.AllowedOrigins) == 0 {
		t.Error("Expected CORS.AllowedOrigins to have defaults")
	}
}

func TestLoad_ShortEncryptionSecret(t *testing.T) {
	os.Setenv("AI_ENCRYPTION_SECRET", "too-short")
	defer os.Unsetenv("AI_ENCRYPTION_SECRET")

	_, err := Load(context.Background())
	if err == nil {
		t.Fatal("Expected error for short encryption secret")
	}
}

func TestEBayBaseURL(t *testing.T) {
	prod := EBayConfig{Environment: "production"}
	if prod.BaseURL() != "https://api.ebay.com" {
		t.Errorf("Expected production base URL, got '%s'", prod.BaseURL())
	}

	sandbox := EBayConfig{Environment: "sandbox"}
	if sandbox.BaseURL() != "https://api.sandbox.ebay.com" {
		t.Errorf("Expected sandbox base URL, got '%s'", sandbox.BaseURL())
	}
}
