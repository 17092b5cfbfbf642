package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Postgres PostgresConfig `env:",prefix=POSTGRES_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	AI       AIConfig       `env:",prefix=AI_"`
	EBay     EBayConfig     `env:",prefix=EBAY_"`
	Staging  StagingConfig  `env:",prefix=STAGING_"`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=30s"`
}

type PostgresConfig struct {
	Host          string `env:"HOST,default=localhost"`
	Port          string `env:"PORT,default=5432"`
	User          string `env:"USER,default=pictopost"`
	Password      string `env:"PASSWORD,default=pictopost_password"`
	DBName        string `env:"DB,default=pictopost_db"`
	SSLMode       string `env:"SSLMODE,default=disable"`
	MigrationsDir string `env:"MIGRATIONS_DIR,default=migrations"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

// AIConfig configures the AI provider gateway. EncryptionSecret protects
// user API keys at rest and is the only required setting.
type AIConfig struct {
	EncryptionSecret string   `env:"ENCRYPTION_SECRET,required"`
	FallbackProvider string   `env:"FALLBACK_PROVIDER,default=ollama"`
	OllamaEndpoint   string   `env:"OLLAMA_ENDPOINT,default=http://localhost:11434"`
	RequestTimeout   Duration `env:"REQUEST_TIMEOUT,default=120s"`
}

type EBayConfig struct {
	Environment    string   `env:"ENVIRONMENT,default=production"`
	RequestTimeout Duration `env:"REQUEST_TIMEOUT,default=30s"`
}

type StagingConfig struct {
	Dir           string `env:"DIR,default=user_drafts"`
	MaxDrafts     int    `env:"MAX_DRAFTS,default=10"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE,default=10485760"`
}

type SecurityConfig struct {
	RateLimitRequests int      `env:"RATE_LIMIT_REQUESTS,default=10"`
	RateLimitWindow   Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// URL returns the PostgreSQL connection URL used by the migration runner
func (p PostgresConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// BaseURL returns the eBay API base URL for the configured environment
func (e EBayConfig) BaseURL() string {
	if e.Environment == "production" {
		return "https://api.ebay.com"
	}
	return "https://api.sandbox.ebay.com"
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Validate encryption secret length (AES key material)
	if len(config.AI.EncryptionSecret) < 32 {
		return nil, fmt.Errorf("AI_ENCRYPTION_SECRET must be at least 32 characters long")
	}

	return &config, nil
}

// LoadWithDefaults loads configuration with default context
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}
