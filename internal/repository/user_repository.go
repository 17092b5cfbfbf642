package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/runwayrivets/pictopost-api/internal/domain"
	"github.com/runwayrivets/pictopost-api/pkg/database"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, ai_provider, ai_api_key_encrypted,
		ebay_app_id, ebay_cert_id, ebay_dev_id, ebay_refresh_token,
		preferences, created_at, updated_at`

// Create creates a new user in the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, name, ai_provider, ai_api_key_encrypted,
			ebay_app_id, ebay_cert_id, ebay_dev_id, ebay_refresh_token,
			preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.AIProvider,
		user.AIAPIKeyEnc,
		user.EBayAppID,
		user.EBayCertID,
		user.EBayDevID,
		user.EBayRefreshToken,
		user.Preferences,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		// Check for unique constraint violation (duplicate id)
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("user with id %s already exists: %w", user.ID, ErrDuplicateID)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user := &domain.User{}

	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.AIProvider,
		&user.AIAPIKeyEnc,
		&user.EBayAppID,
		&user.EBayCertID,
		&user.EBayDevID,
		&user.EBayRefreshToken,
		&user.Preferences,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// SetAIProvider overwrites the user's provider/key pair. A single active
// provider is kept per user.
func (r *userRepository) SetAIProvider(ctx context.Context, userID, provider, encryptedKey string) error {
	query := `
		UPDATE users
		SET ai_provider = $2, ai_api_key_encrypted = $3
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID, provider, encryptedKey)
	if err != nil {
		return fmt.Errorf("failed to set ai provider: %w", err)
	}

	return checkRowsAffected(result, userID)
}

// ClearAIProvider removes the user's provider configuration
func (r *userRepository) ClearAIProvider(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET ai_provider = NULL, ai_api_key_encrypted = NULL
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear ai provider: %w", err)
	}

	return checkRowsAffected(result, userID)
}

// SetEBayCredentials stores the user's eBay application credentials
func (r *userRepository) SetEBayCredentials(ctx context.Context, userID string, creds domain.EBayCredentials) error {
	query := `
		UPDATE users
		SET ebay_app_id = $2, ebay_cert_id = $3, ebay_dev_id = $4, ebay_refresh_token = $5
		WHERE id = $1
	`

	var devID *string
	if creds.DevID != "" {
		devID = &creds.DevID
	}

	result, err := r.db.DB.ExecContext(ctx, query, userID, creds.AppID, creds.CertID, devID, creds.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to set ebay credentials: %w", err)
	}

	return checkRowsAffected(result, userID)
}

// UpdatePreferences replaces the user's preferences
func (r *userRepository) UpdatePreferences(ctx context.Context, userID string, prefs domain.Preferences) error {
	query := `
		UPDATE users
		SET preferences = $2
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID, prefs)
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	return checkRowsAffected(result, userID)
}

// Delete deletes a user. Listings and usage records cascade via foreign keys.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return checkRowsAffected(result, id)
}

func checkRowsAffected(result sql.Result, userID string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
	}

	return nil
}
