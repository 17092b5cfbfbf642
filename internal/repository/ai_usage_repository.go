package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/runwayrivets/pictopost-api/internal/domain"
	"github.com/runwayrivets/pictopost-api/pkg/database"
)

// aiUsageRepository implements AIUsageRepository interface. The table is
// append-only; rows are never updated.
type aiUsageRepository struct {
	db *database.Postgres
}

// NewAIUsageRepository creates a new AI usage repository
func NewAIUsageRepository(db *database.Postgres) AIUsageRepository {
	return &aiUsageRepository{db: db}
}

// Create appends a usage record
func (r *aiUsageRepository) Create(ctx context.Context, record *domain.AIUsageRecord) error {
	query := `
		INSERT INTO ai_usage (id, user_id, provider, model, tokens_used, cost,
			request_type, success, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.Provider,
		record.Model,
		record.TokensUsed,
		record.Cost,
		record.RequestType,
		record.Success,
		record.ErrorMessage,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ai usage record: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's usage records created after the given time,
// most recent first
func (r *aiUsageRepository) ListByUser(ctx context.Context, userID string, since time.Time) ([]*domain.AIUsageRecord, error) {
	query := `
		SELECT id, user_id, provider, model, tokens_used, cost,
			request_type, success, error_message, created_at
		FROM ai_usage
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.DB.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list ai usage: %w", err)
	}
	defer rows.Close()

	records := []*domain.AIUsageRecord{}
	for rows.Next() {
		record := &domain.AIUsageRecord{}
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Provider,
			&record.Model,
			&record.TokensUsed,
			&record.Cost,
			&record.RequestType,
			&record.Success,
			&record.ErrorMessage,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ai usage record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ai usage records: %w", err)
	}

	return records, nil
}
