package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/runwayrivets/pictopost-api/internal/domain"
	"github.com/runwayrivets/pictopost-api/pkg/database"
)

// listingRepository implements ListingRepository interface
type listingRepository struct {
	db *database.Postgres
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *database.Postgres) ListingRepository {
	return &listingRepository{db: db}
}

const listingColumns = `id, user_id, title, description, category, condition,
		estimated_price, brand, item_type, material, color, country_of_manufacture,
		image_urls, user_message, ai_provider, ai_generated, status,
		ebay_listing_id, created_at, updated_at`

// Create creates a new listing in the database
func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (id, user_id, title, description, category, condition,
			estimated_price, brand, item_type, material, color, country_of_manufacture,
			image_urls, user_message, ai_provider, ai_generated, status,
			ebay_listing_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	// Generate UUID if not provided
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	if listing.Status == "" {
		listing.Status = domain.ListingStatusDraft
	}

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	if listing.UpdatedAt.IsZero() {
		listing.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		listing.ID,
		listing.UserID,
		listing.Title,
		listing.Description,
		listing.Category,
		listing.Condition,
		listing.EstimatedPrice,
		listing.Brand,
		listing.ItemType,
		listing.Material,
		listing.Color,
		listing.CountryOfManufacture,
		listing.ImageURLs,
		listing.UserMessage,
		listing.AIProvider,
		listing.AIGenerated,
		listing.Status,
		listing.EBayListingID,
		listing.CreatedAt,
		listing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// GetByID retrieves a listing by ID
func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE id = $1`, listingColumns)

	listing := &domain.Listing{}

	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&listing.ID,
		&listing.UserID,
		&listing.Title,
		&listing.Description,
		&listing.Category,
		&listing.Condition,
		&listing.EstimatedPrice,
		&listing.Brand,
		&listing.ItemType,
		&listing.Material,
		&listing.Color,
		&listing.CountryOfManufacture,
		&listing.ImageURLs,
		&listing.UserMessage,
		&listing.AIProvider,
		&listing.AIGenerated,
		&listing.Status,
		&listing.EBayListingID,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("listing with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get listing by id: %w", err)
	}

	return listing, nil
}

// ListByUser retrieves all listings for a user, most recent first
func (r *listingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE user_id = $1 ORDER BY created_at DESC`, listingColumns)

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	listings := []*domain.Listing{}
	for rows.Next() {
		listing := &domain.Listing{}
		err := rows.Scan(
			&listing.ID,
			&listing.UserID,
			&listing.Title,
			&listing.Description,
			&listing.Category,
			&listing.Condition,
			&listing.EstimatedPrice,
			&listing.Brand,
			&listing.ItemType,
			&listing.Material,
			&listing.Color,
			&listing.CountryOfManufacture,
			&listing.ImageURLs,
			&listing.UserMessage,
			&listing.AIProvider,
			&listing.AIGenerated,
			&listing.Status,
			&listing.EBayListingID,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}

	return listings, nil
}

// MarkPublished records the external eBay listing identifier and flips the
// status to active
func (r *listingRepository) MarkPublished(ctx context.Context, id, ebayListingID string) error {
	query := `
		UPDATE listings
		SET status = $2, ebay_listing_id = $3
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, id, domain.ListingStatusActive, ebayListingID)
	if err != nil {
		return fmt.Errorf("failed to mark listing published: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("listing with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a listing
func (r *listingRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM listings WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("listing with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// CountByUser returns the number of listings owned by a user
func (r *listingRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return count, nil
}

// CountByUserAndStatus returns the number of a user's listings in a status
func (r *listingRepository) CountByUserAndStatus(ctx context.Context, userID, status string) (int, error) {
	var count int
	err := r.db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings WHERE user_id = $1 AND status = $2`, userID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count listings by status: %w", err)
	}
	return count, nil
}
