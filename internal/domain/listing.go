package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Listing status lifecycle. Generated listings start as draft and become
// active once published to eBay. Deletion is a hard delete, not a status flip.
const (
	ListingStatusDraft   = "draft"
	ListingStatusActive  = "active"
	ListingStatusSold    = "sold"
	ListingStatusExpired = "expired"
	ListingStatusDeleted = "deleted"
)

// Listing represents a (possibly not-yet-published) eBay item.
type Listing struct {
	ID                   string      `json:"id" db:"id"`
	UserID               string      `json:"user_id" db:"user_id"`
	Title                string      `json:"title" db:"title"`
	Description          string      `json:"description" db:"description"`
	Category             string      `json:"category" db:"category"`
	Condition            string      `json:"condition" db:"condition"`
	EstimatedPrice       string      `json:"estimated_price" db:"estimated_price"`
	Brand                string      `json:"brand" db:"brand"`
	ItemType             string      `json:"item_type" db:"item_type"`
	Material             string      `json:"material" db:"material"`
	Color                string      `json:"color" db:"color"`
	CountryOfManufacture string      `json:"country_of_manufacture" db:"country_of_manufacture"`
	ImageURLs            StringSlice `json:"image_urls" db:"image_urls"`
	UserMessage          string      `json:"user_message" db:"user_message"`
	AIProvider           string      `json:"ai_provider" db:"ai_provider"`
	AIGenerated          bool        `json:"ai_generated" db:"ai_generated"`
	Status               string      `json:"status" db:"status"`
	EBayListingID        *string     `json:"ebay_listing_id" db:"ebay_listing_id"`
	CreatedAt            time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at" db:"updated_at"`
}

// StringSlice is an ordered list of strings stored as JSONB.
type StringSlice []string

// Value implements driver.Valuer for JSONB storage
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(s))
}

// Scan implements sql.Scanner for JSONB storage
func (s *StringSlice) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported string slice type %T", src)
	}

	return json.Unmarshal(data, (*[]string)(s))
}
