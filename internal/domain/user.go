package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// User represents an account in the system. The ID is chosen by the client
// on first setup and is immutable afterwards.
type User struct {
	ID               string       `json:"id" db:"id"`
	Email            *string      `json:"email" db:"email"`
	Name             *string      `json:"name" db:"name"`
	AIProvider       *string      `json:"ai_provider" db:"ai_provider"`
	AIAPIKeyEnc      *string      `json:"-" db:"ai_api_key_encrypted"`
	EBayAppID        *string      `json:"-" db:"ebay_app_id"`
	EBayCertID       *string      `json:"-" db:"ebay_cert_id"`
	EBayDevID        *string      `json:"-" db:"ebay_dev_id"`
	EBayRefreshToken *string      `json:"-" db:"ebay_refresh_token"`
	Preferences      Preferences  `json:"preferences" db:"preferences"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}

// Preferences is the enumerated per-user configuration stored as JSONB.
// Unknown keys are dropped on write rather than carried around.
type Preferences struct {
	DefaultCondition         string `json:"default_condition,omitempty"`
	DefaultCategory          string `json:"default_category,omitempty"`
	Currency                 string `json:"currency,omitempty"`
	MarketplaceID            string `json:"marketplace_id,omitempty"`
	ClearDraftsAfterGenerate bool   `json:"clear_drafts_after_generate,omitempty"`
}

// Value implements driver.Valuer for JSONB storage
func (p Preferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB storage
func (p *Preferences) Scan(src interface{}) error {
	if src == nil {
		*p = Preferences{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported preferences type %T", src)
	}

	return json.Unmarshal(data, p)
}

// EBayCredentials holds the per-user eBay application credentials needed
// for the OAuth refresh-token exchange.
type EBayCredentials struct {
	AppID        string
	CertID       string
	DevID        string
	RefreshToken string
}

// EBayCredentials extracts the stored eBay credentials, reporting whether
// all of the required pieces are present.
func (u *User) EBayCredentials() (EBayCredentials, bool) {
	if u.EBayAppID == nil || u.EBayCertID == nil || u.EBayRefreshToken == nil {
		return EBayCredentials{}, false
	}

	creds := EBayCredentials{
		AppID:        *u.EBayAppID,
		CertID:       *u.EBayCertID,
		RefreshToken: *u.EBayRefreshToken,
	}
	if u.EBayDevID != nil {
		creds.DevID = *u.EBayDevID
	}

	return creds, true
}
