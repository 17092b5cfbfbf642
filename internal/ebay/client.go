package ebay

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/runwayrivets/pictopost-api/internal/domain"
)

const oauthScopes = "https://api.ebay.com/oauth/api_scope " +
	"https://api.ebay.com/oauth/api_scope/sell.inventory " +
	"https://api.ebay.com/oauth/api_scope/sell.account"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type createListingResponse struct {
	ListingID string `json:"listingId"`
}

// Client talks to the eBay identity and sell inventory APIs. A fresh access
// token is exchanged from the user's refresh token on every publish; tokens
// are not cached across calls.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates an eBay client for the given base URL (production or
// sandbox, per config).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

// RefreshAccessToken exchanges the user's refresh token for an access token
// using the OAuth client credentials (app id + cert id) as basic auth.
func (c *Client) RefreshAccessToken(ctx context.Context, creds domain.EBayCredentials) (string, error) {
	result := &tokenResponse{}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBasicAuth(creds.AppID, creds.CertID).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": creds.RefreshToken,
			"scope":         oauthScopes,
		}).
		SetResult(result).
		Post("/identity/v1/oauth2/token")
	if err != nil {
		return "", fmt.Errorf("ebay token request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ebay token refresh failed: %s", resp.String())
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("ebay token response missing access_token")
	}

	return result.AccessToken, nil
}

// CreateListing publishes an inventory item and returns the listing id
// assigned by eBay. Upstream errors are surfaced verbatim.
func (c *Client) CreateListing(ctx context.Context, accessToken string, item InventoryItem) (string, error) {
	result := &createListingResponse{}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(item).
		SetResult(result).
		Post("/sell/inventory/v1/inventory_item")
	if err != nil {
		return "", fmt.Errorf("ebay listing request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ebay listing creation failed: %s", resp.String())
	}
	if result.ListingID == "" {
		return "", fmt.Errorf("ebay response missing listingId")
	}

	return result.ListingID, nil
}
