package ebay

import (
	"regexp"
	"strconv"

	"github.com/runwayrivets/pictopost-api/internal/domain"
)

// InventoryItem is the payload sent to the eBay sell inventory API.
type InventoryItem struct {
	Product         Product         `json:"product"`
	Availability    Availability    `json:"availability"`
	Condition       string          `json:"condition"`
	PackageWeight   PackageWeight   `json:"packageWeightAndSize"`
	Price           Price           `json:"price"`
	Format          string          `json:"format"`
	MarketplaceID   string          `json:"marketplaceId"`
	CategoryID      string          `json:"categoryId"`
	ListingPolicies ListingPolicies `json:"listingPolicies"`
}

type Product struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Aspects     map[string][]string `json:"aspects"`
	ImageURLs   []string            `json:"imageUrls,omitempty"`
}

type Availability struct {
	ShipToLocationAvailability ShipToLocationAvailability `json:"shipToLocationAvailability"`
}

type ShipToLocationAvailability struct {
	Quantity int `json:"quantity"`
}

type PackageWeight struct {
	Weight Weight `json:"weight"`
}

type Weight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type Price struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type ListingPolicies struct {
	FulfillmentPolicyID string `json:"fulfillmentPolicyId"`
	PaymentPolicyID     string `json:"paymentPolicyId"`
	ReturnPolicyID      string `json:"returnPolicyId"`
}

// BuildInventoryItem maps a listing to the inventory payload, applying the
// embedded defaults and the user's preferences for currency and marketplace.
func BuildInventoryItem(listing *domain.Listing, prefs domain.Preferences) InventoryItem {
	defaults := categoryConfig.Defaults

	// The title limit counts characters, so truncate on runes to avoid
	// splitting a multi-byte sequence
	title := listing.Title
	if runes := []rune(title); len(runes) > defaults.MaxTitleLength {
		title = string(runes[:defaults.MaxTitleLength])
	}

	imageURLs := []string(listing.ImageURLs)
	if len(imageURLs) > defaults.MaxImages {
		imageURLs = imageURLs[:defaults.MaxImages]
	}

	currency := defaults.Currency
	if prefs.Currency != "" {
		currency = prefs.Currency
	}
	marketplaceID := defaults.MarketplaceID
	if prefs.MarketplaceID != "" {
		marketplaceID = prefs.MarketplaceID
	}

	return InventoryItem{
		Product: Product{
			Title:       title,
			Description: listing.Description,
			Aspects: map[string][]string{
				"Brand":                         {orDefault(listing.Brand, defaults.DefaultBrand)},
				"Type":                          {orDefault(listing.ItemType, defaults.DefaultType)},
				"Material":                      {orDefault(listing.Material, defaults.DefaultMaterial)},
				"Color":                         {orDefault(listing.Color, defaults.DefaultColor)},
				"Country/Region of Manufacture": {orDefault(listing.CountryOfManufacture, defaults.DefaultCountry)},
			},
			ImageURLs: imageURLs,
		},
		Availability: Availability{
			ShipToLocationAvailability: ShipToLocationAvailability{Quantity: 1},
		},
		Condition: MapCondition(listing.Condition),
		PackageWeight: PackageWeight{
			Weight: Weight{Value: defaults.DefaultWeight, Unit: defaults.DefaultWeightUnit},
		},
		Price: Price{
			Value:    ExtractPrice(listing.EstimatedPrice),
			Currency: currency,
		},
		Format:        "FIXED_PRICE",
		MarketplaceID: marketplaceID,
		CategoryID:    MapCategory(listing.Category),
		ListingPolicies: ListingPolicies{
			FulfillmentPolicyID: categoryConfig.Policies.FulfillmentPolicyID,
			PaymentPolicyID:     categoryConfig.Policies.PaymentPolicyID,
			ReturnPolicyID:      categoryConfig.Policies.ReturnPolicyID,
		},
	}
}

var priceRangePattern = regexp.MustCompile(`(\d+(?:\.\d{1,2})?)\s*-\s*\$?(\d+(?:\.\d{1,2})?)`)
var priceSinglePattern = regexp.MustCompile(`(\d+(?:\.\d{1,2})?)`)

// ExtractPrice pulls a numeric price from an estimate string such as
// "$40-60", "$25.50" or "around 30 dollars". Ranges resolve to their
// midpoint; unparseable input yields zero.
func ExtractPrice(estimate string) float64 {
	if m := priceRangePattern.FindStringSubmatch(estimate); m != nil {
		low, errLow := strconv.ParseFloat(m[1], 64)
		high, errHigh := strconv.ParseFloat(m[2], 64)
		if errLow == nil && errHigh == nil {
			return (low + high) / 2
		}
	}
	if m := priceSinglePattern.FindStringSubmatch(estimate); m != nil {
		if value, err := strconv.ParseFloat(m[1], 64); err == nil {
			return value
		}
	}
	return 0
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
