package ebay

import (
	_ "embed"
	"encoding/json"
	"strings"
)

//go:embed categories.json
var categoriesJSON []byte

// CategoryConfig holds the category and condition mapping tables plus the
// listing defaults shipped with the service.
type CategoryConfig struct {
	CategoryMappings  map[string]string `json:"category_mappings"`
	ConditionMappings map[string]string `json:"condition_mappings"`
	Defaults          Defaults          `json:"defaults"`
	Policies          Policies          `json:"policies"`
}

type Defaults struct {
	DefaultCategory   string  `json:"default_category"`
	DefaultCondition  string  `json:"default_condition"`
	MaxTitleLength    int     `json:"max_title_length"`
	MaxImages         int     `json:"max_images"`
	Currency          string  `json:"currency"`
	MarketplaceID     string  `json:"marketplace_id"`
	DefaultBrand      string  `json:"default_brand"`
	DefaultType       string  `json:"default_type"`
	DefaultMaterial   string  `json:"default_material"`
	DefaultColor      string  `json:"default_color"`
	DefaultCountry    string  `json:"default_country"`
	DefaultWeight     float64 `json:"default_weight"`
	DefaultWeightUnit string  `json:"default_weight_unit"`
}

type Policies struct {
	FulfillmentPolicyID string `json:"fulfillment_policy_id"`
	PaymentPolicyID     string `json:"payment_policy_id"`
	ReturnPolicyID      string `json:"return_policy_id"`
}

var categoryConfig = mustLoadCategoryConfig()

func mustLoadCategoryConfig() CategoryConfig {
	var cfg CategoryConfig
	if err := json.Unmarshal(categoriesJSON, &cfg); err != nil {
		panic("invalid embedded categories.json: " + err.Error())
	}
	return cfg
}

// Categories returns the embedded mapping tables.
func Categories() CategoryConfig {
	return categoryConfig
}

// MapCondition maps a free-form condition string to an eBay condition enum.
func MapCondition(condition string) string {
	if mapped, ok := categoryConfig.ConditionMappings[strings.ToLower(strings.TrimSpace(condition))]; ok {
		return mapped
	}
	return categoryConfig.Defaults.DefaultCondition
}

// MapCategory maps a category path to an eBay category id.
func MapCategory(category string) string {
	if mapped, ok := categoryConfig.CategoryMappings[strings.TrimSpace(category)]; ok {
		return mapped
	}
	return categoryConfig.Defaults.DefaultCategory
}
