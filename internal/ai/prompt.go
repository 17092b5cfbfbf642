package ai

import (
	"strings"

	"github.com/lithammer/dedent"
)

// GeneratedListing is the structured result every provider is asked to
// produce. Field names mirror the JSON keys demanded by the prompt.
type GeneratedListing struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	Category             string `json:"category"`
	Condition            string `json:"condition"`
	EstimatedPrice       string `json:"estimated_price"`
	Brand                string `json:"brand"`
	ItemType             string `json:"item_type"`
	Material             string `json:"material"`
	Color                string `json:"color"`
	CountryOfManufacture string `json:"country_of_manufacture"`
	SuggestedPhotoNotes  string `json:"suggested_photo_notes"`
}

var listingPromptTemplate = dedent.Dedent(`
	Analyze these images of an item for sale on eBay. Provide:
	1. Item title (max 80 characters, include brand and model if visible)
	2. Detailed description (2-3 paragraphs)
	3. Suggested eBay category
	4. Estimated condition (New, Very Good, Good, Fair, Poor)
	5. Estimated market value range in USD
	6. Brand name (if identifiable, empty string otherwise)
	7. Item type
	8. Material (if identifiable)
	9. Color description
	10. Country of manufacture (if identifiable)
	11. Notes on additional photos that would help the listing

	Respond ONLY with a JSON object using these exact keys: title, description,
	category, condition, estimated_price, brand, item_type, material, color,
	country_of_manufacture, suggested_photo_notes. No markdown, no other text.`)

// BuildPrompt assembles the fixed listing prompt, appending the user's hint
// when present.
func BuildPrompt(userMessage string) string {
	prompt := strings.TrimSpace(listingPromptTemplate)
	if userMessage != "" {
		prompt += "\n\nAdditional context from the seller: " + userMessage
	}
	return prompt
}
