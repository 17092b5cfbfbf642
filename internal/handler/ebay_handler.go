package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/runwayrivets/pictopost-api/internal/ebay"
)

// EBayHandler serves static eBay configuration data
type EBayHandler struct{}

// NewEBayHandler creates a new eBay handler
func NewEBayHandler() *EBayHandler {
	return &EBayHandler{}
}

// Categories returns the category and condition mappings used when publishing
// @Summary Get eBay category and condition mappings
// @Tags ebay
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ebay/categories [get]
func (h *EBayHandler) Categories(c *gin.Context) {
	cfg := ebay.Categories()
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"category_mappings":  cfg.CategoryMappings,
		"condition_mappings": cfg.ConditionMappings,
		"defaults":           cfg.Defaults,
	})
}
