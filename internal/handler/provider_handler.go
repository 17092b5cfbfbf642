package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/runwayrivets/pictopost-api/internal/ai"
	"github.com/runwayrivets/pictopost-api/internal/dto"
	"github.com/runwayrivets/pictopost-api/internal/service"
)

// ProviderHandler handles AI provider discovery, key validation and per-user
// provider configuration
type ProviderHandler struct {
	userService service.UserService
	gateway     *ai.Gateway
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(userService service.UserService, gateway *ai.Gateway) *ProviderHandler {
	return &ProviderHandler{userService: userService, gateway: gateway}
}

// List returns the supported AI providers
// @Summary List supported AI providers
// @Tags providers
// @Produce json
// @Success 200 {object} dto.ProviderListResponse
// @Router /ai/providers [get]
func (h *ProviderHandler) List(c *gin.Context) {
	providers := ai.ListProviders()
	infos := make([]dto.ProviderInfo, 0, len(providers))
	for _, p := range providers {
		infos = append(infos, dto.ProviderInfo{
			ID:          p.ID,
			Name:        p.Name,
			Model:       p.Model,
			SetupURL:    p.SetupURL,
			KeyFormat:   p.KeyFormatHint,
			PricingInfo: p.PricingInfo,
			DailyLimit:  p.DailyLimit,
		})
	}

	c.JSON(http.StatusOK, dto.ProviderListResponse{
		Success:   true,
		Providers: infos,
		Count:     len(infos),
	})
}

// ValidateKey checks a key's format without contacting the provider
// @Summary Validate an API key's format
// @Tags providers
// @Accept json
// @Produce json
// @Param request body dto.ValidateKeyRequest true "Key to validate"
// @Success 200 {object} dto.ValidateKeyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /ai/validate [post]
func (h *ProviderHandler) ValidateKey(c *gin.Context) {
	var req dto.ValidateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	if _, ok := ai.GetProvider(req.Provider); !ok {
		respondError(c, ai.ErrUnsupportedProvider)
		return
	}

	resp := dto.ValidateKeyResponse{
		Success:  true,
		Provider: req.Provider,
		IsValid:  true,
		Message:  "key format looks valid",
	}
	if err := ai.ValidateKeyFormat(req.Provider, req.APIKey); err != nil {
		resp.IsValid = false
		resp.Message = err.Error()
	}

	c.JSON(http.StatusOK, resp)
}

// ValidateKeyLive checks a key against the provider's API. The attempt is
// recorded in the user's AI usage history whether it passes or not.
// @Summary Validate an API key against the provider
// @Tags providers
// @Accept json
// @Produce json
// @Param request body dto.ValidateKeyLiveRequest true "Key to validate"
// @Success 200 {object} dto.ValidateKeyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /ai/validate-live [post]
func (h *ProviderHandler) ValidateKeyLive(c *gin.Context) {
	var req dto.ValidateKeyLiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	resp := dto.ValidateKeyResponse{
		Success:  true,
		Provider: req.Provider,
		IsValid:  true,
		Message:  "key accepted by the provider",
	}
	err := h.gateway.ValidateKeyLive(c.Request.Context(), req.UserID, req.Provider, req.APIKey)
	if errors.Is(err, ai.ErrUnsupportedProvider) {
		respondError(c, err)
		return
	}
	if err != nil {
		resp.IsValid = false
		resp.Message = err.Error()
	}

	c.JSON(http.StatusOK, resp)
}

// SetAIProvider stores a user's provider choice and encrypted key
// @Summary Configure a user's AI provider
// @Tags providers
// @Accept json
// @Produce json
// @Param request body dto.SetAIProviderRequest true "Provider and key"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/ai-provider [post]
func (h *ProviderHandler) SetAIProvider(c *gin.Context) {
	var req dto.SetAIProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	err := h.userService.SetAIProvider(c.Request.Context(), c.Param("user_id"), req.Provider, req.APIKey)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "ai provider configured"})
}

// ClearAIProvider removes a user's provider configuration and stored key
// @Summary Clear a user's AI provider
// @Tags providers
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/ai-provider [delete]
func (h *ProviderHandler) ClearAIProvider(c *gin.Context) {
	if err := h.userService.ClearAIProvider(c.Request.Context(), c.Param("user_id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "ai provider cleared"})
}

// GetAIProvider reports a user's configured provider, never the key
// @Summary Get a user's configured AI provider
// @Tags providers
// @Produce json
// @Success 200 {object} dto.AIProviderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/ai-provider [get]
func (h *ProviderHandler) GetAIProvider(c *gin.Context) {
	userID := c.Param("user_id")

	provider, err := h.userService.GetAIProvider(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AIProviderResponse{
		Success:  true,
		UserID:   userID,
		Provider: provider,
	})
}
