package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/runwayrivets/pictopost-api/internal/domain"
	"github.com/runwayrivets/pictopost-api/internal/dto"
	"github.com/runwayrivets/pictopost-api/internal/service"
)

// UserHandler handles account and configuration requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		Success:     true,
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		AIProvider:  user.AIProvider,
		Preferences: user.Preferences,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   user.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateOrFetch handles idempotent user setup
// @Summary Create a user or return the existing one
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User setup request"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateOrFetch(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.userService.CreateOrFetch(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// Get returns a user's profile without any secrets
// @Summary Get a user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// Delete removes a user and everything attached to it
// @Summary Delete a user
// @Tags users
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("user_id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "user deleted"})
}

// UpdatePreferences replaces the user's preferences
// @Summary Update user preferences
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/preferences [put]
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	err := h.userService.UpdatePreferences(c.Request.Context(), c.Param("user_id"), req.Preferences)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "preferences updated"})
}

// SetEBayCredentials stores the user's eBay application credentials
// @Summary Store eBay credentials
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.SetEBayCredentialsRequest true "eBay credentials"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/ebay-credentials [post]
func (h *UserHandler) SetEBayCredentials(c *gin.Context) {
	var req dto.SetEBayCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	creds := domain.EBayCredentials{
		AppID:        req.AppID,
		CertID:       req.CertID,
		DevID:        req.DevID,
		RefreshToken: req.RefreshToken,
	}
	if err := h.userService.SetEBayCredentials(c.Request.Context(), c.Param("user_id"), creds); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "ebay credentials stored"})
}

// Stats returns listing counts and 30-day AI usage
// @Summary Get usage statistics
// @Tags users
// @Produce json
// @Success 200 {object} dto.UsageStatsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/stats [get]
func (h *UserHandler) Stats(c *gin.Context) {
	userID := c.Param("user_id")

	stats, err := h.userService.UsageStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UsageStatsResponse{
		Success: true,
		UserID:  userID,
		Stats:   stats,
	})
}

// AIUsage lists the user's recent AI usage records
func (h *UserHandler) AIUsage(c *gin.Context) {
	records, err := h.userService.RecentAIUsage(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AIUsageListResponse{
		Success: true,
		Records: records,
		Count:   len(records),
	})
}
