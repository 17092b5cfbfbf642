package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/runwayrivets/pictopost-api/internal/dto"
	"github.com/runwayrivets/pictopost-api/internal/service"
)

// ListingHandler handles the listing generation and publishing workflow
type ListingHandler struct {
	listingService service.ListingService
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingService service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// Generate runs AI generation over staged drafts and stores the result
// @Summary Generate a listing from staged draft images
// @Tags listings
// @Accept json
// @Produce json
// @Param request body dto.GenerateListingRequest true "Generation request"
// @Success 200 {object} dto.ListingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/listings/generate [post]
func (h *ListingHandler) Generate(c *gin.Context) {
	var req dto.GenerateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	listing, err := h.listingService.Generate(c.Request.Context(), c.Param("user_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListingResponse{Success: true, Listing: listing})
}

// List returns the user's listings, newest first
// @Summary List a user's listings
// @Tags listings
// @Produce json
// @Success 200 {object} dto.ListingListResponse
// @Router /users/{user_id}/listings [get]
func (h *ListingHandler) List(c *gin.Context) {
	listings, err := h.listingService.List(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListingListResponse{
		Success:  true,
		Listings: listings,
		Count:    len(listings),
	})
}

// Get returns one listing owned by the user
// @Summary Get a listing
// @Tags listings
// @Produce json
// @Success 200 {object} dto.ListingResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/listings/{listing_id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.listingService.Get(c.Request.Context(), c.Param("user_id"), c.Param("listing_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListingResponse{Success: true, Listing: listing})
}

// Delete removes one listing owned by the user
// @Summary Delete a listing
// @Tags listings
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/listings/{listing_id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	err := h.listingService.Delete(c.Request.Context(), c.Param("user_id"), c.Param("listing_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "listing deleted"})
}

// Publish pushes a draft listing to eBay
// @Summary Publish a listing to eBay
// @Tags listings
// @Produce json
// @Success 200 {object} dto.PublishResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/listings/{listing_id}/publish [post]
func (h *ListingHandler) Publish(c *gin.Context) {
	listing, err := h.listingService.Publish(c.Request.Context(), c.Param("user_id"), c.Param("listing_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	ebayID := ""
	if listing.EBayListingID != nil {
		ebayID = *listing.EBayListingID
	}
	c.JSON(http.StatusOK, dto.PublishResponse{
		Success:       true,
		ListingID:     listing.ID,
		EBayListingID: ebayID,
		Status:        string(listing.Status),
	})
}
