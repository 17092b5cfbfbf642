package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/runwayrivets/pictopost-api/internal/dto"
	"github.com/runwayrivets/pictopost-api/internal/service"
)

// DraftHandler handles draft image staging requests
type DraftHandler struct {
	draftService service.DraftService
	maxDrafts    int
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService service.DraftService, maxDrafts int) *DraftHandler {
	return &DraftHandler{draftService: draftService, maxDrafts: maxDrafts}
}

// Upload stages item photos for later listing generation
// @Summary Upload draft images
// @Tags drafts
// @Accept multipart/form-data
// @Produce json
// @Param images formData file true "Item photos"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /users/{user_id}/drafts [post]
func (h *DraftHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		// Single-file clients post under "image"
		files = form.File["image"]
	}

	resp, err := h.draftService.Upload(c.Request.Context(), c.Param("user_id"), files)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List returns the user's staged drafts
// @Summary List staged draft images
// @Tags drafts
// @Produce json
// @Success 200 {object} dto.DraftListResponse
// @Router /users/{user_id}/drafts [get]
func (h *DraftHandler) List(c *gin.Context) {
	drafts, err := h.draftService.List(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DraftListResponse{
		Success:    true,
		Drafts:     drafts,
		Count:      len(drafts),
		MaxAllowed: h.maxDrafts,
	})
}

// Serve streams a staged draft image back to the client
// @Summary Download a staged draft image
// @Tags drafts
// @Produce octet-stream
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/drafts/{filename} [get]
func (h *DraftHandler) Serve(c *gin.Context) {
	path, err := h.draftService.Path(c.Param("user_id"), c.Param("filename"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.File(path)
}

// Delete removes one staged draft
// @Summary Delete a staged draft image
// @Tags drafts
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id}/drafts/{filename} [delete]
func (h *DraftHandler) Delete(c *gin.Context) {
	err := h.draftService.Delete(c.Request.Context(), c.Param("user_id"), c.Param("filename"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "draft deleted"})
}
