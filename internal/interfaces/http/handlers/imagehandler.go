package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/application/image/usecases"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/utils"
)

type AttachImageRequest struct {
	Type         string `json:"type" validate:"required,oneof=AVATAR TICKET_ATTACHMENT TEST_ATTACHMENT"`
	URL          string `json:"url" validate:"required,url"`
	Filename     string `json:"filename" validate:"required,max=255"`
	OriginalName string `json:"originalName" validate:"max=255"`
	MimeType     string `json:"mimeType" validate:"required"`
	Size         int64  `json:"size" validate:"gte=0"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
	UserID       *uint  `json:"userId"`
	TicketID     *uint  `json:"ticketId"`
	TestID       *uint  `json:"testId"`
}

func (r *AttachImageRequest) ToCommand() usecases.AttachImageCommand {
	return usecases.AttachImageCommand{
		Type:         r.Type,
		URL:          r.URL,
		Filename:     r.Filename,
		OriginalName: r.OriginalName,
		MimeType:     r.MimeType,
		Size:         r.Size,
		DisplayOrder: r.DisplayOrder,
		UserID:       r.UserID,
		TicketID:     r.TicketID,
		TestID:       r.TestID,
	}
}

type ImageHandler struct {
	attachUC usecases.AttachImageExecutor
	deleteUC usecases.DeleteImageExecutor
	logger   logger.Interface
}

func NewImageHandler(attachUC usecases.AttachImageExecutor, deleteUC usecases.DeleteImageExecutor, logger logger.Interface) *ImageHandler {
	return &ImageHandler{
		attachUC: attachUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

// AttachImage handles POST /images
// @Summary Record image metadata
// @Tags Images
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body AttachImageRequest true "Image metadata"
// @Success 201 {object} utils.APIResponse{data=dto.ImageDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /images [post]
func (h *ImageHandler) AttachImage(c *gin.Context) {
	var req AttachImageRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.attachUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Image attached successfully")
}

// DeleteImage handles DELETE /images/:id
// @Summary Delete image metadata
// @Tags Images
// @Produce json
// @Security Bearer
// @Param id path int true "Image ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /images/{id} [delete]
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	imageID, err := utils.ParseUintParam(c, "id", "image")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteImageCommand{ImageID: imageID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}
