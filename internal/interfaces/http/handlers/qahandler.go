package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/application/qa/usecases"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/utils"
)

type CreateTestRequest struct {
	Description string `json:"description" validate:"required,max=5000"`
}

type ValidateTestRequest struct {
	IsValidated *bool `json:"isValidated" validate:"required"`
}

type QAHandler struct {
	createTestUC   usecases.CreateTestExecutor
	validateTestUC usecases.ValidateTestExecutor
	logger         logger.Interface
}

func NewQAHandler(createTestUC usecases.CreateTestExecutor, validateTestUC usecases.ValidateTestExecutor, logger logger.Interface) *QAHandler {
	return &QAHandler{
		createTestUC:   createTestUC,
		validateTestUC: validateTestUC,
		logger:         logger,
	}
}

// CreateTest handles POST /tickets/:id/tests
// @Summary Add a QA test to a ticket
// @Tags Tests
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body CreateTestRequest true "Test"
// @Success 201 {object} utils.APIResponse{data=dto.TestDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/tests [post]
func (h *QAHandler) CreateTest(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateTestRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTestUC.Execute(c.Request.Context(), usecases.CreateTestCommand{
		TicketID:    ticketID,
		UserID:      userID,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Test created successfully")
}

// ValidateTest handles PATCH /tests/:id/validate
// @Summary Validate or reject a QA test
// @Tags Tests
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Test ID"
// @Param request body ValidateTestRequest true "Verdict"
// @Success 200 {object} utils.APIResponse{data=dto.ValidateTestDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tests/{id}/validate [patch]
func (h *QAHandler) ValidateTest(c *gin.Context) {
	testID, err := utils.ParseUintParam(c, "id", "test")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	reviewerID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ValidateTestRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.validateTestUC.Execute(c.Request.Context(), usecases.ValidateTestCommand{
		TestID:      testID,
		IsValidated: *req.IsValidated,
		ReviewerID:  reviewerID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}
