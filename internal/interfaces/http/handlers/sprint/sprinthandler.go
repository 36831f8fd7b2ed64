package sprint

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/application/sprint/usecases"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/utils"
)

// UseCases groups the sprint executors served by SprintHandler.
type UseCases struct {
	Create        usecases.CreateSprintExecutor
	List          usecases.ListSprintsExecutor
	GetDetails    usecases.GetSprintDetailsExecutor
	AddTickets    usecases.AddTicketsExecutor
	RemoveTickets usecases.RemoveTicketsExecutor
	Close         usecases.CloseSprintExecutor
	Burndown      usecases.GetBurndownExecutor
	ExportReport  usecases.ExportReportExecutor
}

type SprintHandler struct {
	uc     UseCases
	logger logger.Interface
}

func NewSprintHandler(uc UseCases, logger logger.Interface) *SprintHandler {
	return &SprintHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateSprint handles POST /sprints
// @Summary Create a sprint
// @Tags Sprints
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateSprintRequest true "Sprint"
// @Success 201 {object} utils.APIResponse{data=dto.SprintDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /sprints [post]
func (h *SprintHandler) CreateSprint(c *gin.Context) {
	var req CreateSprintRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), usecases.CreateSprintCommand{
		Name:      req.Name,
		MaxPoints: req.MaxPoints,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Sprint created successfully")
}

// ListSprints handles GET /sprints
// @Summary List sprints
// @Tags Sprints
// @Produce json
// @Security Bearer
// @Param includeClosed query bool false "Include closed sprints (default true)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=dto.SprintListDTO}
// @Router /sprints [get]
func (h *SprintHandler) ListSprints(c *gin.Context) {
	q, err := parseListQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.List.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetSprint handles GET /sprints/:id
// @Summary Sprint details
// @Tags Sprints
// @Produce json
// @Security Bearer
// @Param id path int true "Sprint ID"
// @Success 200 {object} utils.APIResponse{data=dto.SprintDetailsDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /sprints/{id} [get]
func (h *SprintHandler) GetSprint(c *gin.Context) {
	sprintID, err := parseSprintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.GetDetails.Execute(c.Request.Context(), usecases.GetSprintDetailsQuery{SprintID: sprintID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AddTickets handles POST /sprints/:id/tickets
// @Summary Add tickets to a sprint
// @Description Rejected as a whole when the new tickets exceed the remaining capacity
// @Tags Sprints
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Sprint ID"
// @Param request body SprintTicketsRequest true "Ticket IDs"
// @Success 200 {object} utils.APIResponse{data=dto.AddTicketsDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /sprints/{id}/tickets [post]
func (h *SprintHandler) AddTickets(c *gin.Context) {
	sprintID, err := parseSprintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SprintTicketsRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.AddTickets.Execute(c.Request.Context(), usecases.AddTicketsCommand{
		SprintID:  sprintID,
		TicketIDs: req.TicketIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// RemoveTickets handles DELETE /sprints/:id/tickets
// @Summary Remove tickets from a sprint
// @Tags Sprints
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Sprint ID"
// @Param request body SprintTicketsRequest true "Ticket IDs"
// @Success 200 {object} utils.APIResponse{data=dto.RemoveTicketsDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /sprints/{id}/tickets [delete]
func (h *SprintHandler) RemoveTickets(c *gin.Context) {
	sprintID, err := parseSprintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SprintTicketsRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.RemoveTickets.Execute(c.Request.Context(), usecases.RemoveTicketsCommand{
		SprintID:  sprintID,
		TicketIDs: req.TicketIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// CloseSprint handles POST /sprints/:id/close
// @Summary Close a sprint
// @Tags Sprints
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Sprint ID"
// @Param request body CloseSprintRequest false "Incomplete ticket handling"
// @Success 200 {object} utils.APIResponse{data=dto.CloseSprintDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /sprints/{id}/close [post]
func (h *SprintHandler) CloseSprint(c *gin.Context) {
	sprintID, err := parseSprintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CloseSprintRequest
	if c.Request.ContentLength != 0 {
		if err := utils.BindJSON(c, &req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	result, err := h.uc.Close.Execute(c.Request.Context(), usecases.CloseSprintCommand{
		SprintID:         sprintID,
		MoveIncompleteTo: req.MoveIncompleteTo,
		RemoveIncomplete: req.RemoveIncomplete,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// GetBurndown handles GET /sprints/:id/burndown
// @Summary Sprint burndown and projection
// @Tags Sprints
// @Produce json
// @Security Bearer
// @Param id path int true "Sprint ID"
// @Success 200 {object} utils.APIResponse{data=dto.BurndownDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /sprints/{id}/burndown [get]
func (h *SprintHandler) GetBurndown(c *gin.Context) {
	sprintID, err := parseSprintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Burndown.Execute(c.Request.Context(), usecases.GetBurndownQuery{SprintID: sprintID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ExportReport handles GET /sprints/:id/report.xlsx
// @Summary Download the sprint report workbook
// @Tags Sprints
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security Bearer
// @Param id path int true "Sprint ID"
// @Success 200 {file} file
// @Failure 400 {object} utils.APIResponse
// @Router /sprints/{id}/report.xlsx [get]
func (h *SprintHandler) ExportReport(c *gin.Context) {
	sprintID, err := parseSprintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	file, err := h.uc.ExportReport.Execute(c.Request.Context(), usecases.ExportReportQuery{SprintID: sprintID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
