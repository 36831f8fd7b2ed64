package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/application/dashboard/usecases"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/utils"
)

type DashboardHandler struct {
	personalUC usecases.PersonalDashboardExecutor
	projectUC  usecases.ProjectDashboardExecutor
	logger     logger.Interface
}

func NewDashboardHandler(
	personalUC usecases.PersonalDashboardExecutor,
	projectUC usecases.ProjectDashboardExecutor,
	logger logger.Interface,
) *DashboardHandler {
	return &DashboardHandler{
		personalUC: personalUC,
		projectUC:  projectUC,
		logger:     logger,
	}
}

// GetPersonalDashboard handles GET /dashboard
// @Summary Personal dashboard
// @Description Deployments, team activity, pending tests, the caller's tickets and alerts
// @Tags Dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=dto.PersonalDashboardDTO}
// @Router /dashboard [get]
func (h *DashboardHandler) GetPersonalDashboard(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.personalUC.Execute(c.Request.Context(), usecases.GetPersonalDashboardQuery{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetProjectDashboard handles GET /dashboard/project
// @Summary Project dashboard
// @Tags Dashboard
// @Produce json
// @Security Bearer
// @Param includeTrends query bool false "Include 12 week trends"
// @Success 200 {object} utils.APIResponse{data=dto.ProjectDashboardDTO}
// @Router /dashboard/project [get]
func (h *DashboardHandler) GetProjectDashboard(c *gin.Context) {
	includeTrends := false
	if raw := c.Query("includeTrends"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewFieldValidationError("includeTrends", "includeTrends must be a boolean"))
			return
		}
		includeTrends = v
	}

	result, err := h.projectUC.Execute(c.Request.Context(), usecases.GetProjectDashboardQuery{IncludeTrends: includeTrends})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
