package sprint

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/application/sprint/usecases"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/utils"
)

type CreateSprintRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	MaxPoints int    `json:"maxPoints" validate:"gt=0"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

type SprintTicketsRequest struct {
	TicketIDs []uint `json:"ticketIds" validate:"required,min=1"`
}

// CloseSprintRequest picks what happens to unfinished tickets. With neither
// option they stay attached to the closed sprint.
type CloseSprintRequest struct {
	MoveIncompleteTo *uint `json:"moveIncompleteTo"`
	RemoveIncomplete bool  `json:"removeIncomplete"`
}

func parseSprintID(c *gin.Context) (uint, error) {
	return utils.ParseUintParam(c, "id", "sprint")
}

func parseListQuery(c *gin.Context) (usecases.ListSprintsQuery, error) {
	p := utils.ParsePagination(c)
	q := usecases.ListSprintsQuery{
		IncludeClosed: true,
		Page:          p.Page,
		Limit:         p.PageSize,
	}
	if raw := c.Query("includeClosed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return q, errors.NewFieldValidationError("includeClosed", "includeClosed must be a boolean")
		}
		q.IncludeClosed = v
	}
	return q, nil
}
