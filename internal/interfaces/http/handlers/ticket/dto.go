package ticket

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/application/ticket/usecases"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/utils"
)

type CreateTicketRequest struct {
	Title            string `json:"title" validate:"required,max=200"`
	Description      string `json:"description" validate:"max=20000"`
	Type             string `json:"type" validate:"required"`
	Priority         string `json:"priority" validate:"required"`
	DifficultyPoints int    `json:"difficultyPoints" validate:"gte=0,lte=100"`
	AssigneeID       *uint  `json:"assigneeId"`
	SprintID         *uint  `json:"sprintId"`
	ProjectPrefix    string `json:"projectPrefix" validate:"omitempty,keyprefix"`
}

func (r *CreateTicketRequest) ToCommand(creatorID uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:            r.Title,
		Description:      r.Description,
		Type:             r.Type,
		Priority:         r.Priority,
		DifficultyPoints: r.DifficultyPoints,
		CreatorID:        creatorID,
		AssigneeID:       r.AssigneeID,
		SprintID:         r.SprintID,
		ProjectPrefix:    r.ProjectPrefix,
	}
}

type UpdateTicketRequest struct {
	Title            *string `json:"title" validate:"omitempty,max=200"`
	Description      *string `json:"description" validate:"omitempty,max=20000"`
	Type             *string `json:"type"`
	Priority         *string `json:"priority"`
	DifficultyPoints *int    `json:"difficultyPoints" validate:"omitempty,gte=0,lte=100"`
	Branch           *string `json:"branch" validate:"omitempty,max=255"`
	PullRequestLink  *string `json:"pullRequestLink" validate:"omitempty,max=500"`
	IsBlocked        *bool   `json:"isBlocked"`
	BlockedReason    *string `json:"blockedReason" validate:"omitempty,max=500"`
}

func (r *UpdateTicketRequest) ToCommand(ticketID uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		TicketID:         ticketID,
		Title:            r.Title,
		Description:      r.Description,
		Type:             r.Type,
		Priority:         r.Priority,
		DifficultyPoints: r.DifficultyPoints,
		Branch:           r.Branch,
		PullRequestLink:  r.PullRequestLink,
		IsBlocked:        r.IsBlocked,
		BlockedReason:    r.BlockedReason,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignTicketRequest assigns the ticket; a null assigneeId unassigns it.
type AssignTicketRequest struct {
	AssigneeID *uint `json:"assigneeId"`
}

type AddTagRequest struct {
	Content string `json:"content" validate:"required,max=50"`
	Color   string `json:"color" validate:"required,hexcolor6"`
}

type AddCommentRequest struct {
	Description string `json:"description" validate:"required,max=5000"`
}

func parseTicketID(c *gin.Context) (uint, error) {
	return utils.ParseUintParam(c, "id", "ticket")
}

// parseSearchQuery reads the search filters from the query string,
// reporting every malformed parameter at once.
func parseSearchQuery(c *gin.Context) (usecases.SearchTicketsQuery, error) {
	var list errors.ErrorList

	q := usecases.SearchTicketsQuery{
		Query:     c.Query("query"),
		Status:    c.Query("status"),
		Type:      c.Query("type"),
		Priority:  c.Query("priority"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	q.Page = optionalInt(c, "page", &list)
	q.Limit = optionalInt(c, "limit", &list)
	q.AssigneeID = optionalUint(c, "assigneeId", &list)
	q.CreatorID = optionalUint(c, "creatorId", &list)
	q.SprintID = optionalUint(c, "sprintId", &list)

	if raw := c.Query("minPoints"); raw != "" {
		v := optionalInt(c, "minPoints", &list)
		q.MinPoints = &v
	}
	if raw := c.Query("maxPoints"); raw != "" {
		v := optionalInt(c, "maxPoints", &list)
		q.MaxPoints = &v
	}
	if raw := c.Query("isBlocked"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			list.Add(errors.NewFieldValidationError("isBlocked", "isBlocked must be a boolean"))
		} else {
			q.IsBlocked = &v
		}
	}

	return q, list.OrNil()
}

func optionalInt(c *gin.Context, key string, list *errors.ErrorList) int {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		list.Add(errors.NewFieldValidationError(key, fmt.Sprintf("%s must be an integer", key)))
		return 0
	}
	return v
}

func optionalUint(c *gin.Context, key string, list *errors.ErrorList) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		list.Add(errors.NewFieldValidationError(key, fmt.Sprintf("%s must be a positive integer", key)))
		return nil
	}
	id := uint(v)
	return &id
}
