package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/application/ticket/usecases"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/utils"
)

// UseCases groups the ticket executors served by TicketHandler.
type UseCases struct {
	Create       usecases.CreateTicketExecutor
	Update       usecases.UpdateTicketExecutor
	ChangeStatus usecases.ChangeStatusExecutor
	Assign       usecases.AssignTicketExecutor
	Search       usecases.SearchTicketsExecutor
	GetDetails   usecases.GetTicketDetailsExecutor
	GetHistory   usecases.GetTicketHistoryExecutor
	AddTag       usecases.AddTagExecutor
	RemoveTag    usecases.RemoveTagExecutor
	AddComment   usecases.AddCommentExecutor
}

type TicketHandler struct {
	uc     UseCases
	logger logger.Interface
}

func NewTicketHandler(uc UseCases, logger logger.Interface) *TicketHandler {
	return &TicketHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateTicket handles POST /tickets
// @Summary Create a ticket
// @Description Generates the next project key and suggests a branch name
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateTicketRequest true "Ticket"
// @Success 201 {object} utils.APIResponse{data=dto.CreateTicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// SearchTickets handles GET /tickets/search
// @Summary Search tickets
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param query query string false "Text matched against title, description and key"
// @Param status query string false "Status"
// @Param type query string false "Type"
// @Param priority query string false "Priority"
// @Param assigneeId query int false "Assignee"
// @Param creatorId query int false "Creator"
// @Param sprintId query int false "Sprint"
// @Param minPoints query int false "Minimum points"
// @Param maxPoints query int false "Maximum points"
// @Param isBlocked query bool false "Blocked flag"
// @Param sortBy query string false "createdAt, updatedAt, difficultyPoints or key"
// @Param sortOrder query string false "ASC or DESC"
// @Param page query int false "Page"
// @Param limit query int false "Page size (1..1000)"
// @Success 200 {object} utils.APIResponse{data=dto.SearchResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/search [get]
func (h *TicketHandler) SearchTickets(c *gin.Context) {
	q, err := parseSearchQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Search.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTicket handles GET /tickets/:id
// @Summary Ticket details
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDetailsDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.GetDetails.Execute(c.Request.Context(), usecases.GetTicketDetailsQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTicket handles PUT /tickets/:id
// @Summary Update ticket fields
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body UpdateTicketRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id} [put]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Update.Execute(c.Request.Context(), req.ToCommand(ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// ChangeStatus handles PATCH /tickets/:id/status
// @Summary Move a ticket through the workflow
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body ChangeStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse{data=dto.ChangeStatusDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/status [patch]
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.ChangeStatus.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID:  ticketID,
		NewStatus: req.Status,
		ChangedBy: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// AssignTicket handles PATCH /tickets/:id/assign
// @Summary Assign or unassign a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AssignTicketRequest true "Assignee, null to unassign"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/assign [patch]
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Assign.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		TicketID:   ticketID,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	msg := "Ticket assigned successfully"
	if req.AssigneeID == nil {
		msg = "Ticket unassigned successfully"
	}
	utils.SuccessResponse(c, http.StatusOK, msg, result)
}

// GetHistory handles GET /tickets/:id/history
// @Summary Status history
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.HistoryDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/history [get]
func (h *TicketHandler) GetHistory(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.GetHistory.Execute(c.Request.Context(), usecases.GetTicketHistoryQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AddTag handles POST /tickets/:id/tags
// @Summary Tag a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AddTagRequest true "Tag"
// @Success 201 {object} utils.APIResponse{data=dto.TagDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/tags [post]
func (h *TicketHandler) AddTag(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddTagRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.AddTag.Execute(c.Request.Context(), usecases.AddTagCommand{
		TicketID: ticketID,
		Content:  req.Content,
		Color:    req.Color,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Tag added successfully")
}

// RemoveTag handles DELETE /tickets/:id/tags/:tagId
// @Summary Remove a tag from a ticket
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param tagId path int true "Tag ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/tags/{tagId} [delete]
func (h *TicketHandler) RemoveTag(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	tagID, err := utils.ParseUintParam(c, "tagId", "tag")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.RemoveTag.Execute(c.Request.Context(), usecases.RemoveTagCommand{
		TicketID: ticketID,
		TagID:    tagID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// AddComment handles POST /tickets/:id/comments
// @Summary Comment on a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AddCommentRequest true "Comment"
// @Success 201 {object} utils.APIResponse{data=dto.CommentDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.AddComment.Execute(c.Request.Context(), usecases.AddCommentCommand{
		TicketID:    ticketID,
		UserID:      userID,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}
