package dto

import (
	"time"

	imagedto "github.com/XavierPelle/sprintly/internal/application/image/dto"
	qadto "github.com/XavierPelle/sprintly/internal/application/qa/dto"
	userdto "github.com/XavierPelle/sprintly/internal/application/user/dto"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/shared/mapper"
)

type TicketDTO struct {
	ID               uint       `json:"id"`
	Key              string     `json:"key"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	Type             string     `json:"type"`
	DifficultyPoints int        `json:"difficultyPoints"`
	IsBlocked        bool       `json:"isBlocked"`
	BlockedReason    string     `json:"blockedReason,omitempty"`
	BlockedAt        *time.Time `json:"blockedAt,omitempty"`
	Branch           string     `json:"branch,omitempty"`
	PullRequestLink  string     `json:"pullRequestLink,omitempty"`
	TestLink         string     `json:"testLink,omitempty"`
	CreatorID        uint       `json:"creatorId"`
	AssigneeID       *uint      `json:"assigneeId"`
	SprintID         *uint      `json:"sprintId"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type HistoryDTO struct {
	ID              uint       `json:"id"`
	TicketID        uint       `json:"ticketId"`
	FromStatus      *string    `json:"fromStatus"`
	ToStatus        string     `json:"toStatus"`
	ChangedBy       *uint      `json:"changedBy"`
	StartedAt       *time.Time `json:"startedAt"`
	CompletedAt     time.Time  `json:"completedAt"`
	DurationSeconds *int64     `json:"durationSeconds"`
}

type TagDTO struct {
	ID        uint      `json:"id"`
	TicketID  uint      `json:"ticketId"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentDTO struct {
	ID          uint                    `json:"id"`
	TicketID    uint                    `json:"ticketId"`
	UserID      uint                    `json:"userId"`
	Description string                  `json:"description"`
	Author      *userdto.UserSummaryDTO `json:"author,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

type SprintRefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TicketStatsDTO struct {
	TotalComments  int `json:"totalComments"`
	TotalTests     int `json:"totalTests"`
	ValidatedTests int `json:"validatedTests"`
	TotalImages    int `json:"totalImages"`
}

type TicketDetailsDTO struct {
	Ticket          *TicketDTO              `json:"ticket"`
	DescriptionHTML string                  `json:"descriptionHtml"`
	Creator         *userdto.UserSummaryDTO `json:"creator"`
	Assignee        *userdto.UserSummaryDTO `json:"assignee"`
	Sprint          *SprintRefDTO           `json:"sprint"`
	Images          []*imagedto.ImageDTO    `json:"images"`
	Comments        []*CommentDTO           `json:"comments"`
	Tests           []*qadto.TestDTO        `json:"tests"`
	Tags            []*TagDTO               `json:"tags"`
	Stats           TicketStatsDTO          `json:"stats"`
}

type CreateTicketDTO struct {
	Ticket          *TicketDTO `json:"ticket"`
	SuggestedBranch string     `json:"suggestedBranch"`
}

type ChangeStatusDTO struct {
	TicketID        uint   `json:"ticketId"`
	TicketKey       string `json:"ticketKey"`
	PreviousStatus  string `json:"previousStatus"`
	NewStatus       string `json:"newStatus"`
	HistoryID       uint   `json:"historyId"`
	DurationSeconds *int64 `json:"durationSeconds"`
	TestLink        string `json:"testLink,omitempty"`
	Message         string `json:"message"`
}

type SearchResultDTO struct {
	Tickets    []*TicketDTO  `json:"tickets"`
	Pagination PaginationDTO `json:"pagination"`
}

type PaginationDTO struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

func NewPagination(page, limit int, total int64) PaginationDTO {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PaginationDTO{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		ID:               t.ID(),
		Key:              t.Key(),
		Title:            t.Title(),
		Description:      t.Description(),
		Status:           t.Status().String(),
		Priority:         t.Priority().String(),
		Type:             t.Type().String(),
		DifficultyPoints: t.DifficultyPoints(),
		IsBlocked:        t.IsBlocked(),
		BlockedReason:    t.BlockedReason(),
		BlockedAt:        t.BlockedAt(),
		Branch:           t.Branch(),
		PullRequestLink:  t.PullRequestLink(),
		TestLink:         t.TestLink(),
		CreatorID:        t.CreatorID(),
		AssigneeID:       t.AssigneeID(),
		SprintID:         t.SprintID(),
		CreatedAt:        t.CreatedAt(),
		UpdatedAt:        t.UpdatedAt(),
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket) []*TicketDTO {
	out := mapper.MapSlice(tickets, ToTicketDTO)
	if out == nil {
		return []*TicketDTO{}
	}
	return out
}

func ToHistoryDTO(h *ticket.History) *HistoryDTO {
	out := &HistoryDTO{
		ID:              h.ID(),
		TicketID:        h.TicketID(),
		ToStatus:        h.ToStatus().String(),
		ChangedBy:       h.ChangedBy(),
		StartedAt:       h.StartedAt(),
		CompletedAt:     h.CompletedAt(),
		DurationSeconds: h.DurationSeconds(),
	}
	if from := h.FromStatus(); from != nil {
		s := from.String()
		out.FromStatus = &s
	}
	return out
}

func ToTagDTO(t *ticket.Tag) *TagDTO {
	return &TagDTO{
		ID:        t.ID(),
		TicketID:  t.TicketID(),
		Content:   t.Content(),
		Color:     t.Color(),
		CreatedAt: t.CreatedAt(),
	}
}

func ToCommentDTO(c *ticket.Comment) *CommentDTO {
	return &CommentDTO{
		ID:          c.ID(),
		TicketID:    c.TicketID(),
		UserID:      c.UserID(),
		Description: c.Description(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}
