package mappers

import (
	"fmt"

	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	vo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	HistoryToModel(h *ticket.History) *models.TicketHistoryModel
	HistoryToDomain(model *models.TicketHistoryModel) (*ticket.History, error)
	TagToModel(tag *ticket.Tag) *models.TagModel
	TagToDomain(model *models.TagModel) *ticket.Tag
	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
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
		BlockedAt:        toMillisPtr(t.BlockedAt()),
		Branch:           t.Branch(),
		PullRequestLink:  t.PullRequestLink(),
		TestLink:         t.TestLink(),
		CreatorID:        t.CreatorID(),
		AssigneeID:       t.AssigneeID(),
		SprintID:         t.SprintID(),
		CreatedAt:        toMillis(t.CreatedAt()),
		UpdatedAt:        toMillis(t.UpdatedAt()),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	t, err := ticket.ReconstructTicket(ticket.State{
		ID:               model.ID,
		Key:              model.Key,
		Title:            model.Title,
		Description:      model.Description,
		Status:           vo.TicketStatus(model.Status),
		Priority:         vo.Priority(model.Priority),
		Type:             vo.TicketType(model.Type),
		DifficultyPoints: model.DifficultyPoints,
		IsBlocked:        model.IsBlocked,
		BlockedReason:    model.BlockedReason,
		BlockedAt:        fromMillisPtr(model.BlockedAt),
		Branch:           model.Branch,
		PullRequestLink:  model.PullRequestLink,
		TestLink:         model.TestLink,
		CreatorID:        model.CreatorID,
		AssigneeID:       model.AssigneeID,
		SprintID:         model.SprintID,
		CreatedAt:        fromMillis(model.CreatedAt),
		UpdatedAt:        fromMillis(model.UpdatedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket (id=%d): %w", model.ID, err)
	}
	return t, nil
}

func (m *TicketMapperImpl) HistoryToModel(h *ticket.History) *models.TicketHistoryModel {
	model := &models.TicketHistoryModel{
		ID:              h.ID(),
		TicketID:        h.TicketID(),
		ToStatus:        h.ToStatus().String(),
		ChangedBy:       h.ChangedBy(),
		StartedAt:       toMillisPtr(h.StartedAt()),
		CompletedAt:     toMillis(h.CompletedAt()),
		DurationSeconds: h.DurationSeconds(),
	}
	if from := h.FromStatus(); from != nil {
		s := from.String()
		model.FromStatus = &s
	}
	return model
}

func (m *TicketMapperImpl) HistoryToDomain(model *models.TicketHistoryModel) (*ticket.History, error) {
	to, err := vo.NewTicketStatus(model.ToStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid history row (id=%d): %w", model.ID, err)
	}
	var from *vo.TicketStatus
	if model.FromStatus != nil {
		s, err := vo.NewTicketStatus(*model.FromStatus)
		if err != nil {
			return nil, fmt.Errorf("invalid history row (id=%d): %w", model.ID, err)
		}
		from = &s
	}
	return ticket.ReconstructHistory(
		model.ID,
		model.TicketID,
		from,
		to,
		model.ChangedBy,
		fromMillisPtr(model.StartedAt),
		fromMillis(model.CompletedAt),
		model.DurationSeconds,
	), nil
}

func (m *TicketMapperImpl) TagToModel(tag *ticket.Tag) *models.TagModel {
	return &models.TagModel{
		ID:        tag.ID(),
		TicketID:  tag.TicketID(),
		Content:   tag.Content(),
		Color:     tag.Color(),
		CreatedAt: toMillis(tag.CreatedAt()),
	}
}

func (m *TicketMapperImpl) TagToDomain(model *models.TagModel) *ticket.Tag {
	return ticket.ReconstructTag(model.ID, model.TicketID, model.Content, model.Color, fromMillis(model.CreatedAt))
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:          c.ID(),
		TicketID:    c.TicketID(),
		UserID:      c.UserID(),
		Description: c.Description(),
		CreatedAt:   toMillis(c.CreatedAt()),
		UpdatedAt:   toMillis(c.UpdatedAt()),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.UserID,
		model.Description,
		fromMillis(model.CreatedAt),
		fromMillis(model.UpdatedAt),
	)
}
