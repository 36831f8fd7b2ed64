package dto

import (
	"time"

	userdto "github.com/XavierPelle/sprintly/internal/application/user/dto"
	"github.com/XavierPelle/sprintly/internal/domain/qa"
)

type TestDTO struct {
	ID          uint                    `json:"id"`
	TicketID    uint                    `json:"ticketId"`
	UserID      uint                    `json:"userId"`
	Description string                  `json:"description"`
	IsValidated bool                    `json:"isValidated"`
	ValidatedBy *uint                   `json:"validatedBy,omitempty"`
	ImageCount  int                     `json:"imageCount"`
	Author      *userdto.UserSummaryDTO `json:"author,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

type ValidateTestDTO struct {
	Test    *TestDTO `json:"test"`
	Message string   `json:"message"`
}

func ToTestDTO(t *qa.Test) *TestDTO {
	if t == nil {
		return nil
	}
	return &TestDTO{
		ID:          t.ID(),
		TicketID:    t.TicketID(),
		UserID:      t.UserID(),
		Description: t.Description(),
		IsValidated: t.IsValidated(),
		ValidatedBy: t.ValidatedBy(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}
