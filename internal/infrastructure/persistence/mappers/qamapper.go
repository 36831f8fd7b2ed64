package mappers

import (
	"github.com/XavierPelle/sprintly/internal/domain/qa"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/models"
)

func QATestToModel(t *qa.Test) *models.QATestModel {
	return &models.QATestModel{
		ID:          t.ID(),
		TicketID:    t.TicketID(),
		UserID:      t.UserID(),
		Description: t.Description(),
		IsValidated: t.IsValidated(),
		ValidatedBy: t.ValidatedBy(),
		CreatedAt:   toMillis(t.CreatedAt()),
		UpdatedAt:   toMillis(t.UpdatedAt()),
	}
}

func QATestToDomain(model *models.QATestModel) *qa.Test {
	return qa.ReconstructTest(
		model.ID,
		model.TicketID,
		model.UserID,
		model.Description,
		model.IsValidated,
		model.ValidatedBy,
		fromMillis(model.CreatedAt),
		fromMillis(model.UpdatedAt),
	)
}
