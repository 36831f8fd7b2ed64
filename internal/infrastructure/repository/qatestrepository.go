package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/XavierPelle/sprintly/internal/domain/qa"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/mappers"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/models"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type QATestRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewQATestRepository(db *gorm.DB, logger logger.Interface) *QATestRepository {
	return &QATestRepository{db: db, logger: logger}
}

func (r *QATestRepository) Create(ctx context.Context, t *qa.Test) error {
	model := mappers.QATestToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create test", "ticket_id", model.TicketID, "error", err)
		return fmt.Errorf("failed to create test: %w", err)
	}

	t.SetID(model.ID)
	return nil
}

func (r *QATestRepository) Update(ctx context.Context, t *qa.Test) error {
	model := mappers.QATestToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.QATestModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update test", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update test: %w", result.Error)
	}
	return nil
}

func (r *QATestRepository) GetByID(ctx context.Context, id uint) (*qa.Test, error) {
	var model models.QATestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get test by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get test: %w", err)
	}

	return mappers.QATestToDomain(&model), nil
}

func (r *QATestRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*qa.Test, error) {
	var testModels []models.QATestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).Order("created_at ASC").Order("id ASC").Find(&testModels).Error; err != nil {
		r.logger.Errorw("failed to list tests", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	return toQATests(testModels), nil
}

func (r *QATestRepository) ListAll(ctx context.Context) ([]*qa.Test, error) {
	var testModels []models.QATestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order("id ASC").Find(&testModels).Error; err != nil {
		r.logger.Errorw("failed to list tests", "error", err)
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	return toQATests(testModels), nil
}

func toQATests(testModels []models.QATestModel) []*qa.Test {
	tests := make([]*qa.Test, len(testModels))
	for i := range testModels {
		tests[i] = mappers.QATestToDomain(&testModels[i])
	}
	return tests
}
