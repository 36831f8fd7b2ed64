package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/mappers"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/models"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type TagRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTagRepository(db *gorm.DB, logger logger.Interface) *TagRepository {
	return &TagRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *TagRepository) Create(ctx context.Context, tag *ticket.Tag) error {
	model := r.mapper.TagToModel(tag)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create tag", "ticket_id", model.TicketID, "error", err)
		return fmt.Errorf("failed to create tag: %w", err)
	}

	tag.SetID(model.ID)
	return nil
}

func (r *TagRepository) GetByID(ctx context.Context, id uint) (*ticket.Tag, error) {
	var model models.TagModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get tag by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return r.mapper.TagToDomain(&model), nil
}

func (r *TagRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Tag, error) {
	var tagModels []models.TagModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).Order("id ASC").Find(&tagModels).Error; err != nil {
		r.logger.Errorw("failed to list tags", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := make([]*ticket.Tag, len(tagModels))
	for i := range tagModels {
		tags[i] = r.mapper.TagToDomain(&tagModels[i])
	}
	return tags, nil
}

func (r *TagRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.TagModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete tag", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("tag not found")
	}
	return nil
}
