package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/XavierPelle/sprintly/internal/domain/image"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/mappers"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/models"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type ImageRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewImageRepository(db *gorm.DB, logger logger.Interface) *ImageRepository {
	return &ImageRepository{db: db, logger: logger}
}

func (r *ImageRepository) Create(ctx context.Context, img *image.Image) error {
	model := mappers.ImageToModel(img)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create image", "filename", model.Filename, "error", err)
		return fmt.Errorf("failed to create image: %w", err)
	}

	img.SetID(model.ID)
	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id uint) (*image.Image, error) {
	var model models.ImageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get image by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return mappers.ImageToDomain(&model), nil
}

func (r *ImageRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.ImageModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete image", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("image not found")
	}
	return nil
}

func (r *ImageRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*image.Image, error) {
	var imageModels []models.ImageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("display_order ASC").
		Order("id ASC").
		Find(&imageModels).Error; err != nil {
		r.logger.Errorw("failed to list images", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	images := make([]*image.Image, len(imageModels))
	for i := range imageModels {
		images[i] = mappers.ImageToDomain(&imageModels[i])
	}
	return images, nil
}

func (r *ImageRepository) CountByTests(ctx context.Context, testIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(testIDs))
	if len(testIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		TestID uint
		Total  int
	}
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Model(&models.ImageModel{}).
		Select("test_id, COUNT(*) AS total").
		Where("test_id IN ?", testIDs).
		Group("test_id").
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to count test images", "error", err)
		return nil, fmt.Errorf("failed to count test images: %w", err)
	}

	for _, row := range rows {
		counts[row.TestID] = row.Total
	}
	return counts, nil
}
