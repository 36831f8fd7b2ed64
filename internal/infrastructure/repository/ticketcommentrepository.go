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

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewCommentRepository(db *gorm.DB, logger logger.Interface) *CommentRepository {
	return &CommentRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create comment", "ticket_id", model.TicketID, "error", err)
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	var commentModels []models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&commentModels).Error; err != nil {
		r.logger.Errorw("failed to list comments", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return r.toDomainList(commentModels)
}

func (r *CommentRepository) ListAll(ctx context.Context) ([]*ticket.Comment, error) {
	var commentModels []models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order("id ASC").Find(&commentModels).Error; err != nil {
		r.logger.Errorw("failed to list comments", "error", err)
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return r.toDomainList(commentModels)
}

func (r *CommentRepository) toDomainList(commentModels []models.CommentModel) ([]*ticket.Comment, error) {
	comments := make([]*ticket.Comment, len(commentModels))
	for i := range commentModels {
		c, err := r.mapper.CommentToDomain(&commentModels[i])
		if err != nil {
			return nil, err
		}
		comments[i] = c
	}
	return comments, nil
}
