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

type TicketHistoryRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketHistoryRepository(db *gorm.DB, logger logger.Interface) *TicketHistoryRepository {
	return &TicketHistoryRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *TicketHistoryRepository) Create(ctx context.Context, h *ticket.History) error {
	model := r.mapper.HistoryToModel(h)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create ticket history", "ticket_id", model.TicketID, "error", err)
		return fmt.Errorf("failed to create ticket history: %w", err)
	}

	h.SetID(model.ID)
	return nil
}

// GetLatestByTicket returns the most recent transition of a ticket, or nil
// when the ticket has never changed status.
func (r *TicketHistoryRepository) GetLatestByTicket(ctx context.Context, ticketID uint) (*ticket.History, error) {
	var model models.TicketHistoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("completed_at DESC").
		Order("id DESC").
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get latest ticket history", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to get latest ticket history: %w", err)
	}

	return r.mapper.HistoryToDomain(&model)
}

func (r *TicketHistoryRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.History, error) {
	var historyModels []models.TicketHistoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("completed_at ASC").
		Order("id ASC").
		Find(&historyModels).Error; err != nil {
		r.logger.Errorw("failed to list ticket history", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to list ticket history: %w", err)
	}

	entries := make([]*ticket.History, len(historyModels))
	for i := range historyModels {
		h, err := r.mapper.HistoryToDomain(&historyModels[i])
		if err != nil {
			return nil, err
		}
		entries[i] = h
	}
	return entries, nil
}
