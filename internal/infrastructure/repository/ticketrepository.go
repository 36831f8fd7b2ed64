package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/mappers"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/models"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

// ticketSortColumns maps API sort fields to columns. Anything else falls back
// to created_at so user input never reaches ORDER BY.
var ticketSortColumns = map[string]string{
	"createdAt":        "created_at",
	"updatedAt":        "updated_at",
	"difficultyPoints": "difficulty_points",
	"key":              "ticket_key",
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketRepository(db *gorm.DB, logger logger.Interface) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Debugw("ticket created", "id", model.ID, "key", model.Key)
	return nil
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") so cleared pointers and false flags are written too.
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		r.logger.Errorw("failed to update ticket", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return r.getByID(db.GetTxFromContext(ctx, r.db), id)
}

// GetByIDForUpdate locks the ticket row until the surrounding transaction
// ends, so concurrent status and assignment changes apply one at a time.
func (r *TicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	return r.getByID(db.ForUpdate(ctx, tx), id)
}

func (r *TicketRepository) getByID(tx *gorm.DB, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get ticket by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByIDs(ctx context.Context, ids []uint) ([]*ticket.Ticket, error) {
	if len(ids) == 0 {
		return []*ticket.Ticket{}, nil
	}

	var ticketModels []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Order("id ASC").Find(&ticketModels).Error; err != nil {
		r.logger.Errorw("failed to get tickets by IDs", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}

	return r.toDomainList(ticketModels)
}

func (r *TicketRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.TicketModel{}).Where("ticket_key = ?", key).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ticket key: %w", err)
	}
	return count > 0, nil
}

// ListKeysWithPrefix returns every key starting with "prefix-". Callers still
// need to check that the suffix is numeric.
func (r *TicketRepository) ListKeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Model(&models.TicketModel{}).
		Where("ticket_key LIKE ?", prefix+"-%").
		Pluck("ticket_key", &keys).Error; err != nil {
		r.logger.Errorw("failed to list ticket keys", "prefix", prefix, "error", err)
		return nil, fmt.Errorf("failed to list ticket keys: %w", err)
	}
	return keys, nil
}

func (r *TicketRepository) ListBySprint(ctx context.Context, sprintID uint) ([]*ticket.Ticket, error) {
	var ticketModels []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("sprint_id = ?", sprintID).Order("id ASC").Find(&ticketModels).Error; err != nil {
		r.logger.Errorw("failed to list sprint tickets", "sprint_id", sprintID, "error", err)
		return nil, fmt.Errorf("failed to list sprint tickets: %w", err)
	}

	return r.toDomainList(ticketModels)
}

func (r *TicketRepository) AssignSprint(ctx context.Context, ids []uint, sprintID *uint, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Model(&models.TicketModel{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"sprint_id":  sprintID,
			"updated_at": at.UnixMilli(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to assign tickets to sprint", "ticket_ids", ids, "error", result.Error)
		return fmt.Errorf("failed to assign sprint: %w", result.Error)
	}
	return nil
}

func (r *TicketRepository) Search(ctx context.Context, filter ticket.SearchFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("(title LIKE ? OR description LIKE ? OR ticket_key LIKE ?)", like, like, like)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Type != nil {
		query = query.Where("ticket_type = ?", filter.Type.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.SprintID != nil {
		query = query.Where("sprint_id = ?", *filter.SprintID)
	}
	if filter.MinPoints != nil {
		query = query.Where("difficulty_points >= ?", *filter.MinPoints)
	}
	if filter.MaxPoints != nil {
		query = query.Where("difficulty_points <= ?", *filter.MaxPoints)
	}
	if filter.IsBlocked != nil {
		query = query.Where("is_blocked = ?", *filter.IsBlocked)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var ticketModels []models.TicketModel
	if err := query.
		Order(filter.OrderClause(ticketSortColumns, "created_at DESC")).
		Order("id ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&ticketModels).Error; err != nil {
		r.logger.Errorw("failed to search tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to search tickets: %w", err)
	}

	tickets, err := r.toDomainList(ticketModels)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *TicketRepository) ListAll(ctx context.Context) ([]*ticket.Ticket, error) {
	var ticketModels []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Order("id ASC").Find(&ticketModels).Error; err != nil {
		r.logger.Errorw("failed to list tickets", "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return r.toDomainList(ticketModels)
}

func (r *TicketRepository) toDomainList(ticketModels []models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, err
		}
		tickets[i] = t
	}
	return tickets, nil
}
