package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/mappers"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/models"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

var sprintSortColumns = map[string]string{
	"createdAt": "created_at",
	"startDate": "start_date",
	"endDate":   "end_date",
	"name":      "name",
}

type SprintRepository struct {
	db     *gorm.DB
	mapper mappers.SprintMapper
	logger logger.Interface
}

func NewSprintRepository(db *gorm.DB, logger logger.Interface) *SprintRepository {
	return &SprintRepository{
		db:     db,
		mapper: mappers.NewSprintMapper(),
		logger: logger,
	}
}

func (r *SprintRepository) Create(ctx context.Context, s *sprint.Sprint) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create sprint", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create sprint: %w", err)
	}

	return s.SetID(model.ID)
}

func (r *SprintRepository) Update(ctx context.Context, s *sprint.Sprint) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Model(&models.SprintModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update sprint", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update sprint: %w", result.Error)
	}
	return nil
}

func (r *SprintRepository) GetByID(ctx context.Context, id uint) (*sprint.Sprint, error) {
	return r.getByID(ctx, db.GetTxFromContext(ctx, r.db), id)
}

// GetByIDForUpdate locks the sprint row until the surrounding transaction
// ends, serializing capacity checks against the same sprint.
func (r *SprintRepository) GetByIDForUpdate(ctx context.Context, id uint) (*sprint.Sprint, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	return r.getByID(ctx, db.ForUpdate(ctx, tx), id)
}

func (r *SprintRepository) getByID(_ context.Context, tx *gorm.DB, id uint) (*sprint.Sprint, error) {
	var model models.SprintModel
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get sprint by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get sprint: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *SprintRepository) List(ctx context.Context, filter sprint.ListFilter) ([]*sprint.Sprint, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SprintModel{})

	if !filter.IncludeClosed {
		query = query.Where("closed_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count sprints", "error", err)
		return nil, 0, fmt.Errorf("failed to count sprints: %w", err)
	}

	var sprintModels []models.SprintModel
	if err := query.
		Order(filter.OrderClause(sprintSortColumns, "start_date DESC")).
		Order("id ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&sprintModels).Error; err != nil {
		r.logger.Errorw("failed to list sprints", "error", err)
		return nil, 0, fmt.Errorf("failed to list sprints: %w", err)
	}

	sprints, err := r.toDomainList(sprintModels)
	if err != nil {
		return nil, 0, err
	}
	return sprints, total, nil
}

func (r *SprintRepository) ListAll(ctx context.Context) ([]*sprint.Sprint, error) {
	var sprintModels []models.SprintModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Order("start_date ASC").Order("id ASC").Find(&sprintModels).Error; err != nil {
		r.logger.Errorw("failed to list sprints", "error", err)
		return nil, fmt.Errorf("failed to list sprints: %w", err)
	}
	return r.toDomainList(sprintModels)
}

// ListOverdue returns open sprints whose last day lies before now's day.
func (r *SprintRepository) ListOverdue(ctx context.Context, now time.Time) ([]*sprint.Sprint, error) {
	today := biztime.StartOfDayUTC(now)

	var sprintModels []models.SprintModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("closed_at IS NULL").
		Where("end_date < ?", datatypes.Date(today)).
		Order("end_date ASC").
		Find(&sprintModels).Error; err != nil {
		r.logger.Errorw("failed to list overdue sprints", "error", err)
		return nil, fmt.Errorf("failed to list overdue sprints: %w", err)
	}
	return r.toDomainList(sprintModels)
}

func (r *SprintRepository) toDomainList(sprintModels []models.SprintModel) ([]*sprint.Sprint, error) {
	sprints := make([]*sprint.Sprint, len(sprintModels))
	for i := range sprintModels {
		s, err := r.mapper.ToDomain(&sprintModels[i])
		if err != nil {
			return nil, err
		}
		sprints[i] = s
	}
	return sprints, nil
}
