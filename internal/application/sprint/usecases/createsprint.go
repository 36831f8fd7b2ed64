package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/XavierPelle/sprintly/internal/application/sprint/dto"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

// CreateSprintCommand carries dates as YYYY-MM-DD in the business timezone.
type CreateSprintCommand struct {
	Name      string
	MaxPoints int
	StartDate string
	EndDate   string
}

type CreateSprintUseCase struct {
	sprintRepo sprint.Repository
	logger     logger.Interface
}

func NewCreateSprintUseCase(sprintRepo sprint.Repository, logger logger.Interface) *CreateSprintUseCase {
	return &CreateSprintUseCase{
		sprintRepo: sprintRepo,
		logger:     logger,
	}
}

func (uc *CreateSprintUseCase) Execute(ctx context.Context, cmd CreateSprintCommand) (*dto.SprintDTO, error) {
	uc.logger.Infow("executing create sprint use case", "name", cmd.Name, "max_points", cmd.MaxPoints)

	start, end, err := uc.validateCommand(cmd)
	if err != nil {
		uc.logger.Warnw("invalid create sprint command", "error", err)
		return nil, err
	}

	s, err := sprint.NewSprint(cmd.Name, cmd.MaxPoints, start, end)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.sprintRepo.Create(ctx, s); err != nil {
		uc.logger.Errorw("failed to create sprint", "name", cmd.Name, "error", err)
		return nil, errors.NewInternalError("failed to create sprint")
	}

	uc.logger.Infow("sprint created successfully", "sprint_id", s.ID(), "name", s.Name())
	return dto.ToSprintDTO(s), nil
}

func (uc *CreateSprintUseCase) validateCommand(cmd CreateSprintCommand) (time.Time, time.Time, error) {
	var list errors.ErrorList

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		list.Add(errors.NewFieldValidationError("name", "name is required"))
	} else if len([]rune(name)) > sprint.NameMaxLength {
		list.Add(errors.NewFieldValidationError("name", "name must not exceed 100 characters"))
	}
	if cmd.MaxPoints <= 0 {
		list.Add(errors.NewFieldValidationError("maxPoints", "max points must be greater than 0"))
	}

	start, err := biztime.ParseDateInBizTimezone(cmd.StartDate)
	if err != nil {
		list.Add(errors.NewFieldValidationError("startDate", "start date must be a YYYY-MM-DD date"))
	}
	end, endErr := biztime.ParseDateInBizTimezone(cmd.EndDate)
	if endErr != nil {
		list.Add(errors.NewFieldValidationError("endDate", "end date must be a YYYY-MM-DD date"))
	}
	if err == nil && endErr == nil && end.Before(start) {
		list.Add(errors.NewFieldValidationError("endDate", "end date must be on or after start date"))
	}

	return start, end, list.OrNil()
}
