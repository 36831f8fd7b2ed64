package http

import (
	"gorm.io/gorm"

	"github.com/XavierPelle/sprintly/internal/domain/image"
	"github.com/XavierPelle/sprintly/internal/domain/qa"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	"github.com/XavierPelle/sprintly/internal/infrastructure/repository"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// ticketRepo keeps its concrete type because it also backs key generation.
type repositories struct {
	userRepo    user.Repository
	ticketRepo  *repository.TicketRepository
	sprintRepo  sprint.Repository
	testRepo    qa.Repository
	imageRepo   image.Repository
	commentRepo ticket.CommentRepository
	historyRepo ticket.HistoryRepository
	tagRepo     ticket.TagRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:    repository.NewUserRepository(db, log),
		ticketRepo:  repository.NewTicketRepository(db, log),
		sprintRepo:  repository.NewSprintRepository(db, log),
		testRepo:    repository.NewQATestRepository(db, log),
		imageRepo:   repository.NewImageRepository(db, log),
		commentRepo: repository.NewCommentRepository(db, log),
		historyRepo: repository.NewTicketHistoryRepository(db, log),
		tagRepo:     repository.NewTagRepository(db, log),
	}
}
