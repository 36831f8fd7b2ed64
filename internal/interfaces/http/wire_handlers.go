package http

import (
	"github.com/XavierPelle/sprintly/internal/interfaces/http/handlers"
	sprintHandlers "github.com/XavierPelle/sprintly/internal/interfaces/http/handlers/sprint"
	ticketHandlers "github.com/XavierPelle/sprintly/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler *handlers.HealthHandler

	// User & Auth
	authHandler *handlers.AuthHandler
	userHandler *handlers.UserHandler

	// Tickets, QA & images
	ticketHandler *ticketHandlers.TicketHandler
	qaHandler     *handlers.QAHandler
	imageHandler  *handlers.ImageHandler

	// Sprint
	sprintHandler *sprintHandlers.SprintHandler

	// Dashboard
	dashboardHandler *handlers.DashboardHandler
}

// ============================================================
// Section 3: Handlers
// ============================================================

func (c *Container) initHandlers() {
	log := c.log
	ucs := c.ucs

	var pinger handlers.Pinger
	if sqlDB, err := c.db.DB(); err != nil {
		log.Warnw("database handle unavailable for health checks", "error", err)
	} else {
		pinger = sqlDB
	}

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(pinger, log),
		authHandler:   handlers.NewAuthHandler(ucs.registerUC, ucs.loginUC, ucs.refreshTokenUC, log),
		userHandler:   handlers.NewUserHandler(ucs.getUserUC, ucs.listUsersUC, ucs.updatePasswordUC, log),
		ticketHandler: ticketHandlers.NewTicketHandler(ticketHandlers.UseCases{
			Create:       ucs.createTicketUC,
			Update:       ucs.updateTicketUC,
			ChangeStatus: ucs.changeStatusUC,
			Assign:       ucs.assignTicketUC,
			Search:       ucs.searchTicketsUC,
			GetDetails:   ucs.getTicketDetailsUC,
			GetHistory:   ucs.getHistoryUC,
			AddTag:       ucs.addTagUC,
			RemoveTag:    ucs.removeTagUC,
			AddComment:   ucs.addCommentUC,
		}, log),
		qaHandler:    handlers.NewQAHandler(ucs.createTestUC, ucs.validateTestUC, log),
		imageHandler: handlers.NewImageHandler(ucs.attachImageUC, ucs.deleteImageUC, log),
		sprintHandler: sprintHandlers.NewSprintHandler(sprintHandlers.UseCases{
			Create:        ucs.createSprintUC,
			List:          ucs.listSprintsUC,
			GetDetails:    ucs.getSprintDetailsUC,
			AddTickets:    ucs.addTicketsUC,
			RemoveTickets: ucs.removeTicketsUC,
			Close:         ucs.closeSprintUC,
			Burndown:      ucs.burndownUC,
			ExportReport:  ucs.exportReportUC,
		}, log),
		dashboardHandler: handlers.NewDashboardHandler(ucs.personalDashboardUC, ucs.projectDashboardUC, log),
	}
}
