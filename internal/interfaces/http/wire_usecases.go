package http

import (
	"github.com/XavierPelle/sprintly/internal/application/common"
	dashboardDto "github.com/XavierPelle/sprintly/internal/application/dashboard/dto"
	dashboardUsecases "github.com/XavierPelle/sprintly/internal/application/dashboard/usecases"
	imageDto "github.com/XavierPelle/sprintly/internal/application/image/dto"
	imageUsecases "github.com/XavierPelle/sprintly/internal/application/image/usecases"
	qaDto "github.com/XavierPelle/sprintly/internal/application/qa/dto"
	qaUsecases "github.com/XavierPelle/sprintly/internal/application/qa/usecases"
	sprintDto "github.com/XavierPelle/sprintly/internal/application/sprint/dto"
	sprintUsecases "github.com/XavierPelle/sprintly/internal/application/sprint/usecases"
	ticketDto "github.com/XavierPelle/sprintly/internal/application/ticket/dto"
	ticketUsecases "github.com/XavierPelle/sprintly/internal/application/ticket/usecases"
	userDto "github.com/XavierPelle/sprintly/internal/application/user/dto"
	"github.com/XavierPelle/sprintly/internal/application/user/usecases"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	uservo "github.com/XavierPelle/sprintly/internal/domain/user/valueobjects"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User / Auth
	registerUC       usecases.RegisterUserExecutor
	loginUC          usecases.LoginUserExecutor
	refreshTokenUC   usecases.RefreshTokenExecutor
	updatePasswordUC usecases.UpdatePasswordExecutor
	getUserUC        usecases.GetUserExecutor
	listUsersUC      usecases.ListUsersExecutor

	// Ticket
	createTicketUC     ticketUsecases.CreateTicketExecutor
	updateTicketUC     ticketUsecases.UpdateTicketExecutor
	changeStatusUC     ticketUsecases.ChangeStatusExecutor
	assignTicketUC     ticketUsecases.AssignTicketExecutor
	searchTicketsUC    ticketUsecases.SearchTicketsExecutor
	getTicketDetailsUC ticketUsecases.GetTicketDetailsExecutor
	getHistoryUC       ticketUsecases.GetTicketHistoryExecutor
	addTagUC           ticketUsecases.AddTagExecutor
	removeTagUC        ticketUsecases.RemoveTagExecutor
	addCommentUC       ticketUsecases.AddCommentExecutor

	// Sprint
	createSprintUC     sprintUsecases.CreateSprintExecutor
	listSprintsUC      sprintUsecases.ListSprintsExecutor
	getSprintDetailsUC sprintUsecases.GetSprintDetailsExecutor
	addTicketsUC       sprintUsecases.AddTicketsExecutor
	removeTicketsUC    sprintUsecases.RemoveTicketsExecutor
	closeSprintUC      sprintUsecases.CloseSprintExecutor
	burndownUC         sprintUsecases.GetBurndownExecutor
	exportReportUC     sprintUsecases.ExportReportExecutor

	// QA & images
	createTestUC   qaUsecases.CreateTestExecutor
	validateTestUC qaUsecases.ValidateTestExecutor
	attachImageUC  imageUsecases.AttachImageExecutor
	deleteImageUC  imageUsecases.DeleteImageExecutor

	// Dashboard
	personalDashboardUC dashboardUsecases.PersonalDashboardExecutor
	projectDashboardUC  dashboardUsecases.ProjectDashboardExecutor
	rawProjectUC        dashboardUsecases.ProjectDashboardExecutor
}

// initUseCases builds every use case on top of the repositories and services
// created by initInfrastructure. Write paths and aggregations are wrapped
// with common.Instrument so that panics and latencies are reported.
func (c *Container) initUseCases() {
	cfg := c.cfg
	log := c.log
	r := c.repos
	obs := c.metrics

	ucs := &allUseCases{}

	// User / Auth
	ucs.registerUC = common.Instrument[usecases.RegisterUserCommand, *userDto.UserDTO](
		"user.register",
		usecases.NewRegisterUserUseCase(r.userRepo, c.hasher, uservo.DefaultPasswordPolicy(), log),
		log, obs,
	)
	ucs.loginUC = common.Instrument[usecases.LoginUserCommand, *userDto.LoginDTO](
		"user.login",
		usecases.NewLoginUserUseCase(r.userRepo, c.hasher, c.jwtService, user.DefaultSecurityPolicy(), log),
		log, obs,
	)
	ucs.refreshTokenUC = usecases.NewRefreshTokenUseCase(r.userRepo, c.jwtService, log)
	ucs.updatePasswordUC = usecases.NewUpdatePasswordUseCase(r.userRepo, c.hasher, uservo.DefaultPasswordPolicy(), log)
	ucs.getUserUC = usecases.NewGetUserUseCase(r.userRepo, log)
	ucs.listUsersUC = usecases.NewListUsersUseCase(r.userRepo, log)

	// Ticket
	workflow := ticketUsecases.WorkflowSettings{
		EnforceTransitions: cfg.Workflow.EnforceTransitions,
		TestLinkDomain:     cfg.Workflow.TestLinkDomain,
	}
	ucs.createTicketUC = common.Instrument[ticketUsecases.CreateTicketCommand, *ticketDto.CreateTicketDTO](
		"ticket.create",
		ticketUsecases.NewCreateTicketUseCase(
			r.ticketRepo, r.userRepo, r.sprintRepo, c.keyGenerator, c.txManager, c.notifier,
			cfg.Workflow.DefaultProjectPrefix, log,
		),
		log, obs,
	)
	ucs.updateTicketUC = ticketUsecases.NewUpdateTicketUseCase(r.ticketRepo, log)
	ucs.changeStatusUC = common.Instrument[ticketUsecases.ChangeStatusCommand, *ticketDto.ChangeStatusDTO](
		"ticket.change_status",
		ticketUsecases.NewChangeStatusUseCase(r.ticketRepo, r.historyRepo, c.txManager, c.clock, workflow, log),
		log, obs,
	)
	ucs.assignTicketUC = ticketUsecases.NewAssignTicketUseCase(r.ticketRepo, r.userRepo, c.txManager, c.notifier, log)
	ucs.searchTicketsUC = ticketUsecases.NewSearchTicketsUseCase(r.ticketRepo, log)
	ucs.getTicketDetailsUC = ticketUsecases.NewGetTicketDetailsUseCase(ticketUsecases.TicketDetailsRepositories{
		Tickets:  r.ticketRepo,
		Tags:     r.tagRepo,
		Comments: r.commentRepo,
		Users:    r.userRepo,
		Sprints:  r.sprintRepo,
		Tests:    r.testRepo,
		Images:   r.imageRepo,
	}, c.markdown, log)
	ucs.getHistoryUC = ticketUsecases.NewGetTicketHistoryUseCase(r.ticketRepo, r.historyRepo, log)
	ucs.addTagUC = ticketUsecases.NewAddTagUseCase(r.ticketRepo, r.tagRepo, c.txManager, log)
	ucs.removeTagUC = ticketUsecases.NewRemoveTagUseCase(r.ticketRepo, r.tagRepo, log)
	ucs.addCommentUC = ticketUsecases.NewAddCommentUseCase(r.ticketRepo, r.commentRepo, r.userRepo, log)

	// Sprint
	ucs.createSprintUC = sprintUsecases.NewCreateSprintUseCase(r.sprintRepo, log)
	ucs.listSprintsUC = sprintUsecases.NewListSprintsUseCase(r.sprintRepo, log)
	ucs.getSprintDetailsUC = sprintUsecases.NewGetSprintDetailsUseCase(r.sprintRepo, r.ticketRepo, r.userRepo, log)
	ucs.addTicketsUC = common.Instrument[sprintUsecases.AddTicketsCommand, *sprintDto.AddTicketsDTO](
		"sprint.add_tickets",
		sprintUsecases.NewAddTicketsUseCase(r.sprintRepo, r.ticketRepo, c.txManager, c.clock, log),
		log, obs,
	)
	ucs.removeTicketsUC = common.Instrument[sprintUsecases.RemoveTicketsCommand, *sprintDto.RemoveTicketsDTO](
		"sprint.remove_tickets",
		sprintUsecases.NewRemoveTicketsUseCase(r.sprintRepo, r.ticketRepo, c.txManager, c.clock, log),
		log, obs,
	)
	ucs.closeSprintUC = common.Instrument[sprintUsecases.CloseSprintCommand, *sprintDto.CloseSprintDTO](
		"sprint.close",
		sprintUsecases.NewCloseSprintUseCase(r.sprintRepo, r.ticketRepo, c.txManager, c.clock, log),
		log, obs,
	)
	ucs.burndownUC = common.Instrument[sprintUsecases.GetBurndownQuery, *sprintDto.BurndownDTO](
		"sprint.burndown",
		sprintUsecases.NewGetBurndownUseCase(r.sprintRepo, r.ticketRepo, c.clock, log),
		log, obs,
	)
	ucs.exportReportUC = sprintUsecases.NewExportReportUseCase(r.sprintRepo, r.ticketRepo, r.userRepo, c.clock, log)

	// QA & images
	ucs.createTestUC = qaUsecases.NewCreateTestUseCase(r.testRepo, r.ticketRepo, r.userRepo, log)
	ucs.validateTestUC = common.Instrument[qaUsecases.ValidateTestCommand, *qaDto.ValidateTestDTO](
		"qa.validate_test",
		qaUsecases.NewValidateTestUseCase(r.testRepo, r.ticketRepo, r.userRepo, c.notifier, c.clock, log),
		log, obs,
	)
	ucs.attachImageUC = common.Instrument[imageUsecases.AttachImageCommand, *imageDto.ImageDTO](
		"image.attach",
		imageUsecases.NewAttachImageUseCase(r.imageRepo, r.userRepo, r.ticketRepo, r.testRepo, log),
		log, obs,
	)
	ucs.deleteImageUC = imageUsecases.NewDeleteImageUseCase(r.imageRepo, log)

	// Dashboard
	loader := dashboardUsecases.NewSnapshotLoader(r.ticketRepo, r.userRepo, r.testRepo, r.sprintRepo, r.commentRepo)
	ucs.personalDashboardUC = common.Instrument[dashboardUsecases.GetPersonalDashboardQuery, *dashboardDto.PersonalDashboardDTO](
		"dashboard.personal",
		dashboardUsecases.NewGetPersonalDashboardUseCase(loader, r.imageRepo, c.clock, cfg.Workflow.StaleAfterDays, log),
		log, obs,
	)

	ucs.rawProjectUC = dashboardUsecases.NewGetProjectDashboardUseCase(loader, c.clock, log)
	var project dashboardUsecases.ProjectDashboardExecutor = ucs.rawProjectUC
	if c.dashboardCache != nil {
		project = dashboardUsecases.NewCachedProjectDashboard(ucs.rawProjectUC, c.dashboardCache, c.metrics, log)
	}
	ucs.projectDashboardUC = common.Instrument[dashboardUsecases.GetProjectDashboardQuery, *dashboardDto.ProjectDashboardDTO](
		"dashboard.project",
		project,
		log, obs,
	)

	c.ucs = ucs
}
