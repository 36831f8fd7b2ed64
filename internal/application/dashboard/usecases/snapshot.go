package usecases

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/XavierPelle/sprintly/internal/application/dashboard/dto"
	"github.com/XavierPelle/sprintly/internal/domain/qa"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/domain/user"
)

// Snapshot is the full set of records a dashboard is computed from.
type Snapshot struct {
	Tickets  []*ticket.Ticket
	Users    []*user.User
	Tests    []*qa.Test
	Sprints  []*sprint.Sprint
	Comments []*ticket.Comment

	usersByID     map[uint]*user.User
	ticketsByID   map[uint]*ticket.Ticket
	testsByTicket map[uint][]*qa.Test
}

func (s *Snapshot) index() {
	s.usersByID = make(map[uint]*user.User, len(s.Users))
	for _, u := range s.Users {
		s.usersByID[u.ID()] = u
	}
	s.ticketsByID = make(map[uint]*ticket.Ticket, len(s.Tickets))
	for _, t := range s.Tickets {
		s.ticketsByID[t.ID()] = t
	}
	s.testsByTicket = make(map[uint][]*qa.Test)
	for _, t := range s.Tests {
		s.testsByTicket[t.TicketID()] = append(s.testsByTicket[t.TicketID()], t)
	}
}

func (s *Snapshot) User(id uint) *user.User          { return s.usersByID[id] }
func (s *Snapshot) Ticket(id uint) *ticket.Ticket    { return s.ticketsByID[id] }
func (s *Snapshot) TestsOf(ticketID uint) []*qa.Test { return s.testsByTicket[ticketID] }

// Member returns the dashboard identity of a user, or nil when id is nil or
// unknown.
func (s *Snapshot) Member(id *uint) *dto.MemberDTO {
	if id == nil {
		return nil
	}
	u := s.usersByID[*id]
	if u == nil {
		return nil
	}
	return &dto.MemberDTO{ID: u.ID(), Name: u.FullName()}
}

// SprintTickets returns the tickets attached to sprintID.
func (s *Snapshot) SprintTickets(sprintID uint) []*ticket.Ticket {
	var out []*ticket.Ticket
	for _, t := range s.Tickets {
		if t.InSprint(sprintID) {
			out = append(out, t)
		}
	}
	return out
}

// SnapshotLoader reads every table a dashboard needs concurrently.
type SnapshotLoader struct {
	ticketRepo  ticket.TicketRepository
	userRepo    user.Repository
	testRepo    qa.Repository
	sprintRepo  sprint.Repository
	commentRepo ticket.CommentRepository
}

func NewSnapshotLoader(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	testRepo qa.Repository,
	sprintRepo sprint.Repository,
	commentRepo ticket.CommentRepository,
) *SnapshotLoader {
	return &SnapshotLoader{
		ticketRepo:  ticketRepo,
		userRepo:    userRepo,
		testRepo:    testRepo,
		sprintRepo:  sprintRepo,
		commentRepo: commentRepo,
	}
}

// Load fills a snapshot. Comments are read only when withComments is set.
func (l *SnapshotLoader) Load(ctx context.Context, withComments bool) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tickets, err := l.ticketRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load tickets: %w", err)
		}
		snap.Tickets = tickets
		return nil
	})

	g.Go(func() error {
		users, err := l.userRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		snap.Users = users
		return nil
	})

	g.Go(func() error {
		tests, err := l.testRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load tests: %w", err)
		}
		snap.Tests = tests
		return nil
	})

	g.Go(func() error {
		sprints, err := l.sprintRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load sprints: %w", err)
		}
		snap.Sprints = sprints
		return nil
	})

	if withComments {
		g.Go(func() error {
			comments, err := l.commentRepo.ListAll(gctx)
			if err != nil {
				return fmt.Errorf("failed to load comments: %w", err)
			}
			snap.Comments = comments
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.index()
	return snap, nil
}
