package seeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	ticketvo "github.com/XavierPelle/sprintly/internal/domain/ticket/valueobjects"
	"github.com/XavierPelle/sprintly/internal/domain/user"
	uservo "github.com/XavierPelle/sprintly/internal/domain/user/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

// Repositories groups the stores the seeder writes to.
type Repositories struct {
	Users   user.Repository
	Sprints sprint.Repository
	Tickets ticket.TicketRepository
	History ticket.HistoryRepository
	Tags    ticket.TagRepository
	Keys    ticket.KeyGenerator
	Tx      db.TxManager
}

// Result counts what a run created. Existing rows are skipped.
type Result struct {
	UsersCreated   int
	UsersSkipped   int
	SprintsCreated int
	SprintsSkipped int
	TicketsCreated int
	TicketsSkipped int
}

type Seeder struct {
	repos         Repositories
	hasher        user.PasswordHasher
	defaultPrefix string
	logger        logger.Interface
}

func NewSeeder(repos Repositories, hasher user.PasswordHasher, defaultPrefix string, log logger.Interface) *Seeder {
	return &Seeder{
		repos:         repos,
		hasher:        hasher,
		defaultPrefix: defaultPrefix,
		logger:        log,
	}
}

// Seed writes f in one transaction. Running it twice is a no-op the second
// time: users match on email, sprints on name and tickets on key, or on
// title when the seed gives no key.
func (s *Seeder) Seed(ctx context.Context, f *File) (*Result, error) {
	result := &Result{}
	prefix := f.ProjectPrefix
	if prefix == "" {
		prefix = s.defaultPrefix
	}
	if err := ticket.ValidatePrefix(prefix); err != nil {
		return nil, err
	}

	err := s.repos.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		users, err := s.seedUsers(ctx, f.Users, result)
		if err != nil {
			return err
		}
		sprints, err := s.seedSprints(ctx, f.Sprints, result)
		if err != nil {
			return err
		}
		return s.seedTickets(ctx, prefix, f.Tickets, users, sprints, result)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("seed completed",
		"users_created", result.UsersCreated,
		"sprints_created", result.SprintsCreated,
		"tickets_created", result.TicketsCreated,
	)
	return result, nil
}

func (s *Seeder) seedUsers(ctx context.Context, seeds []UserSeed, result *Result) (map[string]uint, error) {
	byEmail := make(map[string]uint, len(seeds))
	for i, us := range seeds {
		email, err := uservo.NewEmail(us.Email)
		if err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}

		existing, err := s.repos.Users.GetByEmail(ctx, email.String())
		if err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
		if existing != nil {
			byEmail[email.String()] = existing.ID()
			result.UsersSkipped++
			continue
		}

		name, err := uservo.NewName(us.FirstName, us.LastName)
		if err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
		u, err := user.NewUser(email, name)
		if err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
		password, err := uservo.NewPassword(us.Password, uservo.DefaultPasswordPolicy())
		if err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
		if err := u.SetPassword(password, s.hasher); err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
		if err := s.repos.Users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
		byEmail[email.String()] = u.ID()
		result.UsersCreated++
	}
	return byEmail, nil
}

func (s *Seeder) seedSprints(ctx context.Context, seeds []SprintSeed, result *Result) (map[string]*sprint.Sprint, error) {
	existing, err := s.repos.Sprints.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*sprint.Sprint, len(existing)+len(seeds))
	for _, sp := range existing {
		byName[sp.Name()] = sp
	}

	for i, ss := range seeds {
		if _, ok := byName[ss.Name]; ok {
			result.SprintsSkipped++
			continue
		}
		start, err := biztime.ParseDateInBizTimezone(ss.StartDate)
		if err != nil {
			return nil, fmt.Errorf("sprints[%d]: invalid startDate: %w", i, err)
		}
		end, err := biztime.ParseDateInBizTimezone(ss.EndDate)
		if err != nil {
			return nil, fmt.Errorf("sprints[%d]: invalid endDate: %w", i, err)
		}
		sp, err := sprint.NewSprint(ss.Name, ss.MaxPoints, start, end)
		if err != nil {
			return nil, fmt.Errorf("sprints[%d]: %w", i, err)
		}
		if err := s.repos.Sprints.Create(ctx, sp); err != nil {
			return nil, fmt.Errorf("sprints[%d]: %w", i, err)
		}
		byName[sp.Name()] = sp
		result.SprintsCreated++
	}
	return byName, nil
}

func (s *Seeder) seedTickets(
	ctx context.Context,
	prefix string,
	seeds []TicketSeed,
	users map[string]uint,
	sprints map[string]*sprint.Sprint,
	result *Result,
) error {
	existing, err := s.repos.Tickets.ListAll(ctx)
	if err != nil {
		return err
	}
	keys := make(map[string]bool, len(existing))
	titles := make(map[string]bool, len(existing))
	for _, t := range existing {
		keys[t.Key()] = true
		titles[t.Title()] = true
	}

	for i, ts := range seeds {
		if (ts.Key != "" && keys[ts.Key]) || (ts.Key == "" && titles[strings.TrimSpace(ts.Title)]) {
			result.TicketsSkipped++
			continue
		}

		t, err := s.buildTicket(ctx, prefix, ts, users, sprints)
		if err != nil {
			return fmt.Errorf("tickets[%d]: %w", i, err)
		}
		if err := s.repos.Tickets.Create(ctx, t); err != nil {
			return fmt.Errorf("tickets[%d]: %w", i, err)
		}
		keys[t.Key()] = true
		titles[t.Title()] = true

		if t.Status() != ticketvo.StatusTodo {
			creator := t.CreatorID()
			h, err := ticket.NewHistory(t.ID(), ticketvo.StatusTodo, t.Status(), &creator, nil, t.CreatedAt())
			if err != nil {
				return fmt.Errorf("tickets[%d]: %w", i, err)
			}
			if err := s.repos.History.Create(ctx, h); err != nil {
				return fmt.Errorf("tickets[%d]: %w", i, err)
			}
		}

		existingTags := make([]*ticket.Tag, 0, len(ts.Tags))
		for _, tg := range ts.Tags {
			if err := ticket.CheckCanAddTag(existingTags, tg.Content); err != nil {
				return fmt.Errorf("tickets[%d]: tag %q: %w", i, tg.Content, err)
			}
			tag, err := ticket.NewTag(t.ID(), tg.Content, tg.Color)
			if err != nil {
				return fmt.Errorf("tickets[%d]: %w", i, err)
			}
			if err := s.repos.Tags.Create(ctx, tag); err != nil {
				return fmt.Errorf("tickets[%d]: %w", i, err)
			}
			existingTags = append(existingTags, tag)
		}
		result.TicketsCreated++
	}
	return nil
}

func (s *Seeder) buildTicket(
	ctx context.Context,
	prefix string,
	ts TicketSeed,
	users map[string]uint,
	sprints map[string]*sprint.Sprint,
) (*ticket.Ticket, error) {
	ticketType, err := ticketvo.NewTicketType(defaultString(ts.Type, string(ticketvo.TypeTask)))
	if err != nil {
		return nil, err
	}
	priority, err := ticketvo.NewPriority(defaultString(ts.Priority, string(ticketvo.PriorityMedium)))
	if err != nil {
		return nil, err
	}
	creatorID, ok := users[strings.ToLower(strings.TrimSpace(ts.Creator))]
	if !ok {
		return nil, fmt.Errorf("unknown creator %q", ts.Creator)
	}

	key := ts.Key
	if key == "" {
		key, err = s.repos.Keys.Generate(ctx, prefix)
		if err != nil {
			return nil, err
		}
	}

	t, err := ticket.NewTicket(key, ts.Title, ts.Description, ticketType, priority, ts.Points, creatorID)
	if err != nil {
		return nil, err
	}

	if ts.Assignee != "" {
		assigneeID, ok := users[strings.ToLower(strings.TrimSpace(ts.Assignee))]
		if !ok {
			return nil, fmt.Errorf("unknown assignee %q", ts.Assignee)
		}
		t.AssignTo(&assigneeID)
	}
	if ts.Sprint != "" {
		sp, ok := sprints[ts.Sprint]
		if !ok {
			return nil, fmt.Errorf("unknown sprint %q", ts.Sprint)
		}
		sprintID := sp.ID()
		t.MoveToSprint(&sprintID)
	}
	if ts.Status != "" {
		status, err := ticketvo.NewTicketStatus(ts.Status)
		if err != nil {
			return nil, err
		}
		if status != ticketvo.StatusTodo {
			if err := t.ChangeStatus(status, false, t.CreatedAt()); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
