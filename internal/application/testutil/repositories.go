// Package testutil provides in-memory repositories and collaborators for
// testing the application layer.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/XavierPelle/sprintly/internal/domain/image"
	"github.com/XavierPelle/sprintly/internal/domain/qa"
	"github.com/XavierPelle/sprintly/internal/domain/sprint"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/domain/user"
)

// MockTicketRepository keeps tickets in memory and enforces key uniqueness
// the way the database index does.
type MockTicketRepository struct {
	mu      sync.RWMutex
	tickets map[uint]*ticket.Ticket
	nextID  uint

	createErrors []error
	getError     error
	updateError  error
	listError    error

	LastSearch  ticket.SearchFilter
	CreateCalls int
	LockedIDs   []uint
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{tickets: make(map[uint]*ticket.Ticket)}
}

func (m *MockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if len(m.createErrors) > 0 {
		err := m.createErrors[0]
		m.createErrors = m.createErrors[1:]
		if err != nil {
			return err
		}
	}
	for _, existing := range m.tickets {
		if existing.Key() == t.Key() {
			return fmt.Errorf("failed to create ticket: UNIQUE constraint failed: tickets.key")
		}
	}

	m.nextID++
	if err := t.SetID(m.nextID); err != nil {
		return err
	}
	m.tickets[t.ID()] = t
	return nil
}

func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}
	if _, ok := m.tickets[t.ID()]; !ok {
		return fmt.Errorf("ticket not found")
	}
	m.tickets[t.ID()] = t
	return nil
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	return m.tickets[id], nil
}

// GetByIDForUpdate records the lock request so tests can assert on it.
func (m *MockTicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	m.mu.Lock()
	m.LockedIDs = append(m.LockedIDs, id)
	m.mu.Unlock()
	return m.GetByID(ctx, id)
}

func (m *MockTicketRepository) GetByIDs(ctx context.Context, ids []uint) ([]*ticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	var out []*ticket.Ticket
	for _, id := range ids {
		if t, ok := m.tickets[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockTicketRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.tickets {
		if t.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTicketRepository) ListKeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for _, t := range m.tickets {
		if strings.HasPrefix(t.Key(), prefix+"-") {
			keys = append(keys, t.Key())
		}
	}
	return keys, nil
}

func (m *MockTicketRepository) ListBySprint(ctx context.Context, sprintID uint) ([]*ticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, m.listError
	}
	var out []*ticket.Ticket
	for _, t := range m.sortedLocked() {
		if t.InSprint(sprintID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockTicketRepository) AssignSprint(ctx context.Context, ids []uint, sprintID *uint, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}
	for _, id := range ids {
		if t, ok := m.tickets[id]; ok {
			t.MoveToSprint(sprintID)
		}
	}
	return nil
}

// Search applies the equality filters and the text query, then pages the
// result in id order. Sorting is left to the real repository.
func (m *MockTicketRepository) Search(ctx context.Context, filter ticket.SearchFilter) ([]*ticket.Ticket, int64, error) {
	m.mu.Lock()
	m.LastSearch = filter
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, 0, m.listError
	}

	var matched []*ticket.Ticket
	for _, t := range m.sortedLocked() {
		if matchesSearch(t, filter) {
			matched = append(matched, t)
		}
	}

	total := int64(len(matched))
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matchesSearch(t *ticket.Ticket, f ticket.SearchFilter) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(t.Title()), q) &&
			!strings.Contains(strings.ToLower(t.Description()), q) &&
			!strings.Contains(strings.ToLower(t.Key()), q) {
			return false
		}
	}
	if f.Status != nil && t.Status() != *f.Status {
		return false
	}
	if f.Type != nil && t.Type() != *f.Type {
		return false
	}
	if f.Priority != nil && t.Priority() != *f.Priority {
		return false
	}
	if f.AssigneeID != nil && !t.IsAssignedTo(*f.AssigneeID) {
		return false
	}
	if f.CreatorID != nil && t.CreatorID() != *f.CreatorID {
		return false
	}
	if f.SprintID != nil && !t.InSprint(*f.SprintID) {
		return false
	}
	if f.MinPoints != nil && t.DifficultyPoints() < *f.MinPoints {
		return false
	}
	if f.MaxPoints != nil && t.DifficultyPoints() > *f.MaxPoints {
		return false
	}
	if f.IsBlocked != nil && t.IsBlocked() != *f.IsBlocked {
		return false
	}
	return true
}

func (m *MockTicketRepository) ListAll(ctx context.Context) ([]*ticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, m.listError
	}
	return m.sortedLocked(), nil
}

func (m *MockTicketRepository) sortedLocked() []*ticket.Ticket {
	out := make([]*ticket.Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// AddTicket stores an already reconstructed ticket.
func (m *MockTicketRepository) AddTicket(t *ticket.Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[t.ID()] = t
	if t.ID() > m.nextID {
		m.nextID = t.ID()
	}
}

// SetCreateErrors queues errors returned by successive Create calls. A nil
// entry lets that call through.
func (m *MockTicketRepository) SetCreateErrors(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createErrors = errs
}

func (m *MockTicketRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

func (m *MockTicketRepository) SetUpdateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateError = err
}

func (m *MockTicketRepository) SetListError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listError = err
}

type MockHistoryRepository struct {
	mu          sync.RWMutex
	entries     []*ticket.History
	nextID      uint
	createError error
}

func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

func (m *MockHistoryRepository) Create(ctx context.Context, h *ticket.History) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createError != nil {
		return m.createError
	}
	m.nextID++
	h.SetID(m.nextID)
	m.entries = append(m.entries, h)
	return nil
}

func (m *MockHistoryRepository) GetLatestByTicket(ctx context.Context, ticketID uint) (*ticket.History, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].TicketID() == ticketID {
			return m.entries[i], nil
		}
	}
	return nil, nil
}

func (m *MockHistoryRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.History, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*ticket.History
	for _, h := range m.entries {
		if h.TicketID() == ticketID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *MockHistoryRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}

type MockTagRepository struct {
	mu     sync.RWMutex
	tags   map[uint]*ticket.Tag
	nextID uint
}

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{tags: make(map[uint]*ticket.Tag)}
}

func (m *MockTagRepository) Create(ctx context.Context, tag *ticket.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	tag.SetID(m.nextID)
	m.tags[tag.ID()] = tag
	return nil
}

func (m *MockTagRepository) GetByID(ctx context.Context, id uint) (*ticket.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tags[id], nil
}

func (m *MockTagRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*ticket.Tag
	for id := uint(1); id <= m.nextID; id++ {
		if tag, ok := m.tags[id]; ok && tag.TicketID() == ticketID {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (m *MockTagRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tags, id)
	return nil
}

type MockCommentRepository struct {
	mu       sync.RWMutex
	comments []*ticket.Comment
	nextID   uint
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{}
}

func (m *MockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	if err := c.SetID(m.nextID); err != nil {
		return err
	}
	m.comments = append(m.comments, c)
	return nil
}

func (m *MockCommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*ticket.Comment
	for _, c := range m.comments {
		if c.TicketID() == ticketID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCommentRepository) ListAll(ctx context.Context) ([]*ticket.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*ticket.Comment(nil), m.comments...), nil
}

type MockUserRepository struct {
	mu       sync.RWMutex
	users    map[uint]*user.User
	nextID   uint
	getError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[uint]*user.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email().Equals(u.Email()) {
			return fmt.Errorf("failed to create user: UNIQUE constraint failed: users.email")
		}
	}
	m.nextID++
	if err := u.SetID(m.nextID); err != nil {
		return err
	}
	m.users[u.ID()] = u
	return nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID()] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	return m.users[id], nil
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email().String(), email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := m.GetByEmail(ctx, email)
	return u != nil, err
}

func (m *MockUserRepository) ListAll(ctx context.Context) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *MockUserRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

type MockSprintRepository struct {
	mu          sync.RWMutex
	sprints     map[uint]*sprint.Sprint
	nextID      uint
	updateError error

	LockedIDs []uint
}

func NewMockSprintRepository() *MockSprintRepository {
	return &MockSprintRepository{sprints: make(map[uint]*sprint.Sprint)}
}

func (m *MockSprintRepository) Create(ctx context.Context, s *sprint.Sprint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	if err := s.SetID(m.nextID); err != nil {
		return err
	}
	m.sprints[s.ID()] = s
	return nil
}

func (m *MockSprintRepository) Update(ctx context.Context, s *sprint.Sprint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}
	m.sprints[s.ID()] = s
	return nil
}

func (m *MockSprintRepository) GetByID(ctx context.Context, id uint) (*sprint.Sprint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sprints[id], nil
}

// GetByIDForUpdate records the lock request so tests can assert on it.
func (m *MockSprintRepository) GetByIDForUpdate(ctx context.Context, id uint) (*sprint.Sprint, error) {
	m.mu.Lock()
	m.LockedIDs = append(m.LockedIDs, id)
	m.mu.Unlock()
	return m.GetByID(ctx, id)
}

func (m *MockSprintRepository) List(ctx context.Context, filter sprint.ListFilter) ([]*sprint.Sprint, int64, error) {
	all, _ := m.ListAll(ctx)
	var matched []*sprint.Sprint
	for _, s := range all {
		if filter.IncludeClosed || !s.IsClosed() {
			matched = append(matched, s)
		}
	}
	total := int64(len(matched))
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *MockSprintRepository) ListAll(ctx context.Context) ([]*sprint.Sprint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*sprint.Sprint, 0, len(m.sprints))
	for _, s := range m.sprints {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *MockSprintRepository) ListOverdue(ctx context.Context, now time.Time) ([]*sprint.Sprint, error) {
	all, _ := m.ListAll(ctx)
	var out []*sprint.Sprint
	for _, s := range all {
		if !s.IsClosed() && s.HasEnded(now) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockSprintRepository) AddSprint(s *sprint.Sprint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sprints[s.ID()] = s
	if s.ID() > m.nextID {
		m.nextID = s.ID()
	}
}

func (m *MockSprintRepository) SetUpdateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateError = err
}

type MockTestRepository struct {
	mu     sync.RWMutex
	tests  map[uint]*qa.Test
	nextID uint
}

func NewMockTestRepository() *MockTestRepository {
	return &MockTestRepository{tests: make(map[uint]*qa.Test)}
}

func (m *MockTestRepository) Create(ctx context.Context, t *qa.Test) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	t.SetID(m.nextID)
	m.tests[t.ID()] = t
	return nil
}

func (m *MockTestRepository) Update(ctx context.Context, t *qa.Test) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tests[t.ID()] = t
	return nil
}

func (m *MockTestRepository) GetByID(ctx context.Context, id uint) (*qa.Test, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tests[id], nil
}

func (m *MockTestRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*qa.Test, error) {
	all, _ := m.ListAll(ctx)
	var out []*qa.Test
	for _, t := range all {
		if t.TicketID() == ticketID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockTestRepository) ListAll(ctx context.Context) ([]*qa.Test, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*qa.Test, 0, len(m.tests))
	for _, t := range m.tests {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

type MockImageRepository struct {
	mu     sync.RWMutex
	images map[uint]*image.Image
	nextID uint
}

func NewMockImageRepository() *MockImageRepository {
	return &MockImageRepository{images: make(map[uint]*image.Image)}
}

func (m *MockImageRepository) Create(ctx context.Context, img *image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	img.SetID(m.nextID)
	m.images[img.ID()] = img
	return nil
}

func (m *MockImageRepository) GetByID(ctx context.Context, id uint) (*image.Image, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.images[id], nil
}

func (m *MockImageRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.images, id)
	return nil
}

func (m *MockImageRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*image.Image, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*image.Image
	for id := uint(1); id <= m.nextID; id++ {
		img, ok := m.images[id]
		if ok && img.Owner().TicketID != nil && *img.Owner().TicketID == ticketID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (m *MockImageRepository) CountByTests(ctx context.Context, testIDs []uint) (map[uint]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[uint]bool, len(testIDs))
	for _, id := range testIDs {
		wanted[id] = true
	}
	counts := make(map[uint]int)
	for _, img := range m.images {
		if owner := img.Owner().TestID; owner != nil && wanted[*owner] {
			counts[*owner]++
		}
	}
	return counts, nil
}
