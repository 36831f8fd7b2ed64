package sprint

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/XavierPelle/sprintly/internal/shared/biztime"
)

const (
	NameMaxLength = 100
	day           = 24 * time.Hour
)

// Sprint is a time-boxed container with a point capacity. startDate and
// endDate are calendar days; the sprint runs until the end of endDate.
type Sprint struct {
	id        uint
	name      string
	maxPoints int
	startDate time.Time
	endDate   time.Time
	closedAt  *time.Time
	report    *ClosureReport
	createdAt time.Time
	updatedAt time.Time
}

type State struct {
	ID        uint
	Name      string
	MaxPoints int
	StartDate time.Time
	EndDate   time.Time
	ClosedAt  *time.Time
	Report    *ClosureReport
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSprint(name string, maxPoints int, startDate, endDate time.Time) (*Sprint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("sprint name is required")
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return nil, fmt.Errorf("sprint name too long (max %d characters)", NameMaxLength)
	}
	if maxPoints <= 0 {
		return nil, fmt.Errorf("max points must be greater than 0")
	}
	startDate = biztime.StartOfDayUTC(startDate)
	endDate = biztime.StartOfDayUTC(endDate)
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date must not be before start date")
	}

	now := biztime.NowUTC()
	return &Sprint{
		name:      name,
		maxPoints: maxPoints,
		startDate: startDate,
		endDate:   endDate,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSprint(s State) (*Sprint, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("sprint ID cannot be zero")
	}
	return &Sprint{
		id:        s.ID,
		name:      s.Name,
		maxPoints: s.MaxPoints,
		startDate: s.StartDate.UTC(),
		endDate:   s.EndDate.UTC(),
		closedAt:  s.ClosedAt,
		report:    s.Report,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}, nil
}

func (s *Sprint) ID() uint               { return s.id }
func (s *Sprint) Name() string           { return s.name }
func (s *Sprint) MaxPoints() int         { return s.maxPoints }
func (s *Sprint) StartDate() time.Time   { return s.startDate }
func (s *Sprint) EndDate() time.Time     { return s.endDate }
func (s *Sprint) ClosedAt() *time.Time   { return s.closedAt }
func (s *Sprint) Report() *ClosureReport { return s.report }
func (s *Sprint) CreatedAt() time.Time   { return s.createdAt }
func (s *Sprint) UpdatedAt() time.Time   { return s.updatedAt }
func (s *Sprint) IsClosed() bool         { return s.closedAt != nil }

func (s *Sprint) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("sprint ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("sprint ID cannot be zero")
	}
	s.id = id
	return nil
}

// EndsAt is the first instant after the sprint's last day.
func (s *Sprint) EndsAt() time.Time {
	return s.endDate.Add(day)
}

func (s *Sprint) HasStarted(now time.Time) bool {
	return !now.Before(s.startDate)
}

func (s *Sprint) HasEnded(now time.Time) bool {
	return !now.Before(s.EndsAt())
}

// IsCurrent reports whether now falls inside the sprint's date range.
func (s *Sprint) IsCurrent(now time.Time) bool {
	return s.HasStarted(now) && !s.HasEnded(now)
}

func (s *Sprint) IsUpcoming(now time.Time) bool {
	return !s.HasStarted(now)
}

// TotalDays counts the calendar days of the sprint, both ends included.
func (s *Sprint) TotalDays() int {
	return biztime.DaysBetween(s.startDate, s.endDate) + 1
}

// DurationDays is the rounded-up span between start and end dates. A sprint
// that starts and ends on the same day has a duration of zero.
func (s *Sprint) DurationDays() int {
	return max(int(math.Ceil(float64(s.endDate.Sub(s.startDate))/float64(day))), 0)
}

// Velocity is completed points per duration day, rounded to one decimal.
// It is 0 when the sprint has no duration.
func (s *Sprint) Velocity(completedPoints int) float64 {
	d := s.DurationDays()
	if d == 0 {
		return 0
	}
	return RoundTenth(float64(completedPoints) / float64(d))
}

// DaysRemaining is the rounded-up number of days until the sprint ends.
func (s *Sprint) DaysRemaining(now time.Time) int {
	if s.HasEnded(now) {
		return 0
	}
	return int(math.Ceil(float64(s.EndsAt().Sub(now)) / float64(day)))
}

// EnsureOpen fails when the sprint has already been closed.
func (s *Sprint) EnsureOpen() error {
	if s.IsClosed() {
		return ErrSprintClosed
	}
	return nil
}

// EnsureCanReceive checks that incomplete tickets from another sprint can be
// moved into this one.
func (s *Sprint) EnsureCanReceive(now time.Time) error {
	if s.IsClosed() || s.HasEnded(now) {
		return ErrSprintEnded
	}
	return nil
}

// Close marks the sprint closed and keeps the closure report.
func (s *Sprint) Close(report ClosureReport, now time.Time) error {
	if err := s.EnsureOpen(); err != nil {
		return err
	}
	closedAt := now
	s.closedAt = &closedAt
	s.report = &report
	s.updatedAt = now
	return nil
}
