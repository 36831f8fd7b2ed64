package sprint

import "github.com/XavierPelle/sprintly/internal/domain/ticket"

// SumPoints adds up the difficulty points of tickets.
func SumPoints(tickets []*ticket.Ticket) int {
	total := 0
	for _, t := range tickets {
		total += t.DifficultyPoints()
	}
	return total
}

// CompletedPoints adds up the points of tickets in a completed status.
func CompletedPoints(tickets []*ticket.Ticket) int {
	total := 0
	for _, t := range tickets {
		if t.IsCompleted() {
			total += t.DifficultyPoints()
		}
	}
	return total
}

// CheckCapacity verifies that incoming points fit next to the points
// already attached to the sprint.
func (s *Sprint) CheckCapacity(currentPoints, incomingPoints int) error {
	if currentPoints+incomingPoints > s.maxPoints {
		return &CapacityExceededError{
			Current:   currentPoints,
			Max:       s.maxPoints,
			New:       incomingPoints,
			Available: s.maxPoints - currentPoints,
		}
	}
	return nil
}

// IsOverCapacity reports whether the attached points already exceed the
// sprint's maximum, which can happen when tickets are re-estimated later.
func (s *Sprint) IsOverCapacity(currentPoints int) bool {
	return currentPoints > s.maxPoints
}
