package valueobjects

import "fmt"

type TicketType string

const (
	TypeBug         TicketType = "BUG"
	TypeFeature     TicketType = "FEATURE"
	TypeImprovement TicketType = "IMPROVEMENT"
	TypeTask        TicketType = "TASK"
)

var allTypes = []TicketType{TypeBug, TypeFeature, TypeImprovement, TypeTask}

// AllTypes returns every ticket type.
func AllTypes() []TicketType {
	out := make([]TicketType, len(allTypes))
	copy(out, allTypes)
	return out
}

func (t TicketType) String() string {
	return string(t)
}

func (t TicketType) IsValid() bool {
	for _, v := range allTypes {
		if v == t {
			return true
		}
	}
	return false
}

func NewTicketType(s string) (TicketType, error) {
	t := TicketType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid ticket type: %s", s)
	}
	return t, nil
}
