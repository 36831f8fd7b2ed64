// Package setutil provides a small generic set for id bookkeeping.
package setutil

// Set is an unordered collection of unique values that remembers
// insertion order for deterministic iteration.
type Set[T comparable] struct {
	items map[T]struct{}
	order []T
}

// New returns a set containing values.
func New[T comparable](values ...T) *Set[T] {
	s := &Set[T]{items: make(map[T]struct{}, len(values))}
	s.AddAll(values)
	return s
}

// Add inserts v and reports whether it was not already present.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.items[v]; ok {
		return false
	}
	s.items[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

func (s *Set[T]) AddAll(values []T) {
	for _, v := range values {
		s.Add(v)
	}
}

func (s *Set[T]) Has(v T) bool {
	_, ok := s.items[v]
	return ok
}

func (s *Set[T]) Len() int {
	return len(s.items)
}

// ToSlice returns the values in insertion order.
func (s *Set[T]) ToSlice() []T {
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}

// Missing returns the values of s that are not in other, in insertion order.
func (s *Set[T]) Missing(other *Set[T]) []T {
	var out []T
	for _, v := range s.order {
		if !other.Has(v) {
			out = append(out, v)
		}
	}
	return out
}
