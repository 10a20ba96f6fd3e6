// internal/core/domain/reorder.go
package domain

import "github.com/google/uuid"

// MoveItem returns a copy of items with the element at from moved to to.
// Every other element keeps its relative order.
func MoveItem[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, ErrInvalidIndex
	}

	out := make([]T, 0, len(items))
	moved := items[from]
	for i, item := range items {
		if i == from {
			continue
		}
		out = append(out, item)
	}

	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out, nil
}

// OrderAssignment is the display position persisted for one record
type OrderAssignment struct {
	ID           uuid.UUID
	DisplayOrder int
}

// AssignOrder numbers the list 0..n-1 in its current order
func AssignOrder(items []Motorcycle) []OrderAssignment {
	out := make([]OrderAssignment, len(items))
	for i := range items {
		out[i] = OrderAssignment{ID: items[i].ID, DisplayOrder: i}
	}
	return out
}
