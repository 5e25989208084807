package position

import "github.com/google/uuid"

// Slot pairs a sibling identifier with its assigned position.
type Slot struct {
	ID       uuid.UUID
	Position int64
}

// Rebalance assigns uniform positions to a sibling scope whose gap
// space is exhausted.
//
// Parameters:
//   - orderedIDs: sibling identifiers sorted ascending by their current
//     position
//
// Returns:
//   - one Slot per identifier, where index i receives (i+1)*Gap
//
// The assignment is strictly increasing, deterministic, and independent
// of the magnitude of the prior positions, so applying it to an already
// rebalanced scope reproduces the same positions. Persisting the slots
// rewrites every sibling row and is the one O(n) path in the ordering
// scheme.
func Rebalance(orderedIDs []uuid.UUID) []Slot {
	slots := make([]Slot, len(orderedIDs))
	for i, id := range orderedIDs {
		slots[i] = Slot{ID: id, Position: int64(i+1) * Gap}
	}
	return slots
}
