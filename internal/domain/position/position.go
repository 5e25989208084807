// Package position implements gap-based fractional ordering for sibling
// entities (boards under a user, columns under a board, tasks under a
// column). Positions are exact int64 values spaced Gap apart so that
// inserting between two neighbors usually needs only one integer midpoint
// and never a full-list rewrite.
package position

import "errors"

// Gap is the spacing unit for appended and rebalanced siblings. New
// entities land at multiples of Gap, leaving room for roughly ten
// levels of halving between any two fresh neighbors before the scope
// needs a rebalance.
const Gap int64 = 1024

// ErrNoGap signals that no integer position exists between the given
// neighbors. Callers recover by rebalancing the scope and retrying the
// computation once.
var ErrNoGap = errors.New("no integer gap between neighbor positions")

// NextAppend computes the position for an entity appended at the end of
// a sibling scope.
//
// Parameters:
//   - last: the maximum position currently in the scope, or any
//     non-positive value when the scope is empty
//
// Returns:
//   - Gap for an empty scope, otherwise last + Gap
//
// Successive appends over an initially empty scope yield Gap, 2*Gap,
// 3*Gap, and so on. Overflowing int64 this way would take more appends
// than any scope can hold, so the sum is not guarded.
func NextAppend(last int64) int64 {
	if last <= 0 {
		return Gap
	}
	return last + Gap
}

// Between computes an insertion position strictly between two existing
// neighbor positions.
//
// Parameters:
//   - before: position of the sibling immediately preceding the target
//     slot (the smaller value)
//   - after: position of the sibling immediately following it
//
// Returns:
//   - before + (after-before)/2 using floor division, which is always
//     strictly between the two inputs when a gap exists
//   - ErrNoGap when before >= after (inconsistent pair) or when the
//     neighbors are adjacent integers, leaving nothing in between
func Between(before, after int64) (int64, error) {
	if before >= after || after-before <= 1 {
		return 0, ErrNoGap
	}
	return before + (after-before)/2, nil
}

// Prepend computes an insertion position in front of the first sibling.
//
// Parameters:
//   - after: position of the sibling the new entity goes before
//
// Returns:
//   - after - Gap while that stays positive, otherwise half of after,
//     so repeated prepends walk down through 512, 256, ..., 1
//   - ErrNoGap once after reaches 1 and no smaller positive position
//     remains
func Prepend(after int64) (int64, error) {
	if after > Gap {
		return after - Gap, nil
	}
	if half := after / 2; half > 0 {
		return half, nil
	}
	return 0, ErrNoGap
}
