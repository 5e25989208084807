// Package reorder resolves drag-and-drop style move requests into
// concrete positions. One engine serves every sibling scope in the
// system (boards under an owner, columns under a board, tasks under a
// column) through the Repository interface, so the gap arithmetic,
// rebalancing, and transactional locking live in exactly one place.
package reorder

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// Sibling is the engine's view of one orderable entity: its identity,
// the scope it currently belongs to, and its position within that
// scope.
type Sibling struct {
	ID       uuid.UUID
	ScopeID  uuid.UUID
	Position int64
}

// Repository gives the engine access to one sibling scope family.
// Implementations adapt an entity store (boards, columns, tasks) and
// translate ScopeID to the appropriate foreign key.
type Repository interface {
	// ListForUpdate returns all siblings in the scope ordered by
	// position ascending, row-locking each of them for the duration of
	// the surrounding transaction. Returns an empty slice for an empty
	// scope.
	ListForUpdate(ctx context.Context, scopeID uuid.UUID) ([]Sibling, error)

	// Get retrieves a single sibling by ID regardless of scope.
	// Returns an error satisfying errors.Is(err, store.ErrNotFound)
	// when no such entity exists.
	Get(ctx context.Context, id uuid.UUID) (Sibling, error)

	// UpdatePosition rewrites one sibling's position within its
	// current scope.
	UpdatePosition(ctx context.Context, id uuid.UUID, position int64) error

	// UpdateScopeAndPosition moves a sibling into another scope and
	// assigns its position there in a single statement.
	// Implementations for entities that cannot change scope return
	// store.ErrNotImplemented.
	UpdateScopeAndPosition(ctx context.Context, id uuid.UUID, scopeID uuid.UUID, position int64) error

	// MaxPosition returns the highest position in the scope, or 0 when
	// the scope is empty.
	MaxPosition(ctx context.Context, scopeID uuid.UUID) (int64, error)

	// WithTx returns a new Repository instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) Repository

	// DB returns the underlying database connection.
	DB() *sql.DB
}

// MoveRequest describes where an entity should land. ScopeID names the
// destination scope, which may differ from the entity's current scope
// for entities that support cross-scope moves. BeforeID and AfterID
// name the intended neighbors; either or both may be nil.
type MoveRequest struct {
	ID      uuid.UUID
	ScopeID uuid.UUID

	// BeforeID is the sibling the entity should land after, AfterID the
	// sibling it should land before. Nil means no constraint on that
	// side: both nil appends to the end of the scope.
	BeforeID *uuid.UUID
	AfterID  *uuid.UUID
}

// Placement is the outcome of a resolved move.
type Placement struct {
	Position int64
	ScopeID  uuid.UUID
}

// Engine errors. The first four describe requests the client could have
// avoided with a consistent view of the scope; ErrEntityNotFound means
// the moving entity is gone; ErrNoPosition means position allocation
// failed even after a rebalance and the client should refetch and
// retry.
var (
	ErrEntityNotFound     = errors.New("entity to move not found")
	ErrNeighborNotFound   = errors.New("neighbor not found")
	ErrNeighborWrongScope = errors.New("neighbor belongs to a different scope")
	ErrNeighborIsSelf     = errors.New("entity cannot be its own neighbor")
	ErrNeighborsEqual     = errors.New("before and after neighbors must differ")
	ErrNoPosition         = errors.New("unable to allocate position")
)
