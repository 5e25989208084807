package reorder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/domain/position"
	"github.com/sarmadH97/keeyu-task-board/internal/platform/logger"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

// Engine resolves move requests for one sibling scope family. It is
// safe for concurrent use; each Move runs in its own transaction.
type Engine struct {
	entity string
	repo   Repository
	logger *slog.Logger
}

// NewEngine creates an engine over the given repository. The entity
// name only labels log output ("board", "column", "task").
func NewEngine(entity string, repo Repository, logger *slog.Logger) *Engine {
	if entity == "" {
		panic("entity cannot be empty")
	}
	if repo == nil {
		panic("repo cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		entity: entity,
		repo:   repo,
		logger: logger.With(
			slog.String("component", "reorder_engine"),
			slog.String("entity", entity),
		),
	}
}

// WithTx returns an engine bound to the provided transaction. Only
// AppendPosition may be called on the result; Move manages its own
// transaction and must be called on the root engine.
func (e *Engine) WithTx(tx *sql.Tx) *Engine {
	return &Engine{
		entity: e.entity,
		repo:   e.repo.WithTx(tx),
		logger: e.logger,
	}
}

// AppendPosition computes the position for a new entity appended at
// the end of the scope. Callers run it inside the same transaction as
// the subsequent insert; a concurrent append racing past it surfaces
// as a deferred unique violation at commit, which the caller retries.
func (e *Engine) AppendPosition(ctx context.Context, scopeID uuid.UUID) (int64, error) {
	last, err := e.repo.MaxPosition(ctx, scopeID)
	if err != nil {
		return 0, fmt.Errorf("failed to get max position: %w", err)
	}
	return position.NextAppend(last), nil
}

// Move places an entity at the requested spot in the destination
// scope and returns where it landed.
//
// The whole operation runs in one transaction: the destination
// siblings are read under row locks, the target position is computed
// from the locked snapshot, and the entity's row is rewritten. When
// the neighbors leave no integer gap, every destination sibling is
// rebalanced to uniform spacing and the computation retried once; a
// second failure returns ErrNoPosition.
//
// Returns ErrEntityNotFound, ErrNeighborsEqual, ErrNeighborIsSelf,
// ErrNeighborNotFound, or ErrNeighborWrongScope for invalid requests.
// Siblings in the source scope of a cross-scope move keep their
// positions.
func (e *Engine) Move(ctx context.Context, req MoveRequest) (*Placement, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	if err := req.validate(); err != nil {
		log.Warn("rejected move request",
			slog.String("id", req.ID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	var placement *Placement
	err := store.RunInTransaction(ctx, e.repo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		repo := e.repo.WithTx(tx)

		moving, err := repo.Get(ctx, req.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrEntityNotFound
			}
			return fmt.Errorf("failed to get moving entity: %w", err)
		}

		siblings, err := repo.ListForUpdate(ctx, req.ScopeID)
		if err != nil {
			return fmt.Errorf("failed to lock destination siblings: %w", err)
		}

		before, err := resolveNeighbor(ctx, repo, req.BeforeID, req.ScopeID, siblings)
		if err != nil {
			return err
		}
		after, err := resolveNeighbor(ctx, repo, req.AfterID, req.ScopeID, siblings)
		if err != nil {
			return err
		}

		pos, err := computePosition(req.ID, before, after, siblings)
		if errors.Is(err, position.ErrNoGap) {
			before, after, siblings, err = e.rebalance(ctx, repo, before, after, siblings)
			if err != nil {
				return err
			}
			pos, err = computePosition(req.ID, before, after, siblings)
			if errors.Is(err, position.ErrNoGap) {
				log.Warn("no position available after rebalance",
					slog.String("id", req.ID.String()),
					slog.String("scope_id", req.ScopeID.String()))
				return ErrNoPosition
			}
		}
		if err != nil {
			return err
		}

		if moving.ScopeID == req.ScopeID {
			err = repo.UpdatePosition(ctx, req.ID, pos)
		} else {
			err = repo.UpdateScopeAndPosition(ctx, req.ID, req.ScopeID, pos)
		}
		if err != nil {
			return fmt.Errorf("failed to write position: %w", err)
		}

		placement = &Placement{Position: pos, ScopeID: req.ScopeID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("resolved move",
		slog.String("id", req.ID.String()),
		slog.String("scope_id", placement.ScopeID.String()),
		slog.Int64("position", placement.Position))
	return placement, nil
}

// validate rejects the neighbor combinations that no scope state could
// make valid.
func (r MoveRequest) validate() error {
	if r.BeforeID != nil && r.AfterID != nil && *r.BeforeID == *r.AfterID {
		return ErrNeighborsEqual
	}
	if r.BeforeID != nil && *r.BeforeID == r.ID {
		return ErrNeighborIsSelf
	}
	if r.AfterID != nil && *r.AfterID == r.ID {
		return ErrNeighborIsSelf
	}
	return nil
}

// resolveNeighbor finds the named neighbor in the locked destination
// list. A neighbor missing from the list either does not exist at all
// or lives in another scope; a point read distinguishes the two so the
// client gets a precise error.
func resolveNeighbor(
	ctx context.Context,
	repo Repository,
	id *uuid.UUID,
	scopeID uuid.UUID,
	siblings []Sibling,
) (*Sibling, error) {
	if id == nil {
		return nil, nil
	}
	for i := range siblings {
		if siblings[i].ID == *id {
			return &siblings[i], nil
		}
	}
	if _, err := repo.Get(ctx, *id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNeighborNotFound
		}
		return nil, fmt.Errorf("failed to get neighbor: %w", err)
	}
	return nil, ErrNeighborWrongScope
}

// computePosition maps the neighbor combination onto the position
// arithmetic. The moving entity is excluded from the append maximum so
// that re-appending the current last sibling keeps its position stable.
func computePosition(movingID uuid.UUID, before, after *Sibling, siblings []Sibling) (int64, error) {
	switch {
	case before != nil && after != nil:
		return position.Between(before.Position, after.Position)
	case before != nil:
		return position.NextAppend(before.Position), nil
	case after != nil:
		return position.Prepend(after.Position)
	default:
		var last int64
		for _, s := range siblings {
			if s.ID != movingID && s.Position > last {
				last = s.Position
			}
		}
		return position.NextAppend(last), nil
	}
}

// rebalance rewrites every destination sibling to uniform spacing and
// returns the neighbors and sibling list with their new positions. The
// list order, and with it the scope's visible ordering, is preserved.
func (e *Engine) rebalance(
	ctx context.Context,
	repo Repository,
	before, after *Sibling,
	siblings []Sibling,
) (*Sibling, *Sibling, []Sibling, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	ids := make([]uuid.UUID, len(siblings))
	for i, s := range siblings {
		ids[i] = s.ID
	}

	slots := position.Rebalance(ids)
	rebalanced := make([]Sibling, len(siblings))
	for i, slot := range slots {
		if err := repo.UpdatePosition(ctx, slot.ID, slot.Position); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to persist rebalanced position: %w", err)
		}
		rebalanced[i] = Sibling{
			ID:       slot.ID,
			ScopeID:  siblings[i].ScopeID,
			Position: slot.Position,
		}
		if before != nil && before.ID == slot.ID {
			before = &rebalanced[i]
		}
		if after != nil && after.ID == slot.ID {
			after = &rebalanced[i]
		}
	}

	log.Info("rebalanced sibling scope",
		slog.Int("siblings", len(slots)))
	return before, after, rebalanced, nil
}
