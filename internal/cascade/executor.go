package cascade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("cascade target not found")
	ErrCascadeFailed = errors.New("deletion did not complete")
)

// Tx is the view of the store available inside a transaction.
type Tx interface {
	Exists(ctx context.Context, entity Entity, id uuid.UUID) (bool, error)
	// IDs returns the primary keys of entity rows whose column is in parents.
	IDs(ctx context.Context, entity Entity, column string, parents []uuid.UUID) ([]uuid.UUID, error)
	Delete(ctx context.Context, step Step) (int64, error)
}

// Store runs fn in a transaction. Returning an error from fn must roll back
// every write fn made.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Tx) error) error
}

// Result holds the number of rows deleted per entity. Entities with no
// deleted rows are absent.
type Result map[Entity]int64

type Executor struct {
	store Store
}

func NewExecutor(store Store) *Executor {
	return &Executor{
		store: store,
	}
}

func (e *Executor) DeleteTournament(ctx context.Context, id uuid.UUID) (Result, error) {
	return e.run(ctx, Tournaments, id, func(ctx context.Context, tx Tx) (Plan, error) {
		teamIDs, err := tx.IDs(ctx, Teams, "tournament_id", []uuid.UUID{id})
		if err != nil {
			return nil, fmt.Errorf("tx.IDs(teams) -> %w", err)
		}

		playerIDs, err := tx.IDs(ctx, Players, "team_id", teamIDs)
		if err != nil {
			return nil, fmt.Errorf("tx.IDs(players) -> %w", err)
		}

		return PlanTournament(id, teamIDs, playerIDs), nil
	})
}

func (e *Executor) DeleteTeam(ctx context.Context, id uuid.UUID) (Result, error) {
	return e.run(ctx, Teams, id, func(ctx context.Context, tx Tx) (Plan, error) {
		playerIDs, err := tx.IDs(ctx, Players, "team_id", []uuid.UUID{id})
		if err != nil {
			return nil, fmt.Errorf("tx.IDs(players) -> %w", err)
		}

		return PlanTeam(id, playerIDs), nil
	})
}

func (e *Executor) DeletePlayer(ctx context.Context, id uuid.UUID) (Result, error) {
	return e.run(ctx, Players, id, func(context.Context, Tx) (Plan, error) {
		return PlanPlayer(id), nil
	})
}

type planner func(ctx context.Context, tx Tx) (Plan, error)

func (e *Executor) run(ctx context.Context, target Entity, id uuid.UUID, plan planner) (Result, error) {
	var result Result

	err := e.store.Transaction(ctx, func(tx Tx) error {
		ok, err := tx.Exists(ctx, target, id)
		if err != nil {
			return fmt.Errorf("tx.Exists -> %w", err)
		}
		if !ok {
			return ErrNotFound
		}

		steps, err := plan(ctx, tx)
		if err != nil {
			return err
		}

		deleted := make(Result, len(steps))
		for _, step := range steps {
			if len(step.IDs) == 0 {
				continue
			}

			n, err := tx.Delete(ctx, step)
			if err != nil {
				return fmt.Errorf("tx.Delete(%s) -> %w", step.Entity, err)
			}
			if n > 0 {
				deleted[step.Entity] += n
			}
		}

		// The target vanished between the existence check and its own delete.
		if deleted[target] == 0 {
			return ErrNotFound
		}

		result = deleted
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrCascadeFailed, err)
	}

	return result, nil
}
