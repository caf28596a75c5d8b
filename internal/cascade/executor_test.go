package cascade

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row map[string]uuid.UUID

// memStore keeps rows per entity and restores a snapshot when the
// transaction function fails.
type memStore struct {
	tables map[Entity][]row
	failOn Entity
	steps  []Entity
}

func newMemStore() *memStore {
	return &memStore{tables: map[Entity][]row{}}
}

func (s *memStore) insert(e Entity, r row) uuid.UUID {
	if _, ok := r["id"]; !ok {
		r["id"] = uuid.New()
	}
	s.tables[e] = append(s.tables[e], r)
	return r["id"]
}

func (s *memStore) count(e Entity) int {
	return len(s.tables[e])
}

func (s *memStore) Transaction(ctx context.Context, fn func(tx Tx) error) error {
	snapshot := make(map[Entity][]row, len(s.tables))
	for e, rows := range s.tables {
		snapshot[e] = append([]row(nil), rows...)
	}

	if err := fn(s); err != nil {
		s.tables = snapshot
		return err
	}
	return nil
}

func (s *memStore) Exists(_ context.Context, e Entity, id uuid.UUID) (bool, error) {
	for _, r := range s.tables[e] {
		if r["id"] == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) IDs(_ context.Context, e Entity, column string, parents []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, r := range s.tables[e] {
		if contains(parents, r[column]) {
			ids = append(ids, r["id"])
		}
	}
	return ids, nil
}

func (s *memStore) Delete(_ context.Context, step Step) (int64, error) {
	s.steps = append(s.steps, step.Entity)
	if step.Entity == s.failOn {
		return 0, errors.New("simulated store failure")
	}

	kept := s.tables[step.Entity][:0:0]
	var n int64
	for _, r := range s.tables[step.Entity] {
		if contains(step.IDs, r[step.Column]) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	s.tables[step.Entity] = kept
	return n, nil
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// seedTournament builds a tournament with two teams, each with three
// players (one document each), two officials and a jersey.
func seedTournament(s *memStore) uuid.UUID {
	tournamentID := s.insert(Tournaments, row{})
	for i := 0; i < 2; i++ {
		teamID := s.insert(Teams, row{"tournament_id": tournamentID})
		s.insert(Registrations, row{"tournament_id": tournamentID, "team_id": teamID})
		s.insert(Jerseys, row{"team_id": teamID})
		for j := 0; j < 2; j++ {
			s.insert(Officials, row{"team_id": teamID})
		}
		for j := 0; j < 3; j++ {
			playerID := s.insert(Players, row{"team_id": teamID})
			s.insert(Documents, row{"player_id": playerID})
		}
	}
	return tournamentID
}

func TestDeleteTournamentRemovesEverything(t *testing.T) {
	s := newMemStore()
	tournamentID := seedTournament(s)
	other := seedTournament(s)

	result, err := NewExecutor(s).DeleteTournament(context.Background(), tournamentID)
	require.NoError(t, err)

	assert.Equal(t, Result{
		Documents:     6,
		Players:       6,
		Officials:     4,
		Jerseys:       2,
		Registrations: 2,
		Teams:         2,
		Tournaments:   1,
	}, result)

	// Only the other tournament's rows remain.
	survivors := map[Entity]int{
		Documents: 6, Players: 6, Officials: 4, Jerseys: 2, Registrations: 2, Teams: 2, Tournaments: 1,
	}
	for e, want := range survivors {
		assert.Equal(t, want, s.count(e), e)
	}

	ok, err := s.Exists(context.Background(), Tournaments, other)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteTournamentIsAtomic(t *testing.T) {
	s := newMemStore()
	tournamentID := seedTournament(s)
	s.failOn = Players

	_, err := NewExecutor(s).DeleteTournament(context.Background(), tournamentID)
	require.ErrorIs(t, err, ErrCascadeFailed)

	assert.Equal(t, []Entity{Documents, Players}, s.steps)
	assert.Equal(t, 6, s.count(Documents), "documents deleted before the failure must be restored")
	assert.Equal(t, 6, s.count(Players))
	assert.Equal(t, 1, s.count(Tournaments))
}

func TestDeleteTournamentNotFound(t *testing.T) {
	s := newMemStore()
	seedTournament(s)

	_, err := NewExecutor(s).DeleteTournament(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrCascadeFailed)
	assert.Empty(t, s.steps, "no delete may run for a missing target")
}

func TestDeleteEmptyTournament(t *testing.T) {
	s := newMemStore()
	tournamentID := s.insert(Tournaments, row{})

	result, err := NewExecutor(s).DeleteTournament(context.Background(), tournamentID)
	require.NoError(t, err)

	assert.Equal(t, Result{Tournaments: 1}, result)
	assert.Equal(t, 0, s.count(Tournaments))
}

func TestDeleteTeam(t *testing.T) {
	s := newMemStore()
	tournamentID := seedTournament(s)
	teamIDs, err := s.IDs(context.Background(), Teams, "tournament_id", []uuid.UUID{tournamentID})
	require.NoError(t, err)
	require.Len(t, teamIDs, 2)

	result, err := NewExecutor(s).DeleteTeam(context.Background(), teamIDs[0])
	require.NoError(t, err)

	assert.Equal(t, int64(3), result[Documents])
	assert.Equal(t, int64(3), result[Players])
	assert.Equal(t, int64(2), result[Officials])
	assert.Equal(t, int64(1), result[Jerseys])
	assert.Equal(t, int64(1), result[Registrations])
	assert.Equal(t, int64(1), result[Teams])

	assert.Equal(t, 1, s.count(Teams))
	assert.Equal(t, 3, s.count(Players))
	assert.Equal(t, 1, s.count(Tournaments))
}

func TestDeletePlayer(t *testing.T) {
	s := newMemStore()
	seedTournament(s)
	playerID := s.tables[Players][0]["id"]

	result, err := NewExecutor(s).DeletePlayer(context.Background(), playerID)
	require.NoError(t, err)

	assert.Equal(t, Result{Documents: 1, Players: 1}, result)
	assert.Equal(t, 5, s.count(Players))
	assert.Equal(t, 5, s.count(Documents))
}
