package cascade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func indexOf(p Plan, e Entity) int {
	for i, step := range p {
		if step.Entity == e {
			return i
		}
	}
	return -1
}

func TestPlanTournamentOrder(t *testing.T) {
	tournamentID := uuid.New()
	teamIDs := []uuid.UUID{uuid.New(), uuid.New()}
	playerIDs := []uuid.UUID{uuid.New()}

	p := PlanTournament(tournamentID, teamIDs, playerIDs)

	assert.Equal(t, []Entity{Documents, Players, Officials, Jerseys, Registrations, Teams, Tournaments}, p.Entities())

	assert.Equal(t, Step{Entity: Documents, Column: "player_id", IDs: playerIDs}, p[0])
	assert.Equal(t, Step{Entity: Players, Column: "team_id", IDs: teamIDs}, p[1])
	assert.Equal(t, Step{Entity: Registrations, Column: "tournament_id", IDs: []uuid.UUID{tournamentID}}, p[4])
	assert.Equal(t, Step{Entity: Tournaments, Column: "id", IDs: []uuid.UUID{tournamentID}}, p[6])
}

func TestPlanChildrenBeforeParents(t *testing.T) {
	parents := map[Entity][]Entity{
		Documents:     {Players},
		Players:       {Teams},
		Officials:     {Teams},
		Jerseys:       {Teams},
		Registrations: {Teams, Tournaments},
		Teams:         {Tournaments},
	}

	plans := map[string]Plan{
		"tournament": PlanTournament(uuid.New(), nil, nil),
		"team":       PlanTeam(uuid.New(), nil),
		"player":     PlanPlayer(uuid.New()),
	}

	for name, p := range plans {
		t.Run(name, func(t *testing.T) {
			for child, ps := range parents {
				ci := indexOf(p, child)
				if ci < 0 {
					continue
				}
				for _, parent := range ps {
					if pi := indexOf(p, parent); pi >= 0 {
						assert.Less(t, ci, pi, "%s must be deleted before %s", child, parent)
					}
				}
			}
		})
	}
}

func TestPlanTeamTargetsOnlyTheTeam(t *testing.T) {
	teamID := uuid.New()
	p := PlanTeam(teamID, nil)

	assert.Equal(t, []Entity{Documents, Players, Officials, Jerseys, Registrations, Teams}, p.Entities())
	for _, step := range p[1:] {
		assert.Equal(t, []uuid.UUID{teamID}, step.IDs, step.Entity)
	}
	assert.Empty(t, p[0].IDs)
}

func TestPlanPlayer(t *testing.T) {
	playerID := uuid.New()
	p := PlanPlayer(playerID)

	assert.Equal(t, Plan{
		{Entity: Documents, Column: "player_id", IDs: []uuid.UUID{playerID}},
		{Entity: Players, Column: "id", IDs: []uuid.UUID{playerID}},
	}, p)
}
