// Package cascade removes a tournament, team or player together with every
// row that depends on it.
//
// Deletion is split in two: a pure planning step that turns a target id and
// the ids enumerated beneath it into an ordered list of delete statements,
// and an Executor that enumerates, plans and runs the statements inside one
// store transaction. Children always come before their parents in a plan.
package cascade

import "github.com/google/uuid"

type Entity string

const (
	Documents     Entity = "documents"
	Players       Entity = "players"
	Officials     Entity = "officials"
	Jerseys       Entity = "team_jerseys"
	Registrations Entity = "registrations"
	Teams         Entity = "teams"
	Tournaments   Entity = "tournaments"
)

// Step deletes every row of Entity whose Column is one of IDs.
type Step struct {
	Entity Entity
	Column string
	IDs    []uuid.UUID
}

type Plan []Step

// PlanTournament orders the deletion of a tournament, its teams and their rosters.
func PlanTournament(tournamentID uuid.UUID, teamIDs, playerIDs []uuid.UUID) Plan {
	target := []uuid.UUID{tournamentID}

	return Plan{
		{Entity: Documents, Column: "player_id", IDs: playerIDs},
		{Entity: Players, Column: "team_id", IDs: teamIDs},
		{Entity: Officials, Column: "team_id", IDs: teamIDs},
		{Entity: Jerseys, Column: "team_id", IDs: teamIDs},
		{Entity: Registrations, Column: "tournament_id", IDs: target},
		{Entity: Teams, Column: "tournament_id", IDs: target},
		{Entity: Tournaments, Column: "id", IDs: target},
	}
}

// PlanTeam orders the deletion of a single team and its roster.
func PlanTeam(teamID uuid.UUID, playerIDs []uuid.UUID) Plan {
	target := []uuid.UUID{teamID}

	return Plan{
		{Entity: Documents, Column: "player_id", IDs: playerIDs},
		{Entity: Players, Column: "team_id", IDs: target},
		{Entity: Officials, Column: "team_id", IDs: target},
		{Entity: Jerseys, Column: "team_id", IDs: target},
		{Entity: Registrations, Column: "team_id", IDs: target},
		{Entity: Teams, Column: "id", IDs: target},
	}
}

// PlanPlayer orders the deletion of a player and its documents.
func PlanPlayer(playerID uuid.UUID) Plan {
	target := []uuid.UUID{playerID}

	return Plan{
		{Entity: Documents, Column: "player_id", IDs: target},
		{Entity: Players, Column: "id", IDs: target},
	}
}

// Entities lists the entities touched by p, in execution order.
func (p Plan) Entities() []Entity {
	entities := make([]Entity, len(p))
	for i, step := range p {
		entities[i] = step.Entity
	}
	return entities
}
