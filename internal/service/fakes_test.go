package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/cascade"
	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository"
	"github.com/volleyhub/registration-api/internal/repository/dao"
)

// memory is an in-memory stand-in for the repositories. Unique constraints
// are enforced the way the store enforces them.
type memory struct {
	mu          sync.Mutex
	tournaments map[uuid.UUID]domain.Tournament
	teams       map[uuid.UUID]domain.Team
	players     map[uuid.UUID]domain.Player
	officials   map[uuid.UUID]domain.Official
	jerseys     map[uuid.UUID]domain.TeamJersey
	documents   map[uuid.UUID]domain.Document
	users       map[uuid.UUID]domain.User
	writes      int
}

func newMemory() *memory {
	return &memory{
		tournaments: map[uuid.UUID]domain.Tournament{},
		teams:       map[uuid.UUID]domain.Team{},
		players:     map[uuid.UUID]domain.Player{},
		officials:   map[uuid.UUID]domain.Official{},
		jerseys:     map[uuid.UUID]domain.TeamJersey{},
		documents:   map[uuid.UUID]domain.Document{},
		users:       map[uuid.UUID]domain.User{},
	}
}

type memTournaments struct{ *memory }

func (m memTournaments) Create(_ context.Context, t domain.Tournament) (domain.Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.New()
	m.tournaments[t.ID] = t
	m.writes++
	return t, nil
}

func (m memTournaments) FindByID(_ context.Context, id uuid.UUID) (domain.Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tournaments[id]
	if !ok {
		return domain.Tournament{}, fmt.Errorf("memTournaments.FindByID -> %w", repository.ErrTournamentNotFound)
	}
	return t, nil
}

func (m memTournaments) List(context.Context, domain.TournamentFilter) ([]domain.Tournament, error) {
	return nil, nil
}

func (m memTournaments) Update(_ context.Context, t domain.Tournament) (domain.Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournaments[t.ID] = t
	m.writes++
	return t, nil
}

type memTeams struct {
	*memory
	// collideOnce makes the next Create fail with a token collision even
	// though TokenExists reported the token free.
	collideOnce bool
}

func (m *memTeams) Create(_ context.Context, t domain.Team) (domain.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collideOnce {
		m.collideOnce = false
		return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", &dao.UniqueViolation{Index: dao.IndexTeamToken, Field: "token"})
	}
	for _, other := range m.teams {
		if other.Token == t.Token {
			return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", &dao.UniqueViolation{Index: dao.IndexTeamToken, Field: "token"})
		}
		if other.Name == t.Name && other.Gender == t.Gender {
			return domain.Team{}, &domain.ConflictError{Entity: "team", Field: "name", Value: t.Name, Source: domain.ConflictStore}
		}
	}
	t.ID = uuid.New()
	m.teams[t.ID] = t
	m.writes++
	return t, nil
}

func (m *memTeams) FindByID(_ context.Context, id uuid.UUID) (domain.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.teams[id]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}
	return t, nil
}

func (m *memTeams) FindByToken(_ context.Context, token string) (domain.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.teams {
		if t.Token == token {
			return t, nil
		}
	}
	return domain.Team{}, repository.ErrTeamNotFound
}

func (m *memTeams) FindRoster(_ context.Context, id uuid.UUID) (domain.TeamRoster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.teams[id]
	if !ok {
		return domain.TeamRoster{}, repository.ErrTeamNotFound
	}
	roster := domain.TeamRoster{Team: t}
	for _, p := range m.players {
		if p.TeamID == id {
			roster.Players = append(roster.Players, p)
		}
	}
	return roster, nil
}

func (m *memTeams) ListByTournament(_ context.Context, tournamentID uuid.UUID) ([]domain.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var teams []domain.Team
	for _, t := range m.teams {
		if t.TournamentID == tournamentID {
			teams = append(teams, t)
		}
	}
	return teams, nil
}

func (m *memTeams) Update(_ context.Context, t domain.Team) (domain.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams[t.ID] = t
	m.writes++
	return t, nil
}

func (m *memTeams) TokenExists(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.teams {
		if t.Token == token {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTeams) NameGenderExists(_ context.Context, name string, gender domain.Gender, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.teams {
		if id != excludeID && t.Name == name && t.Gender == gender {
			return true, nil
		}
	}
	return false, nil
}

type memPlayers struct{ *memory }

func (m memPlayers) Create(_ context.Context, p domain.Player) (domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.New()
	m.players[p.ID] = p
	m.writes++
	return p, nil
}

func (m memPlayers) FindByID(_ context.Context, id uuid.UUID) (domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return domain.Player{}, repository.ErrPlayerNotFound
	}
	return p, nil
}

func (m memPlayers) ListByTeam(_ context.Context, teamID uuid.UUID) ([]domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var players []domain.Player
	for _, p := range m.players {
		if p.TeamID == teamID {
			players = append(players, p)
		}
	}
	return players, nil
}

func (m memPlayers) CountByTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	players, err := m.ListByTeam(ctx, teamID)
	return len(players), err
}

func (m memPlayers) Update(_ context.Context, p domain.Player) (domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = p
	m.writes++
	return p, nil
}

func (m memPlayers) taken(match func(domain.Player) bool, excludeID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.players {
		if id != excludeID && match(p) {
			return true
		}
	}
	return false
}

func (m memPlayers) JerseyNumberTaken(_ context.Context, teamID uuid.UUID, number int, excludeID uuid.UUID) (bool, error) {
	return m.taken(func(p domain.Player) bool { return p.TeamID == teamID && p.NoJersey == number }, excludeID), nil
}

func (m memPlayers) NIKTaken(_ context.Context, nik string, excludeID uuid.UUID) (bool, error) {
	return m.taken(func(p domain.Player) bool { return p.NIK != nil && *p.NIK == nik }, excludeID), nil
}

func (m memPlayers) NISNTaken(_ context.Context, nisn string, excludeID uuid.UUID) (bool, error) {
	return m.taken(func(p domain.Player) bool { return p.NISN != nil && *p.NISN == nisn }, excludeID), nil
}

func (m memPlayers) CreateDocument(_ context.Context, d domain.Document) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = uuid.New()
	m.documents[d.ID] = d
	m.writes++
	return d, nil
}

func (m memPlayers) ListDocuments(_ context.Context, playerID uuid.UUID) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var documents []domain.Document
	for _, d := range m.documents {
		if d.PlayerID == playerID {
			documents = append(documents, d)
		}
	}
	return documents, nil
}

type memOfficials struct{ *memory }

func (m memOfficials) Create(_ context.Context, o domain.Official) (domain.Official, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = uuid.New()
	m.officials[o.ID] = o
	m.writes++
	return o, nil
}

func (m memOfficials) FindByID(_ context.Context, id uuid.UUID) (domain.Official, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.officials[id]
	if !ok {
		return domain.Official{}, repository.ErrOfficialNotFound
	}
	return o, nil
}

func (m memOfficials) ListByTeam(context.Context, uuid.UUID) ([]domain.Official, error) {
	return nil, nil
}

func (m memOfficials) Update(_ context.Context, o domain.Official) (domain.Official, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.officials[o.ID] = o
	m.writes++
	return o, nil
}

func (m memOfficials) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.officials, id)
	m.writes++
	return nil
}

func (m memOfficials) PositionTaken(_ context.Context, teamID uuid.UUID, posisi domain.OfficialPosition, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, o := range m.officials {
		if id != excludeID && o.TeamID == teamID && o.Posisi == posisi {
			return true, nil
		}
	}
	return false, nil
}

type memJerseys struct{ *memory }

func (m memJerseys) Save(_ context.Context, j domain.TeamJersey) (domain.TeamJersey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.jerseys[j.TeamID]; ok {
		j.ID = existing.ID
	} else {
		j.ID = uuid.New()
	}
	m.jerseys[j.TeamID] = j
	m.writes++
	return j, nil
}

func (m memJerseys) FindByTeam(_ context.Context, teamID uuid.UUID) (domain.TeamJersey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jerseys[teamID]
	if !ok {
		return domain.TeamJersey{}, repository.ErrJerseyNotFound
	}
	return j, nil
}

func (m memJerseys) DeleteByTeam(_ context.Context, teamID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jerseys[teamID]; !ok {
		return repository.ErrJerseyNotFound
	}
	delete(m.jerseys, teamID)
	m.writes++
	return nil
}

type memUsers struct{ *memory }

func (m memUsers) Create(_ context.Context, u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = uuid.New()
	m.users[u.ID] = u
	m.writes++
	return u, nil
}

func (m memUsers) FindByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m memUsers) FindByLogin(_ context.Context, login string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

// memCascade deletes from memory and records the calls it served.
type memCascade struct {
	*memory
	fail error
}

func (m memCascade) DeleteTournament(_ context.Context, id uuid.UUID) (cascade.Result, error) {
	if m.fail != nil {
		return nil, fmt.Errorf("%w: %w", cascade.ErrCascadeFailed, m.fail)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tournaments[id]; !ok {
		return nil, cascade.ErrNotFound
	}
	delete(m.tournaments, id)
	return cascade.Result{cascade.Tournaments: 1}, nil
}

func (m memCascade) DeleteTeam(_ context.Context, id uuid.UUID) (cascade.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.teams[id]; !ok {
		return nil, cascade.ErrNotFound
	}
	delete(m.teams, id)
	return cascade.Result{cascade.Teams: 1}, nil
}

func (m memCascade) DeletePlayer(_ context.Context, id uuid.UUID) (cascade.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[id]; !ok {
		return nil, cascade.ErrNotFound
	}
	delete(m.players, id)
	m.writes++
	return cascade.Result{cascade.Players: 1}, nil
}

type staticAssets []string

func (a staticAssets) AssetURLs(context.Context, cascade.Entity, uuid.UUID) ([]string, error) {
	return a, nil
}

// memStorage records uploads and deletions; failUpload makes every upload fail.
type memStorage struct {
	mu         sync.Mutex
	uploaded   []string
	deleted    []string
	failUpload bool
}

var errStorageDown = errors.New("storage unavailable")

func (s *memStorage) Upload(_ context.Context, folder string, file domain.Upload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpload {
		return "", errStorageDown
	}
	url := "https://cdn.test/" + folder + "/" + file.Name
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *memStorage) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, url)
	return nil
}
