package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/volleyhub/registration-api/internal/domain"
)

type teamFixture struct {
	mem        *memory
	teams      *memTeams
	storage    *memStorage
	svc        *TeamService
	tournament domain.Tournament
}

func newTeamFixture(t *testing.T, category domain.Category) *teamFixture {
	t.Helper()

	mem := newMemory()
	teams := &memTeams{memory: mem}
	storage := &memStorage{}
	tournaments := memTournaments{mem}

	start := time.Now().Add(30 * 24 * time.Hour)
	tournament, err := tournaments.Create(context.Background(), domain.Tournament{
		Name:                 "Piala Kota",
		Category:             category,
		Status:               domain.TournamentOpen,
		StartDate:            start,
		EndDate:              start.Add(48 * time.Hour),
		RegistrationDeadline: start.Add(-48 * time.Hour),
		MaxPlayersPerTeam:    3,
	})
	require.NoError(t, err)

	return &teamFixture{
		mem:        mem,
		teams:      teams,
		storage:    storage,
		svc:        NewTeamService(teams, tournaments, memCascade{memory: mem}, staticAssets{"https://cdn.test/logos/a.png"}, storage, 10),
		tournament: tournament,
	}
}

// sequence returns a generator replaying tokens in order.
func sequence(tokens ...string) TokenGenerator {
	var mu sync.Mutex
	i := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		token := tokens[i%len(tokens)]
		i++
		return token, nil
	}
}

func TestCreateTeamTokensAreUniqueUnderConcurrency(t *testing.T) {
	f := newTeamFixture(t, domain.CategoryMixed)

	const n = 64
	created := make([]domain.Team, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			team, err := f.svc.CreateTeam(context.Background(), domain.Team{
				Name:         fmt.Sprintf("Team %02d", i),
				Gender:       domain.GenderPutra,
				TournamentID: f.tournament.ID,
			}, nil)
			created[i] = team
			return err
		})
	}
	require.NoError(t, g.Wait())

	tokens := map[string]bool{}
	for _, team := range created {
		assert.True(t, ValidTokenShape(team.Token), team.Token)
		tokens[team.Token] = true
	}
	assert.Len(t, tokens, n)
}

func TestCreateTeamSkipsExistingToken(t *testing.T) {
	f := newTeamFixture(t, domain.CategoryMixed)
	f.svc.newToken = sequence("AAAA0000", "AAAA0000", "BBBB1111")

	first, err := f.svc.CreateTeam(context.Background(), domain.Team{Name: "One", Gender: domain.GenderPutra, TournamentID: f.tournament.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, "AAAA0000", first.Token)

	second, err := f.svc.CreateTeam(context.Background(), domain.Team{Name: "Two", Gender: domain.GenderPutra, TournamentID: f.tournament.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, "BBBB1111", second.Token)
}

func TestCreateTeamRetriesAfterStoreCollision(t *testing.T) {
	f := newTeamFixture(t, domain.CategoryMixed)
	f.teams.collideOnce = true
	f.svc.newToken = sequence("CCCC2222", "DDDD3333")

	team, err := f.svc.CreateTeam(context.Background(), domain.Team{Name: "Racer", Gender: domain.GenderPutri, TournamentID: f.tournament.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, "DDDD3333", team.Token)
}

func TestCreateTeamTokenSpaceExhausted(t *testing.T) {
	f := newTeamFixture(t, domain.CategoryMixed)
	f.svc.newToken = sequence("AAAA0000")

	_, err := f.svc.CreateTeam(context.Background(), domain.Team{Name: "One", Gender: domain.GenderPutra, TournamentID: f.tournament.ID}, nil)
	require.NoError(t, err)

	logo := &domain.Upload{Name: "logo.png", ContentType: "image/png", Body: strings.NewReader("png")}
	_, err = f.svc.CreateTeam(context.Background(), domain.Team{Name: "Two", Gender: domain.GenderPutra, TournamentID: f.tournament.ID}, logo)
	assert.ErrorIs(t, err, ErrTokenSpaceExhausted)

	// The uploaded logo is not left behind.
	assert.Equal(t, f.storage.uploaded, f.storage.deleted)
}

func TestCreateTeamRules(t *testing.T) {
	f := newTeamFixture(t, domain.CategoryPutra)

	_, err := f.svc.CreateTeam(context.Background(), domain.Team{Name: "Srikandi", Gender: domain.GenderPutri, TournamentID: f.tournament.ID}, nil)
	assert.ErrorIs(t, err, ErrGenderNotAllowed)

	_, err = f.svc.CreateTeam(context.Background(), domain.Team{Name: "Garuda", Gender: domain.GenderPutra, TournamentID: uuid.New()}, nil)
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	_, err = f.svc.CreateTeam(context.Background(), domain.Team{Name: "Garuda", Gender: domain.GenderPutra, TournamentID: f.tournament.ID}, nil)
	require.NoError(t, err)

	_, err = f.svc.CreateTeam(context.Background(), domain.Team{Name: "Garuda", Gender: domain.GenderPutra, TournamentID: f.tournament.ID}, nil)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "name", conflict.Field)
	assert.Equal(t, domain.ConflictPrecheck, conflict.Source)
}

func TestUpdateTeamExcludesItself(t *testing.T) {
	f := newTeamFixture(t, domain.CategoryMixed)

	team, err := f.svc.CreateTeam(context.Background(), domain.Team{Name: "Garuda", Gender: domain.GenderPutra, TournamentID: f.tournament.ID}, nil)
	require.NoError(t, err)

	logo := &domain.Upload{Name: "new.png", ContentType: "image/png", Body: strings.NewReader("png")}
	updated, err := f.svc.UpdateTeam(context.Background(), team.ID, "Garuda", domain.GenderPutra, logo)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/logos/new.png", updated.Logo)
	assert.Equal(t, team.Token, updated.Token)
}

func TestDeleteTeam(t *testing.T) {
	f := newTeamFixture(t, domain.CategoryMixed)

	team, err := f.svc.CreateTeam(context.Background(), domain.Team{Name: "Garuda", Gender: domain.GenderPutra, TournamentID: f.tournament.ID}, nil)
	require.NoError(t, err)

	_, err = f.svc.DeleteTeam(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.test/logos/a.png"}, f.storage.deleted)

	_, err = f.svc.DeleteTeam(context.Background(), team.ID)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
