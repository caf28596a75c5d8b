package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository/dao"
)

type stubPlayerDAO struct {
	PlayerDAO
	insertErr error
}

func (s *stubPlayerDAO) Insert(_ context.Context, p dao.Player) (dao.Player, error) {
	if s.insertErr != nil {
		return dao.Player{}, s.insertErr
	}
	p.ID = uuid.New()
	return p, nil
}

type stubTeamDAO struct {
	TeamDAO
	insertErr error
}

func (s *stubTeamDAO) Insert(_ context.Context, t dao.Team) (dao.Team, error) {
	return dao.Team{}, s.insertErr
}

func TestPlayerCreateTranslatesUniqueViolation(t *testing.T) {
	nik := "3201010101010001"
	repo := NewPlayerRepository(&stubPlayerDAO{
		insertErr: &dao.UniqueViolation{Index: dao.IndexPlayerNIK, Field: "nik"},
	})

	_, err := repo.Create(context.Background(), domain.Player{NIK: &nik})

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "player", conflict.Entity)
	assert.Equal(t, "nik", conflict.Field)
	assert.Equal(t, nik, conflict.Value)
	assert.Equal(t, domain.ConflictStore, conflict.Source)
}

func TestPlayerCreatePassesOtherErrors(t *testing.T) {
	errBoom := errors.New("boom")
	repo := NewPlayerRepository(&stubPlayerDAO{insertErr: errBoom})

	_, err := repo.Create(context.Background(), domain.Player{})
	assert.ErrorIs(t, err, errBoom)

	var conflict *domain.ConflictError
	assert.False(t, errors.As(err, &conflict))
}

func TestTeamCreateKeepsTokenCollision(t *testing.T) {
	repo := NewTeamRepository(&stubTeamDAO{
		insertErr: &dao.UniqueViolation{Index: dao.IndexTeamToken, Field: "token"},
	})

	_, err := repo.Create(context.Background(), domain.Team{Token: "ABCD1234"})
	assert.True(t, IsTokenCollision(err))

	var conflict *domain.ConflictError
	assert.False(t, errors.As(err, &conflict))
}

func TestTeamCreateNameConflict(t *testing.T) {
	repo := NewTeamRepository(&stubTeamDAO{
		insertErr: &dao.UniqueViolation{Index: dao.IndexTeamNameGender, Field: "name"},
	})

	_, err := repo.Create(context.Background(), domain.Team{Name: "Garuda", Gender: domain.GenderPutra})

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Garuda", conflict.Value)
	assert.False(t, IsTokenCollision(err))
}

func TestNotFoundSentinelsSurviveWrapping(t *testing.T) {
	repo := NewPlayerRepository(&findStub{})

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

type findStub struct {
	PlayerDAO
}

func (findStub) FindByID(context.Context, uuid.UUID) (dao.Player, error) {
	return dao.Player{}, dao.ErrPlayerNotFound
}
