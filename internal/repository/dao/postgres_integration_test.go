//go:build integration

package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/volleyhub/registration-api/internal/cascade"
)

func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=volley",
			"POSTGRES_PASSWORD=volley",
			"POSTGRES_DB=volley",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("host=localhost port=%s user=volley password=volley dbname=volley sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	pool.MaxWait = 60 * time.Second
	require.NoError(t, pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}))

	require.NoError(t, InitTables(db))
	t.Cleanup(func() {
		_ = DropTables(db)
	})

	return db
}

func TestPostgresCascade(t *testing.T) {
	db := newPostgresDB(t)
	target := seedTournament(t, db, "AAAA")
	other := seedTournament(t, db, "BBBB")

	_, err := cascade.NewExecutor(NewCascadeDAO(db)).DeleteTournament(context.Background(), target.tournament.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, count(t, db, &Tournament{}))
	assert.EqualValues(t, 6, count(t, db, &Player{}))

	_, err = NewTournamentDAO(db).FindByID(context.Background(), other.tournament.ID)
	assert.NoError(t, err)

	_, err = cascade.NewExecutor(NewCascadeDAO(db)).DeleteTeam(context.Background(), uuid.New())
	assert.ErrorIs(t, err, cascade.ErrNotFound)
}

func TestPostgresUniqueViolation(t *testing.T) {
	db := newPostgresDB(t)
	s := seedTournament(t, db, "AAAA")

	_, err := NewTeamDAO(db).Insert(context.Background(), Team{
		Name: s.teams[0].Name, Gender: s.teams[0].Gender, TournamentID: s.tournament.ID, Token: "ZZZZ9999",
	})

	var violation *UniqueViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, IndexTeamNameGender, violation.Index)
	assert.Equal(t, "name", violation.Field)
}
