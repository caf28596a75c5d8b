package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  environment: test
  port: "9090"
  jwt_signing_key: secret
  allowed_cors_domains:
    - http://localhost:3000
database:
  driver: sqlite
sqlite:
  filename: /tmp/volley.db
team:
  token_max_attempts: 3
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, 8*time.Hour, conf.API.SessionTTL)
	assert.Equal(t, "sqlite", conf.Database.Driver)
	assert.Equal(t, "/tmp/volley.db", conf.SQLite.Filename)
	assert.Equal(t, 3, conf.Team.TokenMaxAttempts)
	assert.Equal(t, "info", conf.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
api:
  jwt_signing_key: from-file
`)
	t.Setenv("VOLLEY_API_JWT_SIGNING_KEY", "from-env")

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", conf.API.JWTSigningKey)
}

func TestLoadRejectsMissingSigningKey(t *testing.T) {
	path := writeConfig(t, `
api:
  port: "8080"
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, errMissingSigningKey)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, `
api:
  jwt_signing_key: secret
database:
  driver: mysql
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, errUnknownDriver)
}

func TestPostgresDSN(t *testing.T) {
	c := &PostgresConfig{Host: "db", Port: "5432", User: "u", Password: "p", DB: "volley", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=volley port=5432 sslmode=disable", c.DSN())
}
