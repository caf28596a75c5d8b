package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volleyhub/registration-api/internal/api/handler/v1/response"
	"github.com/volleyhub/registration-api/internal/config"
	"github.com/volleyhub/registration-api/internal/db"
	"github.com/volleyhub/registration-api/internal/domain"
)

type memStorage struct {
	mu      sync.Mutex
	n       int
	deleted []string
}

func (s *memStorage) Upload(_ context.Context, folder string, _ domain.Upload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("https://cdn.test/%s/%d", folder, s.n), nil
}

func (s *memStorage) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, url)
	return nil
}

type testServer struct {
	t       *testing.T
	server  *Server
	storage *memStorage
	session *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	conf := &config.AppConfig{
		API: &config.APIConfig{
			Environment:    "test",
			JWTSigningKey:  "server-test-key",
			SessionTTL:     time.Hour,
			RequestTimeout: 10 * time.Second,
		},
		Gin:  &config.GinConfig{Mode: "test"},
		Team: &config.TeamConfig{TokenMaxAttempts: 10},
		Admin: &config.AdminConfig{
			Username: "panitia",
			Email:    "panitia@volley.test",
			Password: "rahasia123",
		},
	}

	gormDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "volley.db"))
	require.NoError(t, err)

	storage := &memStorage{}
	s := NewServer(conf, gormDB, storage)
	require.NoError(t, s.Services.Auth.EnsureAdmin(context.Background(), conf.Admin))

	return &testServer{t: t, server: s, storage: storage}
}

func (ts *testServer) do(req *http.Request, out any) int {
	ts.t.Helper()

	if ts.session != nil {
		req.AddCookie(ts.session)
	}
	w := httptest.NewRecorder()
	ts.server.Router.ServeHTTP(w, req)

	if out != nil && w.Code < http.StatusBadRequest {
		require.NoError(ts.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}

	return w.Code
}

func (ts *testServer) json(method, path string, body, out any) int {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	return ts.do(req, out)
}

func (ts *testServer) form(method, path string, fields map[string]string, out any) int {
	ts.t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(ts.t, w.WriteField(k, v))
	}
	require.NoError(ts.t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return ts.do(req, out)
}

func (ts *testServer) login() {
	ts.t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		bytes.NewBufferString(`{"login":"panitia@volley.test","password":"rahasia123"}`))
	w := httptest.NewRecorder()
	ts.server.Router.ServeHTTP(w, req)
	require.Equal(ts.t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(ts.t, cookies)
	ts.session = cookies[0]
}

func (ts *testServer) createTournament() domain.Tournament {
	ts.t.Helper()

	start := time.Now().AddDate(0, 1, 0).UTC().Truncate(time.Second)
	var tournament domain.Tournament
	code := ts.json(http.MethodPost, "/api/v1/admin/tournaments", map[string]any{
		"name":                 "Piala Walikota",
		"category":             "mixed",
		"location":             "GOR Pajajaran",
		"startDate":            start,
		"endDate":              start.AddDate(0, 0, 5),
		"registrationDeadline": start.AddDate(0, 0, -7),
		"maxPlayersPerTeam":    12,
	}, &tournament)
	require.Equal(ts.t, http.StatusCreated, code)

	return tournament
}

func (ts *testServer) createTeam(tournamentID, name, gender string) domain.Team {
	ts.t.Helper()

	var team domain.Team
	code := ts.form(http.MethodPost, "/api/v1/admin/teams", map[string]string{
		"name":         name,
		"gender":       gender,
		"tournamentId": tournamentID,
	}, &team)
	require.Equal(ts.t, http.StatusCreated, code)
	require.Len(ts.t, team.Token, domain.TokenLength)

	return team
}

func (ts *testServer) addPlayer(token, number, nik string) (domain.Player, int) {
	ts.t.Helper()

	var player domain.Player
	code := ts.form(http.MethodPost, "/api/v1/teams/"+token+"/players", map[string]string{
		"name":       "Pemain " + number,
		"jerseyName": "P" + number,
		"noJersey":   number,
		"birthDate":  "2008-01-15",
		"position":   string(domain.PositionOutsideHitter),
		"nik":        nik,
	}, &player)

	return player, code
}

func TestAdminRoutesRequireSession(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, ts.json(http.MethodGet, "/api/v1/admin/tournaments", nil, nil))
	assert.Equal(t, http.StatusOK, ts.json(http.MethodGet, "/api/v1/public/tournaments", nil, nil))
}

func TestUpdateTournamentKeepsStatus(t *testing.T) {
	ts := newTestServer(t)
	ts.login()

	tournament := ts.createTournament()
	ts.createTeam(tournament.ID.String(), "Garuda", "putri")

	path := "/api/v1/admin/tournaments/" + tournament.ID.String()
	edit := map[string]any{
		"name":                 "Piala Gubernur",
		"category":             "mixed",
		"location":             tournament.Location,
		"startDate":            tournament.StartDate,
		"endDate":              tournament.EndDate,
		"registrationDeadline": tournament.RegistrationDeadline,
		"maxPlayersPerTeam":    12,
	}

	var updated domain.Tournament
	require.Equal(t, http.StatusOK, ts.json(http.MethodPut, path, edit, &updated))
	assert.Equal(t, domain.TournamentOpen, updated.Status)

	var public domain.Tournament
	require.Equal(t, http.StatusOK, ts.json(http.MethodGet, "/api/v1/public/tournaments/"+tournament.ID.String(), nil, &public))
	assert.Equal(t, "Piala Gubernur", public.Name)

	edit["category"] = "putra"
	assert.Equal(t, http.StatusConflict, ts.json(http.MethodPut, path, edit, nil))
}

func TestRegistrationFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.login()

	tournament := ts.createTournament()
	garuda := ts.createTeam(tournament.ID.String(), "Garuda", "putra")
	elang := ts.createTeam(tournament.ID.String(), "Elang", "putri")
	assert.NotEqual(t, garuda.Token, elang.Token)

	code := ts.form(http.MethodPost, "/api/v1/admin/teams", map[string]string{
		"name": "Garuda", "gender": "putra", "tournamentId": tournament.ID.String(),
	}, nil)
	assert.Equal(t, http.StatusConflict, code)

	// Token routes need no session.
	ts.session = nil

	player, code := ts.addPlayer(garuda.Token, "7", "3201234567890001")
	require.Equal(t, http.StatusCreated, code)

	_, code = ts.addPlayer(garuda.Token, "7", "3201234567890002")
	assert.Equal(t, http.StatusConflict, code, "jersey number is unique within a team")

	_, code = ts.addPlayer(elang.Token, "7", "3201234567890001")
	assert.Equal(t, http.StatusConflict, code, "nik is unique across teams")

	_, code = ts.addPlayer(elang.Token, "7", "3201234567890003")
	assert.Equal(t, http.StatusCreated, code, "jersey numbers are per team")

	playerPath := "/players/" + player.ID.String()
	assert.Equal(t, http.StatusOK, ts.json(http.MethodGet, "/api/v1/teams/"+garuda.Token+playerPath, nil, nil))
	assert.Equal(t, http.StatusNotFound, ts.json(http.MethodGet, "/api/v1/teams/"+elang.Token+playerPath, nil, nil))
	assert.Equal(t, http.StatusNotFound, ts.json(http.MethodDelete, "/api/v1/teams/"+elang.Token+playerPath, nil, nil))
	assert.Equal(t, http.StatusNotFound, ts.json(http.MethodGet, "/api/v1/teams/ZZZZ9999", nil, nil))

	var jersey domain.TeamJersey
	code = ts.json(http.MethodPut, "/api/v1/teams/"+garuda.Token+"/jersey", map[string]string{"primaryColor": "#FF0000"}, &jersey)
	require.Equal(t, http.StatusOK, code)

	var roster domain.TeamRoster
	require.Equal(t, http.StatusOK, ts.json(http.MethodGet, "/api/v1/teams/"+garuda.Token, nil, &roster))
	assert.Equal(t, garuda.ID, roster.Team.ID)
	assert.Equal(t, tournament.ID, roster.Tournament.ID)
	require.Len(t, roster.Players, 1)
	require.NotNil(t, roster.Jersey)
	assert.Equal(t, "#FF0000", *roster.Jersey.Primary)

	ts.login()

	var deleted response.DeleteResponse
	code = ts.json(http.MethodDelete, "/api/v1/admin/tournaments/"+tournament.ID.String(), nil, &deleted)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(2), deleted.Deleted["teams"])
	assert.Equal(t, int64(2), deleted.Deleted["players"])
	assert.Equal(t, int64(1), deleted.Deleted["team_jerseys"])
	assert.Equal(t, int64(1), deleted.Deleted["tournaments"])

	assert.Equal(t, http.StatusNotFound, ts.json(http.MethodGet, "/api/v1/teams/"+garuda.Token, nil, nil))
	assert.Equal(t, http.StatusNotFound, ts.json(http.MethodDelete, "/api/v1/admin/tournaments/"+tournament.ID.String(), nil, nil))
}
