package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrOfficialNotFound     = errors.New("official not found")
	ErrJerseyNotFound       = errors.New("jersey not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrUserNotFound         = errors.New("user not found")
)

// UniqueViolation is returned when a write hits one of the unique indexes
// below. Field names the offending input field.
type UniqueViolation struct {
	Index string
	Field string
	Err   error
}

func (e *UniqueViolation) Error() string {
	return "unique constraint " + e.Index + " violated"
}

func (e *UniqueViolation) Unwrap() error {
	return e.Err
}

type uniqueIndex struct {
	name    string
	columns string // as reported by SQLite: "table.col, table.col"
	field   string
}

const (
	IndexTeamToken      = "idx_teams_token"
	IndexTeamNameGender = "idx_teams_name_gender"
	IndexPlayerJersey   = "idx_players_team_jersey"
	IndexPlayerNIK      = "idx_players_nik"
	IndexPlayerNISN     = "idx_players_nisn"
	IndexOfficialPosisi = "idx_officials_team_posisi"
	IndexJerseyTeam     = "idx_team_jerseys_team_id"
	IndexUserEmail      = "idx_users_email"
	IndexUserUsername   = "idx_users_username"
	IndexRegistration   = "idx_registrations_tournament_team"
)

var uniqueIndexes = []uniqueIndex{
	{IndexTeamToken, "teams.token", "token"},
	{IndexTeamNameGender, "teams.name, teams.gender", "name"},
	{IndexPlayerJersey, "players.team_id, players.no_jersey", "noJersey"},
	{IndexPlayerNIK, "players.nik", "nik"},
	{IndexPlayerNISN, "players.nisn", "nisn"},
	{IndexOfficialPosisi, "officials.team_id, officials.posisi", "posisi"},
	{IndexJerseyTeam, "team_jerseys.team_id", "teamId"},
	{IndexUserEmail, "users.email", "email"},
	{IndexUserUsername, "users.username", "username"},
	{IndexRegistration, "registrations.tournament_id, registrations.team_id", "teamId"},
}

// translate turns driver-level unique violations into *UniqueViolation and
// passes every other error through untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		for _, idx := range uniqueIndexes {
			if pgErr.ConstraintName == idx.name {
				return &UniqueViolation{Index: idx.name, Field: idx.field, Err: err}
			}
		}
		return &UniqueViolation{Index: pgErr.ConstraintName, Err: err}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		msg := liteErr.Error()
		for _, idx := range uniqueIndexes {
			if strings.HasSuffix(msg, "failed: "+idx.columns) {
				return &UniqueViolation{Index: idx.name, Field: idx.field, Err: err}
			}
		}
		return &UniqueViolation{Err: err}
	}

	return err
}
