package repository

import (
	"errors"

	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository/dao"
)

var (
	ErrTournamentNotFound   = dao.ErrTournamentNotFound
	ErrTeamNotFound         = dao.ErrTeamNotFound
	ErrPlayerNotFound       = dao.ErrPlayerNotFound
	ErrOfficialNotFound     = dao.ErrOfficialNotFound
	ErrJerseyNotFound       = dao.ErrJerseyNotFound
	ErrDocumentNotFound     = dao.ErrDocumentNotFound
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
	ErrUserNotFound         = dao.ErrUserNotFound
)

// asConflict turns a unique index violation into a *domain.ConflictError for
// entity. value resolves the offending value from the field name. Any other
// error is returned unchanged.
func asConflict(err error, entity string, value func(field string) string) error {
	var violation *dao.UniqueViolation
	if !errors.As(err, &violation) {
		return err
	}

	field := violation.Field
	if field == "" {
		field = "value"
	}

	conflict := &domain.ConflictError{
		Entity: entity,
		Field:  field,
		Source: domain.ConflictStore,
	}
	if value != nil {
		conflict.Value = value(violation.Field)
	}

	return conflict
}

// IsTokenCollision reports whether err is a unique violation on the team token.
func IsTokenCollision(err error) bool {
	var violation *dao.UniqueViolation
	return errors.As(err, &violation) && violation.Index == dao.IndexTeamToken
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
