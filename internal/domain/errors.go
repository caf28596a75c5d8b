package domain

import "fmt"

// ConflictSource tells whether a conflict was caught by a lookup before
// writing or by a unique index during the write.
type ConflictSource string

const (
	ConflictPrecheck ConflictSource = "precheck"
	ConflictStore    ConflictSource = "store"
)

// ConflictError reports a uniqueness violation on Field.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
	Source ConflictSource
}

func (e *ConflictError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
	}
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

func NewConflict(entity, field, value string) *ConflictError {
	return &ConflictError{Entity: entity, Field: field, Value: value, Source: ConflictPrecheck}
}
