package request

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var (
	nikPattern   = regexp.MustCompile(`^\d{16}$`)
	nisnPattern  = regexp.MustCompile(`^\d{10}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// in turns a list of string-typed enum values into validation.In arguments.
func in[T ~string](values []T) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// mustDate parses a value already checked by validation.Date.
func mustDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func mustUUID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}
