package domain

import (
	"context"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
)

type Role string

const (
	RoleUser          Role = "user"
	RoleAdministrator Role = "administrator"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Principal is the authenticated caller of a request, resolved from the session cookie.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdministrator
}

type principalKey struct{}

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal and whether one was attached.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// passwordPolicy requires at least 8 characters with one letter and one digit.
var passwordPolicy = regexp2.MustCompile(`^(?=.*[A-Za-z])(?=.*\d).{8,}$`, regexp2.None)

func PasswordAcceptable(password string) bool {
	ok, err := passwordPolicy.MatchString(password)
	return err == nil && ok
}
