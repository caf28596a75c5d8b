package service

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/volleyhub/registration-api/internal/domain"
)

var ErrTokenSpaceExhausted = errors.New("could not generate a unique team token")

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenGenerator returns a candidate team token. Uniqueness is not its
// concern; CreateTeam retries on collisions.
type TokenGenerator func() (string, error)

// RandomToken draws domain.TokenLength characters uniformly from A-Z0-9.
func RandomToken() (string, error) {
	limit := big.NewInt(int64(len(tokenAlphabet)))

	token := make([]byte, domain.TokenLength)
	for i := range token {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		token[i] = tokenAlphabet[n.Int64()]
	}

	return string(token), nil
}

// ValidTokenShape reports whether token could have been produced by RandomToken.
func ValidTokenShape(token string) bool {
	if len(token) != domain.TokenLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
