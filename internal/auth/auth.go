// Package auth provides pluggable credential verification for the
// services. Tokens are issued by the users service and verified by any
// service protecting an endpoint; the two sides only agree on the Issuer
// and Verifier interfaces, so the token scheme can be swapped without
// changing call sites.
package auth

import (
	"errors"
	"regexp"
)

// Identity is the result of verifying a bearer token.
type Identity struct {
	Username string
	Role     string
}

// ErrInvalidToken is returned by a Verifier for any token it cannot
// accept: malformed, expired, or signed with the wrong key.
var ErrInvalidToken = errors.New("invalid token")

// Verifier turns a bearer token into an authenticated identity.
type Verifier interface {
	Verify(token string) (Identity, error)
}

// Issuer produces a bearer token for an authenticated user.
type Issuer interface {
	Issue(username, role string) (string, error)
}

// DefaultRole is assigned to every new registration.
const DefaultRole = "regular"

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// ValidUsername reports whether s is an acceptable username: 3 to 30
// characters from [A-Za-z0-9_].
func ValidUsername(s string) bool { return usernameRe.MatchString(s) }

// PlainIssuer issues the username itself as the token. It provides
// identification, not security; use AUTH_MODE=jwt anywhere that matters.
type PlainIssuer struct{}

func (PlainIssuer) Issue(username, _ string) (string, error) { return username, nil }

// PlainVerifier accepts any token shaped like a username and treats it as
// that user with the default role.
type PlainVerifier struct{}

func (PlainVerifier) Verify(token string) (Identity, error) {
	if !ValidUsername(token) {
		return Identity{}, ErrInvalidToken
	}
	return Identity{Username: token, Role: DefaultRole}, nil
}
