package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smartmeet/room-booking/internal/config"
)

// JWTIssuer signs HS256 access tokens carrying the username as subject and
// the role as a custom claim. It is the production-grade replacement for
// PlainIssuer, selected with AUTH_MODE=jwt.
type JWTIssuer struct {
	Secret string
	TTL    time.Duration
}

func (i JWTIssuer) Issue(username, role string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  now.Add(i.TTL).Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.Secret))
}

// JWTVerifier validates HS256 tokens issued by JWTIssuer. Tokens signed
// with another method or key, expired tokens, and tokens without a subject
// all fail with ErrInvalidToken.
type JWTVerifier struct {
	Secret string
}

func (v JWTVerifier) Verify(token string) (Identity, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(v.Secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		return Identity{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = DefaultRole
	}
	return Identity{Username: username, Role: role}, nil
}

// FromConfig selects the token scheme for a service: "jwt" wires the
// signed-token implementations, anything else the plain username scheme.
func FromConfig(cfg config.AuthConfig) (Verifier, Issuer) {
	if cfg.Mode == "jwt" {
		ttl := time.Duration(cfg.AccessTTLMin) * time.Minute
		return JWTVerifier{Secret: cfg.JWTSecret}, JWTIssuer{Secret: cfg.JWTSecret, TTL: ttl}
	}
	return PlainVerifier{}, PlainIssuer{}
}
