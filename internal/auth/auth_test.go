package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartmeet/room-booking/internal/config"
)

func TestValidUsername(t *testing.T) {
	valid := []string{"bob", "alice_99", "ABC", "a_b_c_d_e_f_g_h_i_j_k_l_m_n_o"}
	for _, s := range valid {
		assert.True(t, ValidUsername(s), s)
	}

	invalid := []string{"", "ab", "has space", "emoji😀", "way_too_long_username_over_thirty_chars", "semi;colon"}
	for _, s := range invalid {
		assert.False(t, ValidUsername(s), s)
	}
}

func TestPlainRoundTrip(t *testing.T) {
	token, err := PlainIssuer{}.Issue("alice", "regular")
	require.NoError(t, err)
	assert.Equal(t, "alice", token)

	id, err := PlainVerifier{}.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{Username: "alice", Role: DefaultRole}, id)
}

func TestPlainVerifierRejectsNonUsernameTokens(t *testing.T) {
	for _, tok := range []string{"", "a", "drop table;", "x y z"} {
		_, err := PlainVerifier{}.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, tok)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	issuer := JWTIssuer{Secret: "test-secret", TTL: time.Hour}
	verifier := JWTVerifier{Secret: "test-secret"}

	token, err := issuer.Issue("bob", "regular")
	require.NoError(t, err)
	require.NotEqual(t, "bob", token, "signed token must not be the bare username")

	id, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", id.Username)
	assert.Equal(t, "regular", id.Role)
}

func TestJWTVerifierRejectsWrongKey(t *testing.T) {
	token, err := JWTIssuer{Secret: "key-one", TTL: time.Hour}.Issue("bob", "regular")
	require.NoError(t, err)

	_, err = JWTVerifier{Secret: "key-two"}.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRejectsExpiredToken(t *testing.T) {
	token, err := JWTIssuer{Secret: "test-secret", TTL: -time.Minute}.Issue("bob", "regular")
	require.NoError(t, err)

	_, err = JWTVerifier{Secret: "test-secret"}.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRejectsGarbage(t *testing.T) {
	_, err := JWTVerifier{Secret: "test-secret"}.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromConfigSelectsScheme(t *testing.T) {
	v, i := FromConfig(config.AuthConfig{Mode: "plain"})
	assert.IsType(t, PlainVerifier{}, v)
	assert.IsType(t, PlainIssuer{}, i)

	v, i = FromConfig(config.AuthConfig{Mode: "jwt", JWTSecret: "s", AccessTTLMin: 30})
	assert.IsType(t, JWTVerifier{}, v)
	require.IsType(t, JWTIssuer{}, i)
	assert.Equal(t, 30*time.Minute, i.(JWTIssuer).TTL)
}
