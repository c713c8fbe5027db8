package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginIssuesToken(t *testing.T) {
	s := NewStore("secret")

	token, err := s.Login("secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, s.Validate(token))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := NewStore("secret")

	_, err := s.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = s.Login("")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestValidateUnknownToken(t *testing.T) {
	s := NewStore("secret")

	assert.False(t, s.Validate("no-such-token"))
	assert.False(t, s.Validate(""))
}

func TestRevoke(t *testing.T) {
	s := NewStore("secret")

	token, err := s.Login("secret")
	require.NoError(t, err)

	s.Revoke(token)
	assert.False(t, s.Validate(token))
}

func TestTokensExpire(t *testing.T) {
	s := NewStore("secret")

	token, err := s.Login("secret")
	require.NoError(t, err)

	// Move the clock past the TTL.
	s.now = func() time.Time { return time.Now().Add(sessionTTL + time.Minute) }
	assert.False(t, s.Validate(token))
}

func TestTokensAreUnique(t *testing.T) {
	s := NewStore("secret")

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := s.Login("secret")
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
