package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eventdesk/internal/domain"
)

var key = []byte("test-signing-key")

func TestTokenRoundTrip(t *testing.T) {
	session := domain.Session{UserID: 101, Role: domain.RoleOrganiser, Username: "alice", Name: "Alice"}

	token, err := GenerateToken(key, session, "test-agent", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, "test-agent", claims.UserAgent)
	assert.NotEmpty(t, claims.ID)

	got, err := claims.Session()
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestParseTokenRejects(t *testing.T) {
	session := domain.Session{UserID: 201, Role: domain.RoleCustomer, Username: "bob"}

	expired, err := GenerateToken(key, session, "", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(key, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	valid, err := GenerateToken(key, session, "", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken([]byte("other-key"), valid)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(key, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
