package auth

import (
	"testing"
	"time"

	apperrors "chat-relay/errors"

	"github.com/stretchr/testify/require"
)

const (
	testSecret       = "test_secret_key_long_enough_for_hs256"
	testDuration     = time.Hour
	testExtended     = 7 * 24 * time.Hour
	expiryCheckSlack = time.Minute
)

// freezeClock pins the package clock to a fixed instant and restores it
// when the test finishes.
func freezeClock(t *testing.T, at time.Time) func(time.Time) {
	t.Helper()
	now = func() time.Time { return at }
	t.Cleanup(func() { now = time.Now })
	return func(newNow time.Time) {
		now = func() time.Time { return newNow }
	}
}

func newTestAuthority() *Authority {
	return NewAuthority(testSecret, testDuration, testExtended)
}

func TestIssueAndVerifyToken(t *testing.T) {
	req := require.New(t)
	authority := newTestAuthority()

	token, err := authority.IssueToken("alice", false)
	req.NoError(err)
	req.NotEmpty(token)

	username, err := authority.VerifyToken(token)
	req.NoError(err)
	req.Equal("alice", username)
}

func TestVerifyToken_Expiry(t *testing.T) {
	req := require.New(t)
	authority := newTestAuthority()

	issuedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	setClock := freezeClock(t, issuedAt)

	token, err := authority.IssueToken("alice", false)
	req.NoError(err)

	// Still valid just before the hour.
	setClock(issuedAt.Add(testDuration - expiryCheckSlack))
	username, err := authority.VerifyToken(token)
	req.NoError(err)
	req.Equal("alice", username)

	// Rejected once the clock passes the hour.
	setClock(issuedAt.Add(testDuration + expiryCheckSlack))
	_, err = authority.VerifyToken(token)
	req.ErrorIs(err, apperrors.ErrTokenExpired)
}

func TestVerifyToken_ExtendedExpiry(t *testing.T) {
	req := require.New(t)
	authority := newTestAuthority()

	issuedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	setClock := freezeClock(t, issuedAt)

	token, err := authority.IssueToken("alice", true)
	req.NoError(err)

	// An extended token survives well past the default lifetime.
	setClock(issuedAt.Add(48 * time.Hour))
	username, err := authority.VerifyToken(token)
	req.NoError(err)
	req.Equal("alice", username)

	// But not past 7 days.
	setClock(issuedAt.Add(testExtended + expiryCheckSlack))
	_, err = authority.VerifyToken(token)
	req.ErrorIs(err, apperrors.ErrTokenExpired)
}

func TestVerifyToken_MissingToken(t *testing.T) {
	authority := newTestAuthority()

	_, err := authority.VerifyToken("")
	require.ErrorIs(t, err, apperrors.ErrMissingToken)
}

func TestVerifyToken_Malformed(t *testing.T) {
	authority := newTestAuthority()

	_, err := authority.VerifyToken("definitely.not.a-jwt")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	req := require.New(t)
	authority := newTestAuthority()

	token, err := authority.IssueToken("alice", false)
	req.NoError(err)

	other := NewAuthority("a_completely_different_secret_key", testDuration, testExtended)
	_, err = other.VerifyToken(token)
	req.ErrorIs(err, apperrors.ErrInvalidToken)
}
