package services

import (
	"testing"
	"time"

	"chat-relay/auth"
	apperrors "chat-relay/errors"
	"chat-relay/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_for_auth_service"

func newTestAuthService(t *testing.T) IAuthService {
	t.Helper()
	options := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(options)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	authority := auth.NewAuthority(testSecret, time.Hour, 7*24*time.Hour)
	return NewAuthService(repositories.NewUserRepository(db), authority)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newTestAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid", "bob", "password123", nil},
		{"username with spaces", "bob smith", "password123", apperrors.ErrInvalidUsername},
		{"username with symbols", "bob!", "password123", apperrors.ErrInvalidUsername},
		{"empty username", "", "password123", apperrors.ErrInvalidUsername},
		{"password too short", "alice", "short", apperrors.ErrPasswordTooShort},
		{"empty password", "alice", "", apperrors.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(tt.username, tt.password)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	req := require.New(t)
	svc := newTestAuthService(t)

	req.NoError(svc.Register("bob", "password123"))

	// Always rejected, regardless of the password supplied.
	req.ErrorIs(svc.Register("bob", "password123"), apperrors.ErrUsernameTaken)
	req.ErrorIs(svc.Register("bob", "otherpassword"), apperrors.ErrUsernameTaken)
}

func TestAuthService_LoginAndVerify(t *testing.T) {
	req := require.New(t)
	svc := newTestAuthService(t)

	req.NoError(svc.Register("bob", "password123"))

	token, err := svc.Login("bob", "password123", false)
	req.NoError(err)
	req.NotEmpty(token)

	username, err := svc.Verify(string(token))
	req.NoError(err)
	req.Equal("bob", username)
}

func TestAuthService_LoginFailures(t *testing.T) {
	req := require.New(t)
	svc := newTestAuthService(t)

	req.NoError(svc.Register("bob", "password123"))

	// Wrong password and unknown user collapse to the same generic error.
	_, err := svc.Login("bob", "wrongpassword", false)
	req.ErrorIs(err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login("nobody", "password123", false)
	req.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_RememberMeExtendsExpiry(t *testing.T) {
	req := require.New(t)
	svc := newTestAuthService(t)

	req.NoError(svc.Register("bob", "password123"))

	token, err := svc.Login("bob", "password123", true)
	req.NoError(err)

	claims := &auth.Claims{}
	_, err = jwt.ParseWithClaims(string(token), claims, func(token *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	req.NoError(err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	req.Equal(7*24*time.Hour, lifetime)
}

func TestAuthService_VerifyRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Verify("")
	require.ErrorIs(t, err, apperrors.ErrMissingToken)

	_, err = svc.Verify("not.a.token")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
