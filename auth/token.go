package auth

import (
	"errors"
	"time"

	apperrors "chat-relay/errors"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chat-relay"

// now is indirected so expiry behaviour can be tested without sleeping.
var now = time.Now

// Claims is the payload stored inside a session token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authority issues and verifies signed session tokens.
// It is stateless: validity is recomputed from the signature and the
// expiry claim on every presentation, nothing is stored server-side.
type Authority struct {
	secret           []byte
	tokenDuration    time.Duration
	extendedDuration time.Duration
}

func NewAuthority(secret string, tokenDuration, extendedDuration time.Duration) *Authority {
	return &Authority{
		secret:           []byte(secret),
		tokenDuration:    tokenDuration,
		extendedDuration: extendedDuration,
	}
}

// IssueToken creates a signed HS256 token bound to a username.
// The extended flag switches from the default lifetime to the long
// "remember me" lifetime chosen at login.
func (a *Authority) IssueToken(username string, extended bool) (string, error) {
	duration := a.tokenDuration
	if extended {
		duration = a.extendedDuration
	}

	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// VerifyToken checks the signature and expiry of a token string and
// returns the username it is bound to.
func (a *Authority) VerifyToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", apperrors.ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now() }))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrTokenExpired
		}
		return "", apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}

	return claims.Username, nil
}
