package errors

import "fmt"

var (
	// Registration / credentials
	ErrInvalidUsername    = fmt.Errorf("username must contain only letters and digits")
	ErrUsernameTaken      = fmt.Errorf("username already taken")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least 8 characters")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Session tokens
	ErrTokenGeneration = fmt.Errorf("token generation failed")
	ErrMissingToken    = fmt.Errorf("missing token")
	ErrInvalidToken    = fmt.Errorf("invalid token")
	ErrTokenExpired    = fmt.Errorf("token expired")

	// Room registry
	ErrInvalidRoomName = fmt.Errorf("invalid room name")
	ErrRoomExists      = fmt.Errorf("room already exists")
	ErrRegistryFull    = fmt.Errorf("maximum number of rooms reached")
	ErrRateLimited     = fmt.Errorf("room created too recently")
	ErrRoomNotFound    = fmt.Errorf("room not found")
)
