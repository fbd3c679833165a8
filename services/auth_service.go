package services

import (
	"fmt"

	"chat-relay/auth"
	apperrors "chat-relay/errors"
	"chat-relay/repositories"
)

type IAuthService interface {
	Register(username, password string) error
	Login(username, password string, rememberMe bool) (Token, error)
	Verify(token string) (string, error)
}

type AuthService struct {
	userRepository repositories.IUserRepository
	authority      *auth.Authority
}

type Token string

func NewAuthService(repo repositories.IUserRepository, authority *auth.Authority) IAuthService {
	return &AuthService{userRepository: repo, authority: authority}
}

// Register creates a credential record for a new username.
//
// The existence check and the insert are separated by the Argon2id
// hashing step, so two racing registrations for the same username can
// both reach CreateUser; the repository transaction rejects the loser.
func (s *AuthService) Register(username, password string) error {
	valReq := auth.RegisterRequest{
		Username: username,
		Password: password,
	}

	// 1. Validate business rules before any expensive cryptographic work.
	if err := auth.ValidateRegister(valReq); err != nil {
		return err
	}

	// 2. Hash the password using Argon2id.
	// Done here to keep the repository unaware of plain passwords.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist the record. Propagates ErrUsernameTaken on conflict.
	return s.userRepository.CreateUser(username, hashedPassword)
}

// Login verifies credentials and issues a session token. The rememberMe
// flag selects the extended token lifetime.
func (s *AuthService) Login(username, password string, rememberMe bool) (Token, error) {
	// Generic error on every failure path to prevent user enumeration.
	user, err := s.userRepository.GetUser(username)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.authority.IssueToken(user.Username, rememberMe)
	if err != nil {
		return "", apperrors.ErrTokenGeneration
	}

	return Token(token), nil
}

// Verify validates a session token and returns the bound username.
func (s *AuthService) Verify(token string) (string, error) {
	return s.authority.VerifyToken(token)
}
