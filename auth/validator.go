package auth

import (
	"errors"

	apperrors "chat-relay/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterRequest struct {
	Username string `validate:"required,alphanum"`
	Password string `validate:"required,min=8,max=72"`
}

// ValidateRegister enforces the registration constraints: alphanumeric
// username, password of at least 8 characters. Each failure maps to a
// dedicated sentinel so the API can return a specific rejection.
func ValidateRegister(req RegisterRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	for _, fe := range fieldErrors {
		switch fe.Field() {
		case "Username":
			return apperrors.ErrInvalidUsername
		case "Password":
			return apperrors.ErrPasswordTooShort
		}
	}
	return err
}
