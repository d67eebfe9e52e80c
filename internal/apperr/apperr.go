// Package apperr carries the service error taxonomy. Every failure a handler
// can surface is one of these values; the Status field is the HTTP status the
// response helper uses.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// From unwraps err into an *Error when one is in the chain.
func From(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

var (
	// validation
	ErrEmailRequired     = New(http.StatusBadRequest, "email address is required")
	ErrEmailInvalid      = New(http.StatusBadRequest, "email address is invalid")
	ErrPasswordRequired  = New(http.StatusBadRequest, "password is required")
	ErrFirstNameRequired = New(http.StatusBadRequest, "first name is required")
	ErrFirstNameTooShort = New(http.StatusBadRequest, "first name must be at least 2 characters")
	ErrLastNameRequired  = New(http.StatusBadRequest, "last name is required")
	ErrLastNameTooShort  = New(http.StatusBadRequest, "last name must be at least 2 characters")
	ErrGenderRequired    = New(http.StatusBadRequest, "gender is required")
	ErrGenderNotListed   = New(http.StatusBadRequest, "gender is not listed")
	ErrDOBRequired       = New(http.StatusBadRequest, "date of birth is required")
	ErrDOBInvalid        = New(http.StatusBadRequest, "date of birth is invalid")
	ErrAgeBelowMinimum   = New(http.StatusBadRequest, "must be at least 15 years old")
	ErrCountryRequired   = New(http.StatusBadRequest, "country is required")
	ErrCountryInvalid    = New(http.StatusBadRequest, "country is not recognized")
	ErrPhoneInvalid      = New(http.StatusBadRequest, "not a valid phone number")
	ErrPasswordTooShort  = New(http.StatusBadRequest, "password must be at least 8 characters")
	ErrPasswordsMismatch = New(http.StatusBadRequest, "passwords do not match")

	// lookup / identity
	ErrEmailTaken           = New(http.StatusConflict, "email address is already registered")
	ErrUserNotFound         = New(http.StatusNotFound, "user not found")
	ErrUserIDRequired       = New(http.StatusBadRequest, "user id is required")
	ErrRefreshTokenRequired = New(http.StatusBadRequest, "refresh token is required")

	// tokens / sessions
	ErrVerifyTokenRequired = New(http.StatusBadRequest, "verification token is required")
	ErrInvalidVerifyToken  = New(http.StatusBadRequest, "invalid verification token")
	ErrAlreadyVerified     = New(http.StatusNotModified, "user already verified")
	ErrInvalidResetToken   = New(http.StatusBadRequest, "invalid or expired reset token")
	ErrInvalidCredentials  = New(http.StatusUnauthorized, "invalid email or password")
	ErrUnauthorized        = New(http.StatusUnauthorized, "unauthorized")
)
