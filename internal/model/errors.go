package model

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid covers malformed, mis-signed and expired tokens alike;
	// the session guard treats all of them as "no session".
	ErrTokenInvalid = errors.New("token invalid")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrAccessLayerNotFound = errors.New("access layer not found")

	ErrInvalidInput = errors.New("invalid input")
)
