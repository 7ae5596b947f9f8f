package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidForm        = errors.New("form is invalid")
	ErrUnknownEntity      = errors.New("unknown entity type")
	ErrNoSession          = errors.New("no persisted session")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotLoggedIn        = errors.New("not logged in")
)
