package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
)
