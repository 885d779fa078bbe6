package domain

import "errors"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")

	ErrInvalidSignature = errors.New("token signature invalid")
	ErrTokenMalformed   = errors.New("token malformed")
)
