package domain

import "errors"

// Failure kinds shared by stores, services and the HTTP layer.
// Callers match them with errors.Is; services wrap them to add a message.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
