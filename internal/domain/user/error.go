package user

import "errors"

var (
	ErrNotFound     = errors.New("user not found")
	ErrConflict     = errors.New("user identifier already exists")
	ErrInvalidAuth  = errors.New("invalid credentials")
	ErrInvalidInput = errors.New("invalid input")
)
