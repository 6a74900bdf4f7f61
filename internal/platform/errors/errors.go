package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrKeyNotFound         = errors.New("key not found")
	ErrNoCredential        = errors.New("no credential stored")
	ErrNoActiveAttempt     = errors.New("no active quiz attempt")
	ErrActiveAttemptExists = errors.New("quiz attempt already in progress")
)
