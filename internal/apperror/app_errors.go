package apperror

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrSessionRequired = errors.New("session id is required")
	ErrUnknownStorage  = errors.New("unknown storage type")
)
