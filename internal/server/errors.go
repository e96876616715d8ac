package server

import "errors"

var (
	ErrServerNotRunning     = errors.New("server is not running")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrUnknownShapeKind     = errors.New("unknown shape kind")
	ErrInvalidMessage       = errors.New("invalid message")
	ErrListenerFailed       = errors.New("failed to create listener")
)
