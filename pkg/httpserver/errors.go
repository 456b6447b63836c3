package httpserver

import "errors"

var (
	ErrStart          = errors.New("failed to start HTTP server")
	ErrAlreadyStarted = errors.New("server already started")
	ErrShutdown       = errors.New("failed to shutdown HTTP server gracefully")
)
