package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrServerUnavailable marks transport failures where the server could
	// not be reached at all (connection refused, DNS failure, timeout) or
	// answered 503/504. The connectivity watcher treats it as "offline".
	ErrServerUnavailable = errors.New("server unavailable")
)
