package client

import "errors"

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("already exists")
	ErrBadRequest        = errors.New("request rejected")
	ErrMalformedResponse = errors.New("malformed server response")
)
