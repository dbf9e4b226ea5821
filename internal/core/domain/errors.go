package domain

import "errors"

var (
	ErrNotFound           = errors.New("domain: not found")
	ErrInvalidArgument    = errors.New("domain: invalid argument")
	ErrInvalidMood        = errors.New("domain: invalid mood")
	ErrDuplicateSong      = errors.New("domain: song already in playlist")
	ErrInvalidCredentials = errors.New("domain: invalid username or password")
	ErrUsernameTaken      = errors.New("domain: username already exists")
	ErrInvalidTheme       = errors.New("domain: unknown theme")
	ErrUnauthorized       = errors.New("domain: missing or expired session")
)
