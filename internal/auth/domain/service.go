package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

type Service interface {
	// Authenticate checks the admin secret pair first, then the companies
	// table, then employees. The first username match decides the branch
	// taken; a wrong password does not fall through to the next source.
	Authenticate(ctx context.Context, username, password string) (Identity, error)

	// Login authenticates and opens a session, returning the opaque token
	// for the cookie.
	Login(ctx context.Context, username, password string) (Identity, string, error)
	Logout(ctx context.Context, token string) error

	// Resolve maps a session token back to a live identity, re-reading the
	// underlying account so stale sessions of deactivated accounts die.
	Resolve(ctx context.Context, token string) (Identity, error)
}
