// Package users coordinates registration and login. Everything past
// login only ever sees the resolved user identity.
package users

import (
	"context"
)

// Store captures the persistence needs for user workflows.
type Store interface {
	CreateUser(ctx context.Context, username, password, fullname string) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Service coordinates user-facing account operations.
type Service interface {
	Register(ctx context.Context, username, password, fullname string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type service struct {
	store  Store
	tokens TokenIssuer
}

// New constructs a Service backed by the given store and token issuer.
func New(store Store, tokens TokenIssuer) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Register(ctx context.Context, username, password, fullname string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.CreateUser(ctx, username, password, fullname)
}

// Login validates credentials and returns a signed access token.
func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	userID, err := s.store.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(userID)
}
