package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"soundcrate/internal/apperr"
)

var (
	// ErrUserExists signals the username is already taken.
	ErrUserExists = apperr.Invariant("username already taken")
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = apperr.NotFound("user not found")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = apperr.Authorization("invalid username or password")

	dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")
)

// CreateUser registers a new user and returns its identity.
func (s *Store) CreateUser(ctx context.Context, username, password, fullname string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", apperr.Invariant("username and password are required")
	}

	var taken bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)
	`, username).Scan(&taken)
	if err != nil {
		return "", fmt.Errorf("check username: %w", err)
	}
	if taken {
		return "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	id := newID("user")
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, fullname)
		VALUES ($1, $2, $3, $4)
	`, id, username, hash, fullname); err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}

	return id, nil
}

// Authenticate validates credentials and returns the user identity.
func (s *Store) Authenticate(ctx context.Context, username, password string) (string, error) {
	var (
		userID string
		hash   []byte
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash
		FROM users
		WHERE username = $1
	`, username).Scan(&userID, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Burn a compare so lookups take the same time either way.
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return userID, nil
}

// UserExists fails with ErrUserNotFound when no user has the identity.
func (s *Store) UserExists(ctx context.Context, id string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}
