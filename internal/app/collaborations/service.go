// Package collaborations resolves and manages delegated playlist
// grants. A grant is additive: it never overrides ownership, it only
// extends access to a non-owner.
package collaborations

import (
	"context"

	"soundcrate/internal/apperr"
)

// ErrNotCollaborator indicates the user holds no active grant.
var ErrNotCollaborator = apperr.Authorization("not a collaborator on this playlist")

// Store captures the persistence needs for collaboration workflows.
type Store interface {
	CollaborationExists(ctx context.Context, playlistID, userID string) (bool, error)
	AddCollaboration(ctx context.Context, playlistID, userID string) (string, error)
	RemoveCollaboration(ctx context.Context, playlistID, userID string) error
	UserExists(ctx context.Context, id string) error
}

// Service coordinates collaboration grants.
type Service interface {
	// VerifyCollaborator succeeds when an active grant exists for the
	// pair. Pure read-then-decide; no side effects.
	VerifyCollaborator(ctx context.Context, playlistID, userID string) error
	Add(ctx context.Context, playlistID, userID string) (string, error)
	Remove(ctx context.Context, playlistID, userID string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) VerifyCollaborator(ctx context.Context, playlistID, userID string) error {
	exists, err := s.store.CollaborationExists(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotCollaborator
	}
	return nil
}

func (s *service) Add(ctx context.Context, playlistID, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.store.UserExists(ctx, userID); err != nil {
		return "", err
	}
	return s.store.AddCollaboration(ctx, playlistID, userID)
}

func (s *service) Remove(ctx context.Context, playlistID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RemoveCollaboration(ctx, playlistID, userID)
}
