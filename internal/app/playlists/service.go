// Package playlists coordinates playlist workflows and holds the
// access-control engine that combines ownership with collaboration
// grants.
package playlists

import (
	"context"
	"errors"

	"soundcrate/internal/apperr"
	"soundcrate/internal/store"
)

// ErrNotAuthorized is the ownership denial surfaced to callers. It is
// deliberately opaque: collaboration-lookup internals never leak
// through it.
var ErrNotAuthorized = apperr.Authorization("not authorized to access this playlist")

// Store captures the persistence needs for playlist workflows.
type Store interface {
	CreatePlaylist(ctx context.Context, name, owner string) (string, error)
	ListPlaylists(ctx context.Context, userID string) ([]store.Playlist, error)
	PlaylistOwner(ctx context.Context, id string) (string, error)
	DeletePlaylist(ctx context.Context, id string) error
	PlaylistWithSongs(ctx context.Context, id string) (*store.Playlist, error)
	AddPlaylistSong(ctx context.Context, playlistID, songID string) (string, error)
	RemovePlaylistSong(ctx context.Context, playlistID, songID string) error
	SongExists(ctx context.Context, id string) error
	AddActivity(ctx context.Context, playlistID, songID, userID string, action store.ActivityAction) error
	ListActivities(ctx context.Context, playlistID string) ([]store.Activity, error)
}

// CollaboratorVerifier is the resolver consulted when ownership denies
// access.
type CollaboratorVerifier interface {
	VerifyCollaborator(ctx context.Context, playlistID, userID string) error
}

// Service coordinates playlist-related operations.
type Service interface {
	Create(ctx context.Context, name, owner string) (string, error)
	List(ctx context.Context, userID string) ([]store.Playlist, error)
	Delete(ctx context.Context, playlistID, userID string) error
	Songs(ctx context.Context, playlistID, userID string) (*store.Playlist, error)
	AddSong(ctx context.Context, playlistID, songID, userID string) (string, error)
	RemoveSong(ctx context.Context, playlistID, songID, userID string) error
	Activities(ctx context.Context, playlistID, userID string) ([]store.Activity, error)

	VerifyOwner(ctx context.Context, playlistID, userID string) error
	VerifyAccess(ctx context.Context, playlistID, userID string) error
}

type service struct {
	store         Store
	collaborators CollaboratorVerifier
}

// New constructs a Service backed by the provided Store and resolver.
func New(st Store, collaborators CollaboratorVerifier) Service {
	return &service{store: st, collaborators: collaborators}
}

// Decision is the terminal state of one access evaluation.
type Decision int

const (
	DecisionAuthorized Decision = iota
	DecisionDenied
	DecisionNotFound
)

// VerifyOwner succeeds only for the recorded owner. A missing playlist
// is terminal: no collaboration grant can recover it.
func (s *service) VerifyOwner(ctx context.Context, playlistID, userID string) error {
	owner, err := s.store.PlaylistOwner(ctx, playlistID)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrNotAuthorized
	}
	return nil
}

// decideAccess evaluates the two authority sources exactly once:
// ownership first, collaboration only after an ownership denial. The
// returned error is what the non-authorized states surface.
func (s *service) decideAccess(ctx context.Context, playlistID, userID string) (Decision, error) {
	ownerErr := s.VerifyOwner(ctx, playlistID, userID)
	switch {
	case ownerErr == nil:
		// Owner confirmed; collaboration is never consulted.
		return DecisionAuthorized, nil
	case errors.Is(ownerErr, store.ErrPlaylistNotFound):
		return DecisionNotFound, ownerErr
	}

	if err := s.collaborators.VerifyCollaborator(ctx, playlistID, userID); err == nil {
		// An active grant suppresses the ownership denial.
		return DecisionAuthorized, nil
	}

	// Whatever went wrong during the collaborator check, the original
	// ownership denial is the contract with the caller.
	return DecisionDenied, ownerErr
}

// VerifyAccess authorizes an owner or collaborator for the playlist.
func (s *service) VerifyAccess(ctx context.Context, playlistID, userID string) error {
	_, err := s.decideAccess(ctx, playlistID, userID)
	return err
}

func (s *service) Create(ctx context.Context, name, owner string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.CreatePlaylist(ctx, name, owner)
}

func (s *service) List(ctx context.Context, userID string) ([]store.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylists(ctx, userID)
}

// Delete removes a playlist. Deletion stays owner-only; a grant does
// not extend this far.
func (s *service) Delete(ctx context.Context, playlistID, userID string) error {
	if err := s.VerifyOwner(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, playlistID)
}

func (s *service) Songs(ctx context.Context, playlistID, userID string) (*store.Playlist, error) {
	if err := s.VerifyAccess(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	return s.store.PlaylistWithSongs(ctx, playlistID)
}

// AddSong appends a membership row and records an audit event. The
// same song may be added more than once; each add is a distinct row.
func (s *service) AddSong(ctx context.Context, playlistID, songID, userID string) (string, error) {
	if err := s.VerifyAccess(ctx, playlistID, userID); err != nil {
		return "", err
	}
	if err := s.store.SongExists(ctx, songID); err != nil {
		return "", err
	}

	id, err := s.store.AddPlaylistSong(ctx, playlistID, songID)
	if err != nil {
		return "", err
	}

	if err := s.store.AddActivity(ctx, playlistID, songID, userID, store.ActivityAdd); err != nil {
		return "", err
	}
	return id, nil
}

func (s *service) RemoveSong(ctx context.Context, playlistID, songID, userID string) error {
	if err := s.VerifyAccess(ctx, playlistID, userID); err != nil {
		return err
	}
	if err := s.store.RemovePlaylistSong(ctx, playlistID, songID); err != nil {
		return err
	}
	return s.store.AddActivity(ctx, playlistID, songID, userID, store.ActivityDelete)
}

func (s *service) Activities(ctx context.Context, playlistID, userID string) ([]store.Activity, error) {
	if err := s.VerifyAccess(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	return s.store.ListActivities(ctx, playlistID)
}
