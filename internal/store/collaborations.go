package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"soundcrate/internal/apperr"
)

var (
	// ErrCollaborationExists signals the (playlist, user) pair already
	// holds an active grant.
	ErrCollaborationExists = apperr.Invariant("collaboration already exists")
	// ErrCollaborationNotFound means a revoke matched no grant.
	ErrCollaborationNotFound = apperr.Invariant("collaboration not found")
)

// AddCollaboration grants a user collaboration rights on a playlist and
// returns the grant identity. The (playlist, user) pair is unique.
func (s *Store) AddCollaboration(ctx context.Context, playlistID, userID string) (string, error) {
	id := newID("collab")

	var returned string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO collaborations (id, playlist_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, playlistID, userID).Scan(&returned)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrCollaborationExists
		}
		return "", fmt.Errorf("insert collaboration: %w", err)
	}

	return returned, nil
}

// RemoveCollaboration revokes a grant.
func (s *Store) RemoveCollaboration(ctx context.Context, playlistID, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID)
	if err != nil {
		return fmt.Errorf("delete collaboration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCollaborationNotFound
	}
	return nil
}

// CollaborationExists reports whether the user holds an active grant on
// the playlist.
func (s *Store) CollaborationExists(ctx context.Context, playlistID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM collaborations WHERE playlist_id = $1 AND user_id = $2)
	`, playlistID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check collaboration: %w", err)
	}
	return exists, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
