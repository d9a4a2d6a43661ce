package store

import (
	"context"
	"fmt"

	"soundcrate/internal/apperr"
)

// ErrLikeNotFound means an unlike matched no row.
var ErrLikeNotFound = apperr.NotFound("like not found")

// HasAlbumLike reports whether the user already likes the album.
// Uniqueness of (user, album) is enforced here, not by the schema:
// callers must check before inserting.
func (s *Store) HasAlbumLike(ctx context.Context, userID, albumID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM user_album_likes WHERE user_id = $1 AND album_id = $2)
	`, userID, albumID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check album like: %w", err)
	}
	return exists, nil
}

// AddAlbumLike inserts a like row and returns its identity.
func (s *Store) AddAlbumLike(ctx context.Context, userID, albumID string) (string, error) {
	id := newID("like")

	var returned string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO user_album_likes (id, user_id, album_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, userID, albumID).Scan(&returned)
	if err != nil {
		return "", fmt.Errorf("insert album like: %w", err)
	}

	return returned, nil
}

// RemoveAlbumLike deletes the user's like row for the album.
func (s *Store) RemoveAlbumLike(ctx context.Context, userID, albumID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM user_album_likes
		WHERE user_id = $1 AND album_id = $2
	`, userID, albumID)
	if err != nil {
		return fmt.Errorf("delete album like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// CountAlbumLikes computes the like total straight from the rows. The
// cached value derives from this and is never authoritative.
func (s *Store) CountAlbumLikes(ctx context.Context, albumID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM user_album_likes WHERE album_id = $1
	`, albumID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count album likes: %w", err)
	}
	return count, nil
}
