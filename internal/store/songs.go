package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"soundcrate/internal/apperr"
)

var ErrSongNotFound = apperr.NotFound("song not found")

// Song is a single track, optionally belonging to an album.
type Song struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

// SongBrief is the id/title/performer projection used in listings.
type SongBrief struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// CreateSong persists a new song and returns its identity.
func (s *Store) CreateSong(ctx context.Context, song Song) (string, error) {
	id := newID("song")
	now := time.Now().UTC()

	var returned string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO songs (id, title, year, genre, performer, duration, album_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`, id, song.Title, song.Year, song.Genre, song.Performer, song.Duration, song.AlbumID, now).Scan(&returned)
	if err != nil {
		return "", fmt.Errorf("insert song: %w", err)
	}

	return returned, nil
}

// ListSongs returns song summaries, optionally filtered by title and
// performer substrings (case-insensitive).
func (s *Store) ListSongs(ctx context.Context, title, performer string) ([]SongBrief, error) {
	query := `SELECT id, title, performer FROM songs`
	var (
		clauses []string
		args    []any
	)
	if title != "" {
		args = append(args, "%"+strings.ToLower(title)+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(title) LIKE $%d", len(args)))
	}
	if performer != "" {
		args = append(args, "%"+strings.ToLower(performer)+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(performer) LIKE $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY title ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	songs := make([]SongBrief, 0)
	for rows.Next() {
		var song SongBrief
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// GetSong returns a single song by identity.
func (s *Store) GetSong(ctx context.Context, id string) (*Song, error) {
	var song Song
	var duration sql.NullInt32
	var albumID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, year, genre, performer, duration, album_id
		FROM songs
		WHERE id = $1
	`, id).Scan(&song.ID, &song.Title, &song.Year, &song.Genre, &song.Performer, &duration, &albumID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}
	if duration.Valid {
		d := int(duration.Int32)
		song.Duration = &d
	}
	if albumID.Valid {
		song.AlbumID = &albumID.String
	}
	return &song, nil
}

// UpdateSong replaces a song's attributes.
func (s *Store) UpdateSong(ctx context.Context, id string, song Song) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE songs
		SET title = $1, year = $2, genre = $3, performer = $4, duration = $5, album_id = $6, updated_at = $7
		WHERE id = $8
	`, song.Title, song.Year, song.Genre, song.Performer, song.Duration, song.AlbumID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// DeleteSong removes a song; playlist memberships cascade away with it.
func (s *Store) DeleteSong(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// SongExists fails with ErrSongNotFound when no song has the identity.
func (s *Store) SongExists(ctx context.Context, id string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM songs WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check song: %w", err)
	}
	if !exists {
		return ErrSongNotFound
	}
	return nil
}
