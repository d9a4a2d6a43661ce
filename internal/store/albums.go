package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"soundcrate/internal/apperr"
)

var ErrAlbumNotFound = apperr.NotFound("album not found")

// Album is a released record that songs may reference.
type Album struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Year     int        `json:"year"`
	CoverURL *string    `json:"coverUrl"`
	Songs    []SongBrief `json:"songs,omitempty"`
}

// CreateAlbum persists a new album and returns its identity.
func (s *Store) CreateAlbum(ctx context.Context, name string, year int) (string, error) {
	id := newID("album")
	now := time.Now().UTC()

	var returned string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO albums (id, name, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id
	`, id, name, year, now).Scan(&returned)
	if err != nil {
		return "", fmt.Errorf("insert album: %w", err)
	}

	return returned, nil
}

// GetAlbum returns an album together with its songs.
func (s *Store) GetAlbum(ctx context.Context, id string) (*Album, error) {
	var album Album
	var cover sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, year, cover_url
		FROM albums
		WHERE id = $1
	`, id).Scan(&album.ID, &album.Name, &album.Year, &cover)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAlbumNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get album: %w", err)
	}
	if cover.Valid {
		album.CoverURL = &cover.String
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE album_id = $1
		ORDER BY title ASC, id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("list album songs: %w", err)
	}
	defer rows.Close()

	album.Songs = make([]SongBrief, 0)
	for rows.Next() {
		var song SongBrief
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("scan album song: %w", err)
		}
		album.Songs = append(album.Songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate album songs: %w", err)
	}

	return &album, nil
}

// UpdateAlbum replaces an album's name and year.
func (s *Store) UpdateAlbum(ctx context.Context, id, name string, year int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET name = $1, year = $2, updated_at = $3
		WHERE id = $4
	`, name, year, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// SetAlbumCover records the cover image location for an album. The
// binary itself lives in external storage.
func (s *Store) SetAlbumCover(ctx context.Context, id, url string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET cover_url = $1, updated_at = $2
		WHERE id = $3
	`, url, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set album cover: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// DeleteAlbum removes an album. Songs referencing it keep their rows
// with the reference cleared by the schema.
func (s *Store) DeleteAlbum(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// AlbumExists fails with ErrAlbumNotFound when no album has the identity.
func (s *Store) AlbumExists(ctx context.Context, id string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM albums WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check album: %w", err)
	}
	if !exists {
		return ErrAlbumNotFound
	}
	return nil
}
