package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"soundcrate/internal/apperr"
)

var (
	ErrPlaylistNotFound = apperr.NotFound("playlist not found")
	// ErrPlaylistSongNotFound means a membership delete matched no row.
	ErrPlaylistSongNotFound = apperr.Invariant("song not found in playlist")
)

// Playlist is a user-owned, collaborator-shareable collection of songs.
// The owner is recorded at creation and never changes.
type Playlist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"-"`
	// Username is the owner's display name, filled on reads that join users.
	Username string      `json:"username,omitempty"`
	Songs    []SongBrief `json:"songs,omitempty"`
}

// CreatePlaylist persists a new playlist and returns its identity.
func (s *Store) CreatePlaylist(ctx context.Context, name, owner string) (string, error) {
	id := newID("playlist")

	var returned string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlists (id, name, owner)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, name, owner).Scan(&returned)
	if err != nil {
		return "", fmt.Errorf("insert playlist: %w", err)
	}

	return returned, nil
}

// ListPlaylists returns playlists the user owns plus those shared with
// the user through a collaboration grant.
func (s *Store) ListPlaylists(ctx context.Context, userID string) ([]Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT playlists.id, playlists.name, users.username
		FROM playlists
		LEFT JOIN users ON users.id = playlists.owner
		LEFT JOIN collaborations ON collaborations.playlist_id = playlists.id
		WHERE playlists.owner = $1 OR collaborations.user_id = $1
		ORDER BY playlists.id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]Playlist, 0)
	for rows.Next() {
		var playlist Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.Username); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// PlaylistOwner returns the owning user identity for a playlist.
func (s *Store) PlaylistOwner(ctx context.Context, id string) (string, error) {
	var owner string
	err := s.db.QueryRowContext(ctx, `
		SELECT owner
		FROM playlists
		WHERE id = $1
	`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrPlaylistNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get playlist owner: %w", err)
	}
	return owner, nil
}

// DeletePlaylist removes a playlist; memberships, activities and
// collaboration grants cascade away with it.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// PlaylistWithSongs returns a playlist, its owner's username and its
// songs. Duplicate memberships of the same song surface as duplicate
// entries; each add is a distinct row.
func (s *Store) PlaylistWithSongs(ctx context.Context, id string) (*Playlist, error) {
	var playlist Playlist
	err := s.db.QueryRowContext(ctx, `
		SELECT playlists.id, playlists.name, users.username
		FROM playlists
		LEFT JOIN users ON users.id = playlists.owner
		WHERE playlists.id = $1
	`, id).Scan(&playlist.ID, &playlist.Name, &playlist.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT songs.id, songs.title, songs.performer
		FROM songs
		JOIN playlist_songs ON songs.id = playlist_songs.song_id
		WHERE playlist_songs.playlist_id = $1
		ORDER BY playlist_songs.id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	playlist.Songs = make([]SongBrief, 0)
	for rows.Next() {
		var song SongBrief
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		playlist.Songs = append(playlist.Songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist songs: %w", err)
	}

	return &playlist, nil
}

// AddPlaylistSong appends a membership row and returns its identity.
func (s *Store) AddPlaylistSong(ctx context.Context, playlistID, songID string) (string, error) {
	id := newID("playlist-song")

	var returned string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlist_songs (id, playlist_id, song_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, playlistID, songID).Scan(&returned)
	if err != nil {
		return "", fmt.Errorf("insert playlist song: %w", err)
	}

	return returned, nil
}

// RemovePlaylistSong deletes the membership rows for the song. Matching
// no row violates the caller's expectation and fails as an invariant.
func (s *Store) RemovePlaylistSong(ctx context.Context, playlistID, songID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistSongNotFound
	}
	return nil
}
