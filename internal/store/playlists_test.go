package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPlaylistOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT owner
		FROM playlists
		WHERE id = $1
	`)).
		WithArgs("playlist-1").
		WillReturnRows(sqlmock.NewRows([]string{"owner"}).AddRow("user-1"))

	owner, err := s.PlaylistOwner(context.Background(), "playlist-1")
	if err != nil {
		t.Fatalf("PlaylistOwner error: %v", err)
	}
	if owner != "user-1" {
		t.Fatalf("expected owner user-1, got %q", owner)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlaylistOwnerNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT owner
		FROM playlists
		WHERE id = $1
	`)).
		WithArgs("playlist-missing").
		WillReturnRows(sqlmock.NewRows([]string{"owner"}))

	_, err = s.PlaylistOwner(context.Background(), "playlist-missing")
	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestCreatePlaylist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO playlists (id, name, owner)
		VALUES ($1, $2, $3)
		RETURNING id
	`)).
		WithArgs(sqlmock.AnyArg(), "Road Trip", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("playlist-abc"))

	id, err := s.CreatePlaylist(context.Background(), "Road Trip", "user-1")
	if err != nil {
		t.Fatalf("CreatePlaylist error: %v", err)
	}
	if id != "playlist-abc" {
		t.Fatalf("expected playlist-abc, got %q", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListPlaylistsIncludesShared(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT DISTINCT playlists.id, playlists.name, users.username
		FROM playlists
		LEFT JOIN users ON users.id = playlists.owner
		LEFT JOIN collaborations ON collaborations.playlist_id = playlists.id
		WHERE playlists.owner = $1 OR collaborations.user_id = $1
		ORDER BY playlists.id ASC
	`)).
		WithArgs("user-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username"}).
			AddRow("playlist-1", "Mine", "user-two").
			AddRow("playlist-2", "Shared With Me", "someone-else"))

	playlists, err := s.ListPlaylists(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("ListPlaylists error: %v", err)
	}
	if len(playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(playlists))
	}
	if playlists[1].Name != "Shared With Me" {
		t.Fatalf("expected shared playlist, got %q", playlists[1].Name)
	}
}

func TestRemovePlaylistSongMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`)).
		WithArgs("playlist-1", "song-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.RemovePlaylistSong(context.Background(), "playlist-1", "song-9")
	if !errors.Is(err, ErrPlaylistSongNotFound) {
		t.Fatalf("expected ErrPlaylistSongNotFound, got %v", err)
	}
}

func TestAddPlaylistSong(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO playlist_songs (id, playlist_id, song_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`)).
		WithArgs(sqlmock.AnyArg(), "playlist-1", "song-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("playlist-song-xyz"))

	id, err := s.AddPlaylistSong(context.Background(), "playlist-1", "song-1")
	if err != nil {
		t.Fatalf("AddPlaylistSong error: %v", err)
	}
	if id != "playlist-song-xyz" {
		t.Fatalf("expected playlist-song-xyz, got %q", id)
	}
}
