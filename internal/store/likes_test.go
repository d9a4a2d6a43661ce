package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHasAlbumLike(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT EXISTS(SELECT 1 FROM user_album_likes WHERE user_id = $1 AND album_id = $2)
	`)).
		WithArgs("user-1", "album-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	liked, err := s.HasAlbumLike(context.Background(), "user-1", "album-1")
	if err != nil {
		t.Fatalf("HasAlbumLike error: %v", err)
	}
	if !liked {
		t.Fatal("expected liked to be true")
	}
}

func TestCountAlbumLikes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(*) FROM user_album_likes WHERE album_id = $1
	`)).
		WithArgs("album-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := s.CountAlbumLikes(context.Background(), "album-1")
	if err != nil {
		t.Fatalf("CountAlbumLikes error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 likes, got %d", count)
	}
}

func TestRemoveAlbumLikeMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM user_album_likes
		WHERE user_id = $1 AND album_id = $2
	`)).
		WithArgs("user-1", "album-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.RemoveAlbumLike(context.Background(), "user-1", "album-1")
	if !errors.Is(err, ErrLikeNotFound) {
		t.Fatalf("expected ErrLikeNotFound, got %v", err)
	}
}

func TestAddAlbumLike(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO user_album_likes (id, user_id, album_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`)).
		WithArgs(sqlmock.AnyArg(), "user-1", "album-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("like-abc"))

	id, err := s.AddAlbumLike(context.Background(), "user-1", "album-1")
	if err != nil {
		t.Fatalf("AddAlbumLike error: %v", err)
	}
	if id != "like-abc" {
		t.Fatalf("expected like-abc, got %q", id)
	}
}
