package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestAddCollaboration(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO collaborations (id, playlist_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`)).
		WithArgs(sqlmock.AnyArg(), "playlist-1", "user-2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("collab-abc"))

	id, err := s.AddCollaboration(context.Background(), "playlist-1", "user-2")
	if err != nil {
		t.Fatalf("AddCollaboration error: %v", err)
	}
	if id != "collab-abc" {
		t.Fatalf("unexpected id %q", id)
	}
}

func TestAddCollaborationDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO collaborations (id, playlist_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`)).
		WithArgs(sqlmock.AnyArg(), "playlist-1", "user-2").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = s.AddCollaboration(context.Background(), "playlist-1", "user-2")
	if !errors.Is(err, ErrCollaborationExists) {
		t.Fatalf("expected ErrCollaborationExists, got %v", err)
	}
}

func TestRemoveCollaborationMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`)).
		WithArgs("playlist-1", "user-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.RemoveCollaboration(context.Background(), "playlist-1", "user-9")
	if !errors.Is(err, ErrCollaborationNotFound) {
		t.Fatalf("expected ErrCollaborationNotFound, got %v", err)
	}
}

func TestCollaborationExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT EXISTS(SELECT 1 FROM collaborations WHERE playlist_id = $1 AND user_id = $2)
	`)).
		WithArgs("playlist-1", "user-2").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.CollaborationExists(context.Background(), "playlist-1", "user-2")
	if err != nil {
		t.Fatalf("CollaborationExists error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists")
	}
}
