// Package store provides persistence for the media library backed by
// Postgres. Every operation is atomic at the single-statement level;
// callers compose them without multi-statement transactions.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// newID generates an opaque identity with an entity prefix, e.g.
// "playlist-5f4c…".
func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
