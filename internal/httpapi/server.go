// Package httpapi wires HTTP handlers to the application services.
// Handlers parse requests, resolve the caller identity and translate
// error kinds into status codes; all domain decisions live below.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"soundcrate/internal/app/albums"
	"soundcrate/internal/apperr"
	"soundcrate/internal/store"
)

// UserService captures the account operations needed by the handlers.
type UserService interface {
	Register(ctx context.Context, username, password, fullname string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// AlbumService exposes album workflows including the like counter.
type AlbumService interface {
	Create(ctx context.Context, name string, year int) (string, error)
	Get(ctx context.Context, id string) (*store.Album, error)
	Update(ctx context.Context, id, name string, year int) error
	SetCover(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error

	Like(ctx context.Context, userID, albumID string) error
	Unlike(ctx context.Context, userID, albumID string) error
	LikeCount(ctx context.Context, albumID string) (albums.LikeCount, error)
}

// SongService coordinates track-level operations.
type SongService interface {
	Create(ctx context.Context, song store.Song) (string, error)
	List(ctx context.Context, title, performer string) ([]store.SongBrief, error)
	Get(ctx context.Context, id string) (*store.Song, error)
	Update(ctx context.Context, id string, song store.Song) error
	Delete(ctx context.Context, id string) error
}

// PlaylistService coordinates playlist operations and access control.
type PlaylistService interface {
	Create(ctx context.Context, name, owner string) (string, error)
	List(ctx context.Context, userID string) ([]store.Playlist, error)
	Delete(ctx context.Context, playlistID, userID string) error
	Songs(ctx context.Context, playlistID, userID string) (*store.Playlist, error)
	AddSong(ctx context.Context, playlistID, songID, userID string) (string, error)
	RemoveSong(ctx context.Context, playlistID, songID, userID string) error
	Activities(ctx context.Context, playlistID, userID string) ([]store.Activity, error)
	VerifyOwner(ctx context.Context, playlistID, userID string) error
}

// CollaborationService manages delegated playlist grants.
type CollaborationService interface {
	Add(ctx context.Context, playlistID, userID string) (string, error)
	Remove(ctx context.Context, playlistID, userID string) error
}

// TokenVerifier resolves a bearer token to a user identity.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users          UserService
	albums         AlbumService
	songs          SongService
	playlists      PlaylistService
	collaborations CollaborationService
	tokens         TokenVerifier
}

// New configures a Server with the given services.
func New(
	users UserService,
	albums AlbumService,
	songs SongService,
	playlists PlaylistService,
	collaborations CollaborationService,
	tokens TokenVerifier,
) *Server {
	return &Server{
		users:          users,
		albums:         albums,
		songs:          songs,
		playlists:      playlists,
		collaborations: collaborations,
		tokens:         tokens,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/v1/users", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	mux.HandleFunc("POST /api/v1/albums", s.handleCreateAlbum)
	mux.HandleFunc("GET /api/v1/albums/{id}", s.handleGetAlbum)
	mux.HandleFunc("PUT /api/v1/albums/{id}", s.handleUpdateAlbum)
	mux.HandleFunc("DELETE /api/v1/albums/{id}", s.handleDeleteAlbum)
	mux.HandleFunc("POST /api/v1/albums/{id}/covers", s.handleSetAlbumCover)
	mux.HandleFunc("POST /api/v1/albums/{id}/likes", s.handleLikeAlbum)
	mux.HandleFunc("DELETE /api/v1/albums/{id}/likes", s.handleUnlikeAlbum)
	mux.HandleFunc("GET /api/v1/albums/{id}/likes", s.handleAlbumLikeCount)

	mux.HandleFunc("POST /api/v1/songs", s.handleCreateSong)
	mux.HandleFunc("GET /api/v1/songs", s.handleListSongs)
	mux.HandleFunc("GET /api/v1/songs/{id}", s.handleGetSong)
	mux.HandleFunc("PUT /api/v1/songs/{id}", s.handleUpdateSong)
	mux.HandleFunc("DELETE /api/v1/songs/{id}", s.handleDeleteSong)

	mux.HandleFunc("POST /api/v1/playlists", s.handleCreatePlaylist)
	mux.HandleFunc("GET /api/v1/playlists", s.handleListPlaylists)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}", s.handleDeletePlaylist)
	mux.HandleFunc("POST /api/v1/playlists/{id}/songs", s.handleAddPlaylistSong)
	mux.HandleFunc("GET /api/v1/playlists/{id}/songs", s.handlePlaylistSongs)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}/songs", s.handleRemovePlaylistSong)
	mux.HandleFunc("GET /api/v1/playlists/{id}/activities", s.handlePlaylistActivities)

	mux.HandleFunc("POST /api/v1/collaborations", s.handleAddCollaboration)
	mux.HandleFunc("DELETE /api/v1/collaborations", s.handleRemoveCollaboration)

	return RequestLogging(Recovery(mux))
}

type errorResponse struct {
	Error string `json:"error"`
}

// userID resolves the authenticated caller from the Authorization
// header. Handlers receive identity only; authentication happened at
// login.
func (s *Server) userID(r *http.Request) (string, error) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return "", apperr.Authorization("missing or invalid token")
	}
	return s.tokens.Verify(token)
}

func parseBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// writeError maps error kinds onto status codes. Anything unclassified
// is an internal failure whose details stay out of the response.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case apperr.IsAuthorization(err):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case apperr.IsInvariant(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// writeAuthError is writeError for the identity-resolution path, where
// a bad token is 401 rather than 403.
func writeAuthError(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing or invalid token"})
}
