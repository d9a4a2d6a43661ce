package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"soundcrate/internal/app/albums"
	"soundcrate/internal/app/playlists"
	"soundcrate/internal/store"
)

type stubTokens struct{}

func (stubTokens) Verify(token string) (string, error) {
	if token == "good-token" {
		return "user-1", nil
	}
	return "", playlists.ErrNotAuthorized
}

type stubPlaylists struct {
	PlaylistService

	deleteErr     error
	activities    []store.Activity
	activitiesErr error
}

func (s *stubPlaylists) Delete(_ context.Context, _, _ string) error {
	return s.deleteErr
}

func (s *stubPlaylists) Activities(_ context.Context, _, _ string) ([]store.Activity, error) {
	if s.activitiesErr != nil {
		return nil, s.activitiesErr
	}
	return s.activities, nil
}

type stubAlbums struct {
	AlbumService

	likeErr error
	count   albums.LikeCount
}

func (s *stubAlbums) Like(_ context.Context, _, _ string) error {
	return s.likeErr
}

func (s *stubAlbums) LikeCount(_ context.Context, _ string) (albums.LikeCount, error) {
	return s.count, nil
}

func newTestServer(pl *stubPlaylists, al *stubAlbums) http.Handler {
	srv := New(nil, al, nil, pl, nil, stubTokens{})
	return srv.Routes()
}

func doRequest(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	handler := newTestServer(&stubPlaylists{}, &stubAlbums{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/playlists/playlist-1/activities", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestBadTokenIsUnauthorized(t *testing.T) {
	handler := newTestServer(&stubPlaylists{}, &stubAlbums{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/playlists/playlist-1/activities", "stale-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthorizationErrorIsForbidden(t *testing.T) {
	pl := &stubPlaylists{deleteErr: playlists.ErrNotAuthorized}
	handler := newTestServer(pl, &stubAlbums{})

	rec := doRequest(t, handler, http.MethodDelete, "/api/v1/playlists/playlist-1", "good-token", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestNotFoundErrorIs404(t *testing.T) {
	pl := &stubPlaylists{activitiesErr: store.ErrNoPlaylistActivities}
	handler := newTestServer(pl, &stubAlbums{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/playlists/playlist-1/activities", "good-token", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestInvariantErrorIsBadRequest(t *testing.T) {
	al := &stubAlbums{likeErr: albums.ErrAlreadyLiked}
	handler := newTestServer(&stubPlaylists{}, al)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/albums/album-1/likes", "good-token", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLikeCountHeaderCarriesProvenance(t *testing.T) {
	al := &stubAlbums{count: albums.LikeCount{Count: 7, Source: albums.ProvenanceCache}}
	handler := newTestServer(&stubPlaylists{}, al)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/albums/album-1/likes", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Data-Source"); got != "cache" {
		t.Fatalf("X-Data-Source = %q, want cache", got)
	}

	var payload likeCountResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Likes != 7 {
		t.Fatalf("likes = %d, want 7", payload.Likes)
	}
}

func TestPlaylistActivitiesPayload(t *testing.T) {
	pl := &stubPlaylists{activities: []store.Activity{
		{Username: "alice", Title: "Teardrop", Action: store.ActivityAdd},
	}}
	handler := newTestServer(pl, &stubAlbums{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/playlists/playlist-7/activities", "good-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload struct {
		PlaylistID string           `json:"playlistId"`
		Activities []store.Activity `json:"activities"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.PlaylistID != "playlist-7" {
		t.Fatalf("playlistId = %q", payload.PlaylistID)
	}
	if len(payload.Activities) != 1 || payload.Activities[0].Username != "alice" {
		t.Fatalf("unexpected activities: %+v", payload.Activities)
	}
}
