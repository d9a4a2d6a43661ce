package httpapi

import (
	"encoding/json"
	"net/http"
)

type playlistRequest struct {
	Name string `json:"name"`
}

type playlistSongRequest struct {
	SongID string `json:"songId"`
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeAuthError(w)
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	id, err := s.playlists.Create(r.Context(), req.Name, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeAuthError(w)
		return
	}

	playlists, err := s.playlists.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeAuthError(w)
		return
	}

	if err := s.playlists.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeAuthError(w)
		return
	}

	var req playlistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SongID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "songId is required"})
		return
	}

	id, err := s.playlists.AddSong(r.Context(), r.PathValue("id"), req.SongID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handlePlaylistSongs(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeAuthError(w)
		return
	}

	playlist, err := s.playlists.Songs(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleRemovePlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeAuthError(w)
		return
	}

	var req playlistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SongID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "songId is required"})
		return
	}

	if err := s.playlists.RemoveSong(r.Context(), r.PathValue("id"), req.SongID, userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlaylistActivities(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeAuthError(w)
		return
	}

	playlistID := r.PathValue("id")
	activities, err := s.playlists.Activities(r.Context(), playlistID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"playlistId": playlistID,
		"activities": activities,
	})
}
