package httpapi

import (
	"encoding/json"
	"net/http"

	"soundcrate/internal/store"
)

type songRequest struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

func (req songRequest) toSong() store.Song {
	return store.Song{
		Title:     req.Title,
		Year:      req.Year,
		Genre:     req.Genre,
		Performer: req.Performer,
		Duration:  req.Duration,
		AlbumID:   req.AlbumID,
	}
}

func (req songRequest) validate() string {
	switch {
	case req.Title == "":
		return "title is required"
	case req.Year == 0:
		return "year is required"
	case req.Genre == "":
		return "genre is required"
	case req.Performer == "":
		return "performer is required"
	}
	return ""
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	if _, err := s.userID(r); err != nil {
		writeAuthError(w)
		return
	}

	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	id, err := s.songs.Create(r.Context(), req.toSong())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.songs.List(r.Context(), r.URL.Query().Get("title"), r.URL.Query().Get("performer"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.songs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	if _, err := s.userID(r); err != nil {
		writeAuthError(w)
		return
	}

	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	if err := s.songs.Update(r.Context(), r.PathValue("id"), req.toSong()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if _, err := s.userID(r); err != nil {
		writeAuthError(w)
		return
	}

	if err := s.songs.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
