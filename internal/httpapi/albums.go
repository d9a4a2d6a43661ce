package httpapi

import (
	"encoding/json"
	"net/http"
)

type albumRequest struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

type idResponse struct {
	ID string `json:"id"`
}

type coverRequest struct {
	CoverURL string `json:"coverUrl"`
}

type likeCountResponse struct {
	Likes int `json:"likes"`
}

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	if _, err := s.userID(r); err != nil {
		writeAuthError(w)
		return
	}

	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Name == "" || req.Year == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and year are required"})
		return
	}

	id, err := s.albums.Create(r.Context(), req.Name, req.Year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	album, err := s.albums.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, album)
}

func (s *Server) handleUpdateAlbum(w http.ResponseWriter, r *http.Request) {
	if _, err := s.userID(r); err != nil {
		writeAuthError(w)
		return
	}

	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.albums.Update(r.Context(), r.PathValue("id"), req.Name, req.Year); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	if _, err := s.userID(r); err != nil {
		writeAuthError(w)
		return
	}

	if err := s.albums.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetAlbumCover records the externally stored cover location.
func (s *Server) handleSetAlbumCover(w http.ResponseWriter, r *http.Request) {
	if _, err := s.userID(r); err != nil {
		writeAuthError(w)
		return
	}

	var req coverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CoverURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "coverUrl is required"})
		return
	}

	if err := s.albums.SetCover(r.Context(), r.PathValue("id"), req.CoverURL); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLikeAlbum(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeAuthError(w)
		return
	}

	if err := s.albums.Like(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleUnlikeAlbum(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeAuthError(w)
		return
	}

	if err := s.albums.Unlike(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAlbumLikeCount exposes the count's provenance through the
// X-Data-Source header so clients can tell a cache hit from a fresh
// computation.
func (s *Server) handleAlbumLikeCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.albums.LikeCount(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("X-Data-Source", string(count.Source))
	writeJSON(w, http.StatusOK, likeCountResponse{Likes: count.Count})
}
