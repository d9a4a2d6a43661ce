package httpapi

import (
	"encoding/json"
	"net/http"
)

type collaborationRequest struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

// handleAddCollaboration grants playlist access to another user.
// Granting is owner-only: a collaborator cannot delegate further.
func (s *Server) handleAddCollaboration(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeAuthError(w)
		return
	}

	var req collaborationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlaylistID == "" || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "playlistId and userId are required"})
		return
	}

	if err := s.playlists.VerifyOwner(r.Context(), req.PlaylistID, userID); err != nil {
		writeError(w, err)
		return
	}

	id, err := s.collaborations.Add(r.Context(), req.PlaylistID, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleRemoveCollaboration(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeAuthError(w)
		return
	}

	var req collaborationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlaylistID == "" || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "playlistId and userId are required"})
		return
	}

	if err := s.playlists.VerifyOwner(r.Context(), req.PlaylistID, userID); err != nil {
		writeError(w, err)
		return
	}

	if err := s.collaborations.Remove(r.Context(), req.PlaylistID, req.UserID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
