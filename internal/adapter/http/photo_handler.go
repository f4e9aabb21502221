package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pbarros/fornecedores/internal/adapter/logger"
	"github.com/pbarros/fornecedores/internal/interfaces"
)

type PhotoHandler struct {
	relay  interfaces.PhotoRelay
	logger logger.Logger
}

func NewPhotoHandler(relay interfaces.PhotoRelay, logger logger.Logger) *PhotoHandler {
	return &PhotoHandler{
		relay:  relay,
		logger: logger,
	}
}

type StorePhotoRequest struct {
	SessionID string `json:"session_id"`
	Photo     string `json:"photo"`
}

// StorePhoto serves POST /photo: the mobile capture flow drops a photo
// under its session id for the desktop session to pick up.
func (h *PhotoHandler) StorePhoto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	var req StorePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if req.SessionID == "" || req.Photo == "" {
		respondError(w, http.StatusBadRequest, "Missing session_id or photo data", "")
		return
	}

	h.relay.Put(req.SessionID, req.Photo)
	respondJSON(w, http.StatusOK, map[string]string{"status": "stored"})
}

// GetPhoto serves GET /photo/{session_id}. A hit removes the entry, so
// each photo is delivered at most once; absent or expired sessions answer
// not_found.
func (h *PhotoHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	sessionID := strings.TrimPrefix(r.URL.Path, "/photo/")
	if sessionID == "" || strings.Contains(sessionID, "/") {
		respondJSON(w, http.StatusNotFound, map[string]string{"status": "not_found"})
		return
	}

	payload, ok := h.relay.Get(sessionID)
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]string{"status": "not_found"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "found",
		"photo":  payload,
	})
}
