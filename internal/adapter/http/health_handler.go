package http

import "net/http"

type HealthHandler struct {
	service string
	backend string
}

func NewHealthHandler(service, backend string) *HealthHandler {
	return &HealthHandler{
		service: service,
		backend: backend,
	}
}

// Health always answers 200, independent of backend availability; the
// deployment platform treats anything else as a dead instance.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": h.service,
		"backend": h.backend,
	})
}
