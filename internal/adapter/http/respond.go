package http

import (
	"encoding/json"
	"net/http"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, statusCode int, errMsg, message string) {
	respondJSON(w, statusCode, ErrorResponse{Error: errMsg, Message: message})
}

func respondValidationErrors(w http.ResponseWriter, validationErrors []ValidationError) {
	respondJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:  "Validation failed",
		Errors: validationErrors,
	})
}
