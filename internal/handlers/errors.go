package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wordquiz/internal/repository"
	"wordquiz/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

// respondWithServiceError maps a service error to a status code:
// validation failures are 400, storage outages 503, the rest 500
func respondWithServiceError(w http.ResponseWriter, logMsg string, err error) {
	var ve validation.ValidationError
	switch {
	case errors.As(err, &ve):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Field: ve.Field})
	case errors.Is(err, repository.ErrStorageUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, ErrStorageUnavailable, logMsg, err)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// decodeJSON reads a request body into dst and validates it
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return validation.ValidationError{Field: "body", Message: ErrInvalidRequestBody + ": " + err.Error()}
	}
	return validation.Struct(dst)
}
