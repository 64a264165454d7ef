package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/easytravel/easytravel-server/internal/model"
)

type errorResponse struct {
	Message string `json:"message"`
}

// handleError maps domain errors to HTTP responses. Auth failures become
// 4xx with a short message; anything unexpected becomes a generic 500.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "wrong email or password")
	case errors.Is(err, model.ErrInvalidToken), errors.Is(err, model.ErrTokenRevoked):
		writeError(w, http.StatusBadRequest, "invalid token")
	case errors.Is(err, model.ErrInvalidAssertion):
		writeError(w, http.StatusBadRequest, "invalid identity assertion")
	case errors.Is(err, model.ErrEmailTaken), errors.Is(err, model.ErrUsernameTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON decodes a request body, reporting false after writing a 400 on
// malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
