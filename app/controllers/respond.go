package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"netsketch/app/apperr"
	"netsketch/app/middleware"
	"netsketch/app/services"
)

func callerFrom(r *http.Request) (services.Caller, bool) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		return services.Caller{}, false
	}
	return services.Caller{ID: claims.UserID, Username: claims.Username, Role: claims.Role}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps the service error taxonomy to HTTP statuses. Validation
// detail is passed through; other errors keep a fixed message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, apperr.ErrAccessDenied):
		writeJSON(w, http.StatusForbidden, errorBody{Error: "access denied"})
	case errors.Is(err, apperr.ErrDuplicateUsername):
		writeJSON(w, http.StatusConflict, errorBody{Error: "username already taken"})
	case errors.Is(err, apperr.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, apperr.ErrStorageUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "storage unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
