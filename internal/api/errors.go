// internal/api/errors.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "freelance-match/internal/common/errors"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// writeAppError maps a pipeline error onto the wire. Non-surfaced and unknown
// errors collapse into a generic 500 so internal failure detail stays out of
// responses.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var stdErr *apperrors.StandardError
	if !errors.As(err, &stdErr) || !stdErr.Surfaced {
		WriteError(w, r, http.StatusInternalServerError, string(apperrors.ErrCodeStoreFailed), "internal error")
		return
	}
	switch stdErr.Code {
	case apperrors.ErrCodeProjectNotFound:
		WriteError(w, r, http.StatusNotFound, string(stdErr.Code), stdErr.Message)
	case apperrors.ErrCodeValidationFailed:
		msg := stdErr.Message
		if stdErr.Details != "" {
			msg = stdErr.Details
		}
		WriteError(w, r, http.StatusBadRequest, string(stdErr.Code), msg)
	default:
		WriteError(w, r, http.StatusInternalServerError, string(apperrors.ErrCodeStoreFailed), "internal error")
	}
}
