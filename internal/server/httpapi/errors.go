package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bridgehq/bridge/internal/common"
)

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps service sentinels onto HTTP status codes. Anything
// unrecognized is treated as an internal failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidLogin),
		errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrInvalidAuthShape):
		return http.StatusUnauthorized

	case errors.Is(err, common.ErrNotGroupMember),
		errors.Is(err, common.ErrNotVerified):
		return http.StatusForbidden

	case errors.Is(err, common.ErrNotFound),
		errors.Is(err, common.ErrGroupNotFound),
		errors.Is(err, common.ErrRequestNotFound),
		errors.Is(err, common.ErrCandidateNotFound):
		return http.StatusNotFound

	case errors.Is(err, common.ErrEmailTaken),
		errors.Is(err, common.ErrAlreadyGrouped),
		errors.Is(err, common.ErrRequestPending):
		return http.StatusConflict

	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrSelfRequest),
		errors.Is(err, common.ErrRequestNotPending),
		errors.Is(err, common.ErrGroupFull),
		errors.Is(err, common.ErrEmptyMessage),
		errors.Is(err, common.ErrAlreadyVerified),
		errors.Is(err, common.ErrInvalidCode):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
