package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"account-service/internal/role"
	"account-service/internal/user"
)

const msgInternal = "internal server error"

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}

func writeMessage(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"message": message})
}

// ErrorResponse maps a service error to its HTTP status and the message
// safe to show the caller. Client input errors are 4xx; store faults are
// 5xx and, except for an unknown role, masked.
func ErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, user.ErrPasswordMismatch),
		errors.Is(err, user.ErrWeakPassword),
		errors.Is(err, user.ErrInvalidPhone),
		errors.Is(err, user.ErrPasswordTooLong),
		errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, role.ErrNotFound):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	code, message := ErrorResponse(err)
	WriteJSONError(w, message, code)
}
