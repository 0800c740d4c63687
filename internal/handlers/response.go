package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/jwt"
	"github.com/sbilibin2017/gw-user-posts/internal/logger"
	"github.com/sbilibin2017/gw-user-posts/internal/services"
)

const (
	msgInternal      = "Internal server error"
	msgInvalidBody   = "Invalid request body"
	msgMissingFields = "All fields are required."
	msgInvalidToken  = "Invalid token"

	msgUsernameTooLong = "Username must be at most 50 characters."
	msgEmailTooLong    = "Email must be at most 100 characters."

	// Column widths of users.username and users.email.
	maxUsernameLen = 50
	maxEmailLen    = 100
)

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// MessageResponse confirms an operation without returning a resource
// swagger:model MessageResponse
type MessageResponse struct {
	// Message
	// default: User deleted successfully.
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps a service error to its status code. forbidden is the
// message used when the caller does not own the resource.
func writeServiceError(w http.ResponseWriter, err error, forbidden string) {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		writeError(w, http.StatusBadRequest, msgMissingFields)
	case errors.Is(err, services.ErrUserAlreadyExists):
		writeError(w, http.StatusUnprocessableEntity, "User already exists")
	case errors.Is(err, services.ErrPasswordMismatch):
		writeError(w, http.StatusUnprocessableEntity, "Passwords do not match")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, "Too many failed login attempts. Try again later.")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, forbidden)
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrNoPosts):
		writeError(w, http.StatusNotFound, "No posts found for this user.")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// subjectID returns the authenticated user id placed in the context by the
// auth middleware. It writes a 401 and reports false when none is present.
func subjectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// uuidParam parses a UUID URL parameter. A malformed id cannot name an
// existing resource, so it is answered with the given status and message.
func uuidParam(w http.ResponseWriter, r *http.Request, name string, status int, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, status, msg)
		return uuid.Nil, false
	}
	return id, true
}

// validationMessage picks the message of a failed Validate. Missing fields
// win over any other rule; otherwise the first field in name order is used.
func validationMessage(err error) string {
	var fields validation.Errors
	if !errors.As(err, &fields) {
		return msgInvalidBody
	}

	names := make([]string, 0, len(fields))
	for name, ferr := range fields {
		if ferr != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	msg := msgInvalidBody
	for i, name := range names {
		text := fields[name].Error()
		if text == msgMissingFields {
			return text
		}
		if i == 0 {
			msg = text
		}
	}
	return msg
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	if vv, ok := v.(validation.Validatable); ok {
		if err := vv.Validate(); err != nil {
			logger.Log.Debugw("request validation failed", "err", err)
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return false
		}
	}
	return true
}
