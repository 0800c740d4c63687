package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, *models.UserDB, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// default: alice
	Username string `json:"username"`

	// Password
	// required: true
	// default: pw1
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error(msgMissingFields)),
		validation.Field(&r.Password, validation.Required.Error(msgMissingFields)),
	)
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// Session token, valid for one hour
	// default: JWT_TOKEN
	Token    string    `json:"token"`
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user and return a session token
// @Tags users
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.LoginResponse "Token returned"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Invalid credentials"
// @Failure 429 {object} handlers.ErrorResponse "Too many failed attempts"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		token, user, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeServiceError(w, err, "")
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Token:    token,
			ID:       user.UserID,
			Username: user.Username,
			Email:    user.Email,
		})
	}
}

// RegisterLoginHandler registers the login route
func RegisterLoginHandler(r chi.Router, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	r.With(mws...).Post("/users/login", h)
}
