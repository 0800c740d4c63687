package handlers

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password, confirmPassword, email string) (*models.UserDB, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: alice
	Username string `json:"username"`

	// Password
	// required: true
	// default: pw1
	Password string `json:"password"`

	// Password confirmation, must equal Password
	// required: true
	// default: pw1
	ConfirmPassword string `json:"confirmPassword"`

	// Email
	// required: true
	// default: a@x.com
	Email string `json:"email"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error(msgMissingFields),
			validation.RuneLength(1, maxUsernameLen).Error(msgUsernameTooLong)),
		validation.Field(&r.Password, validation.Required.Error(msgMissingFields)),
		validation.Field(&r.ConfirmPassword, validation.Required.Error(msgMissingFields)),
		validation.Field(&r.Email,
			validation.Required.Error(msgMissingFields),
			validation.RuneLength(1, maxEmailLen).Error(msgEmailTooLong)),
	)
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. Username and email must be unique. The password is stored as a bcrypt digest.
// @Tags users
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields or invalid body"
// @Failure 422 {object} handlers.ErrorResponse "User already exists / passwords do not match"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := svc.Register(r.Context(), req.Username, req.Password, req.ConfirmPassword, req.Email)
		if err != nil {
			writeServiceError(w, err, "")
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			ID:       user.UserID,
			Username: user.Username,
			Email:    user.Email,
		})
	}
}

// RegisterRegisterHandler registers the registration route
func RegisterRegisterHandler(r chi.Router, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	r.With(mws...).Post("/users/register", h)
}
