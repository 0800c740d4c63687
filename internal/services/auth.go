package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/logger"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
	"github.com/sbilibin2017/gw-user-posts/internal/repositories"
)

// dummyHash is compared against when the username is unknown so that
// login time does not reveal whether the user exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines user creation.
type UserWriter interface {
	Save(ctx context.Context, username, passwordHash, email string) (*models.UserDB, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}

// JWTGenerator issues session tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, username string) (string, error)
}

// LoginAttemptCounter tracks failed logins per username.
type LoginAttemptCounter interface {
	Count(ctx context.Context, username string) (int64, error)
	Increment(ctx context.Context, username string) (int64, error)
	Reset(ctx context.Context, username string) error
}

// Publisher publishes lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, event models.Event)
}

// AuthService handles registration and login.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	hasher      PasswordHasher
	jwt         JWTGenerator
	attempts    LoginAttemptCounter
	maxAttempts int64
	publisher   Publisher
}

// NewAuthService creates a new AuthService. attempts and publisher may be nil;
// maxAttempts <= 0 disables the failed-login limit.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	hasher PasswordHasher,
	jwt JWTGenerator,
	attempts LoginAttemptCounter,
	maxAttempts int64,
	publisher Publisher,
) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		hasher:      hasher,
		jwt:         jwt,
		attempts:    attempts,
		maxAttempts: maxAttempts,
		publisher:   publisher,
	}
}

// Register creates a new user and returns it.
func (svc *AuthService) Register(ctx context.Context, username, password, confirmPassword, email string) (*models.UserDB, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || confirmPassword == "" || email == "" {
		return nil, ErrMissingFields
	}

	exists, err := svc.exists(ctx, username, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if exists {
		logger.Log.Infow("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}

	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	hashedPassword, err := svc.hasher.Hash(password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, username, hashedPassword, email)
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	publish(ctx, svc.publisher, models.EventUserRegistered, user.UserID, user.UserID)
	return user, nil
}

func (svc *AuthService) exists(ctx context.Context, username, email string) (bool, error) {
	if _, err := svc.reader.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}

	if _, err := svc.reader.GetByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}
	return false, nil
}

// Login authenticates a user and returns a session token with the user record.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, *models.UserDB, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrMissingFields
	}

	if svc.limited(ctx, username) {
		logger.Log.Warnw("login rejected, too many failed attempts", "username", username)
		return "", nil, ErrTooManyAttempts
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			logger.Log.Errorw("failed to get user", "err", err)
			return "", nil, err
		}
		_, _ = svc.hasher.Verify(password, dummyHash)
		svc.recordFailure(ctx, username)
		logger.Log.Infow("user does not exist", "username", username)
		return "", nil, ErrInvalidCredentials
	}

	ok, err := svc.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		logger.Log.Errorw("failed to verify password", "username", username, "err", err)
		return "", nil, err
	}
	if !ok {
		svc.recordFailure(ctx, username)
		logger.Log.Infow("invalid credentials", "username", username)
		return "", nil, ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", nil, err
	}

	if svc.attempts != nil {
		if err := svc.attempts.Reset(ctx, username); err != nil {
			logger.Log.Warnw("failed to reset login attempts", "username", username, "err", err)
		}
	}

	return token, user, nil
}

// limited reports whether the username exhausted its failed attempts.
// Counter errors do not block logins.
func (svc *AuthService) limited(ctx context.Context, username string) bool {
	if svc.attempts == nil || svc.maxAttempts <= 0 {
		return false
	}
	n, err := svc.attempts.Count(ctx, username)
	if err != nil {
		logger.Log.Warnw("failed to read login attempts", "username", username, "err", err)
		return false
	}
	return n >= svc.maxAttempts
}

func (svc *AuthService) recordFailure(ctx context.Context, username string) {
	if svc.attempts == nil {
		return
	}
	if _, err := svc.attempts.Increment(ctx, username); err != nil {
		logger.Log.Warnw("failed to record login attempt", "username", username, "err", err)
	}
}

func publish(ctx context.Context, p Publisher, eventType string, userID, resourceID uuid.UUID) {
	if p == nil {
		return
	}
	p.Publish(ctx, NewEvent(eventType, userID, resourceID))
}
