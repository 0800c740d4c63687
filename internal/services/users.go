package services

//go:generate mockgen -source=users.go -destination=users_mock.go -package=services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/logger"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
	"github.com/sbilibin2017/gw-user-posts/internal/repositories"
)

// UserModifier defines account updates and deletion.
type UserModifier interface {
	Update(ctx context.Context, userID uuid.UUID, username, email string) (*models.UserDB, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserService manages the authenticated user's own account.
type UserService struct {
	reader    UserReader
	modifier  UserModifier
	publisher Publisher
}

func NewUserService(reader UserReader, modifier UserModifier, publisher Publisher) *UserService {
	return &UserService{reader: reader, modifier: modifier, publisher: publisher}
}

// Update changes username and/or email of targetID, which must be the subject.
func (s *UserService) Update(ctx context.Context, subjectID, targetID uuid.UUID, username, email string) (*models.UserDB, error) {
	if err := Authorize(subjectID, targetID); err != nil {
		logger.Log.Warnw("user update forbidden", "subject", subjectID, "target", targetID)
		return nil, err
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" && email == "" {
		return nil, ErrMissingFields
	}

	user, err := s.modifier.Update(ctx, targetID, username, email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil, ErrUserNotFound
	case errors.Is(err, repositories.ErrConflict):
		return nil, ErrUserAlreadyExists
	case err != nil:
		logger.Log.Errorw("failed to update user", "userID", targetID, "err", err)
		return nil, err
	}

	publish(ctx, s.publisher, models.EventUserUpdated, subjectID, targetID)
	return user, nil
}

// Delete removes the account of targetID, which must be the subject.
// Outstanding tokens for the account stay valid until they expire.
func (s *UserService) Delete(ctx context.Context, subjectID, targetID uuid.UUID) error {
	if err := Authorize(subjectID, targetID); err != nil {
		logger.Log.Warnw("user delete forbidden", "subject", subjectID, "target", targetID)
		return err
	}

	if err := s.modifier.Delete(ctx, targetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to delete user", "userID", targetID, "err", err)
		return err
	}

	publish(ctx, s.publisher, models.EventUserDeleted, subjectID, targetID)
	return nil
}

// GetByEmail returns the user with email if it is the subject's own account.
func (s *UserService) GetByEmail(ctx context.Context, subjectID uuid.UUID, email string) (*models.UserDB, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrMissingFields
	}

	user, err := s.reader.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to get user", "email", email, "err", err)
		return nil, err
	}

	if err := Authorize(subjectID, user.UserID); err != nil {
		logger.Log.Warnw("user lookup forbidden", "subject", subjectID, "target", user.UserID)
		return nil, err
	}
	return user, nil
}
