package services

import (
	"errors"

	"github.com/google/uuid"
)

// ErrForbidden is returned when the authenticated user does not own the resource.
var ErrForbidden = errors.New("resource belongs to another user")

// Authorize allows an operation only when subjectID owns the resource.
func Authorize(subjectID, ownerID uuid.UUID) error {
	if subjectID == uuid.Nil || subjectID != ownerID {
		return ErrForbidden
	}
	return nil
}
