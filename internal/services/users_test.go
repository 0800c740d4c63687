package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
	"github.com/sbilibin2017/gw-user-posts/internal/repositories"
	"github.com/sbilibin2017/gw-user-posts/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Update(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	tests := []struct {
		name     string
		subject  uuid.UUID
		target   uuid.UUID
		username string
		email    string
		setup    func(m *services.MockUserModifier, p *services.MockPublisher)
		wantErr  error
		wantAny  bool
	}{
		{
			name:    "updates own account",
			subject: alice, target: alice, username: "alice2",
			setup: func(m *services.MockUserModifier, p *services.MockPublisher) {
				m.EXPECT().Update(gomock.Any(), alice, "alice2", "").
					Return(&models.UserDB{UserID: alice, Username: "alice2", Email: "a@x.com"}, nil)
				p.EXPECT().Publish(gomock.Any(), eventOfType(models.EventUserUpdated))
			},
		},
		{
			name:    "other account is forbidden",
			subject: bob, target: alice, username: "x",
			setup:   func(m *services.MockUserModifier, p *services.MockPublisher) {},
			wantErr: services.ErrForbidden,
		},
		{
			name:    "forbidden is checked before missing fields",
			subject: bob, target: alice,
			setup:   func(m *services.MockUserModifier, p *services.MockPublisher) {},
			wantErr: services.ErrForbidden,
		},
		{
			name:    "nothing to update",
			subject: alice, target: alice, username: " ",
			setup:   func(m *services.MockUserModifier, p *services.MockPublisher) {},
			wantErr: services.ErrMissingFields,
		},
		{
			name:    "account removed",
			subject: alice, target: alice, email: "n@x.com",
			setup: func(m *services.MockUserModifier, p *services.MockPublisher) {
				m.EXPECT().Update(gomock.Any(), alice, "", "n@x.com").Return(nil, repositories.ErrNotFound)
			},
			wantErr: services.ErrUserNotFound,
		},
		{
			name:    "email taken",
			subject: alice, target: alice, email: "b@x.com",
			setup: func(m *services.MockUserModifier, p *services.MockPublisher) {
				m.EXPECT().Update(gomock.Any(), alice, "", "b@x.com").Return(nil, repositories.ErrConflict)
			},
			wantErr: services.ErrUserAlreadyExists,
		},
		{
			name:    "store error",
			subject: alice, target: alice, username: "a",
			setup: func(m *services.MockUserModifier, p *services.MockPublisher) {
				m.EXPECT().Update(gomock.Any(), alice, "a", "").Return(nil, errors.New("db error"))
			},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			modifier := services.NewMockUserModifier(ctrl)
			publisher := services.NewMockPublisher(ctrl)
			tt.setup(modifier, publisher)

			svc := services.NewUserService(services.NewMockUserReader(ctrl), modifier, publisher)
			user, err := svc.Update(context.Background(), tt.subject, tt.target, tt.username, tt.email)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			case tt.wantAny:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, "alice2", user.Username)
			}
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	tests := []struct {
		name    string
		subject uuid.UUID
		setup   func(m *services.MockUserModifier, p *services.MockPublisher)
		wantErr error
	}{
		{
			name:    "deletes own account",
			subject: alice,
			setup: func(m *services.MockUserModifier, p *services.MockPublisher) {
				m.EXPECT().Delete(gomock.Any(), alice).Return(nil)
				p.EXPECT().Publish(gomock.Any(), eventOfType(models.EventUserDeleted))
			},
		},
		{
			name:    "other account is forbidden",
			subject: bob,
			setup:   func(m *services.MockUserModifier, p *services.MockPublisher) {},
			wantErr: services.ErrForbidden,
		},
		{
			name:    "account already gone",
			subject: alice,
			setup: func(m *services.MockUserModifier, p *services.MockPublisher) {
				m.EXPECT().Delete(gomock.Any(), alice).Return(repositories.ErrNotFound)
			},
			wantErr: services.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			modifier := services.NewMockUserModifier(ctrl)
			publisher := services.NewMockPublisher(ctrl)
			tt.setup(modifier, publisher)

			svc := services.NewUserService(services.NewMockUserReader(ctrl), modifier, publisher)
			err := svc.Delete(context.Background(), tt.subject, alice)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserService_GetByEmail(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	aliceRecord := &models.UserDB{UserID: alice, Username: "alice", Email: "a@x.com"}

	tests := []struct {
		name    string
		subject uuid.UUID
		email   string
		setup   func(r *services.MockUserReader)
		wantErr error
	}{
		{
			name:    "own account",
			subject: alice, email: "a@x.com",
			setup: func(r *services.MockUserReader) {
				r.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(aliceRecord, nil)
			},
		},
		{
			name:    "another user's account",
			subject: bob, email: "a@x.com",
			setup: func(r *services.MockUserReader) {
				r.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(aliceRecord, nil)
			},
			wantErr: services.ErrForbidden,
		},
		{
			name:    "unknown email",
			subject: alice, email: "z@x.com",
			setup: func(r *services.MockUserReader) {
				r.EXPECT().GetByEmail(gomock.Any(), "z@x.com").Return(nil, repositories.ErrNotFound)
			},
			wantErr: services.ErrUserNotFound,
		},
		{
			name:    "empty email",
			subject: alice,
			setup:   func(r *services.MockUserReader) {},
			wantErr: services.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := services.NewMockUserReader(ctrl)
			tt.setup(reader)

			svc := services.NewUserService(reader, services.NewMockUserModifier(ctrl), nil)
			user, err := svc.GetByEmail(context.Background(), tt.subject, tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, alice, user.UserID)
		})
	}
}
