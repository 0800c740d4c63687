package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
	"github.com/sbilibin2017/gw-user-posts/internal/services"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()

	e := services.NewEvent(models.EventPostCreated, userID, postID)
	assert.NotEmpty(t, e.EventID)
	assert.Equal(t, models.EventPostCreated, e.Type)
	assert.Equal(t, userID.String(), e.UserID)
	assert.Equal(t, postID.String(), e.ResourceID)
	assert.NotZero(t, e.Timestamp)
}

func TestEventPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := services.NewMockKafkaWriter(ctrl)
	p := services.NewEventPublisher(writer)

	event := services.NewEvent(models.EventUserRegistered, uuid.New(), uuid.New())

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, []byte(event.UserID), msgs[0].Key)

			var got models.Event
			require.NoError(t, json.Unmarshal(msgs[0].Value, &got))
			assert.Equal(t, event, got)
			return nil
		})

	p.Publish(context.Background(), event)
}

func TestEventPublisher_Scheduler(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := services.NewMockKafkaWriter(ctrl)

	var pending []func()
	p := services.NewEventPublisher(writer, services.WithScheduler(func(_ context.Context, fn func()) {
		pending = append(pending, fn)
	}))

	// nothing is written until the scheduled function runs
	p.Publish(context.Background(), services.NewEvent(models.EventPostCreated, uuid.New(), uuid.New()))
	require.Len(t, pending, 1)

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
	pending[0]()
}

func TestEventPublisher_PublishError(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := services.NewMockKafkaWriter(ctrl)
	p := services.NewEventPublisher(writer)

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), services.NewEvent(models.EventUserDeleted, uuid.New(), uuid.New()))
	})
}

func TestEventPublisher_NilWriter(t *testing.T) {
	p := services.NewEventPublisher(nil)

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), services.NewEvent(models.EventUserDeleted, uuid.New(), uuid.New()))
	})
	assert.NoError(t, p.Close())
}

func TestEventPublisher_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := services.NewMockKafkaWriter(ctrl)
	writer.EXPECT().Close().Return(nil)

	assert.NoError(t, services.NewEventPublisher(writer).Close())
}
