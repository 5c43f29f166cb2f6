package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"deskbooker/pkg/kafka"
	"deskbooker/pkg/logger"
	"deskbooker/pkg/middleware"
	"deskbooker/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBookingStore struct {
	mock.Mock
}

func (m *mockBookingStore) Save(ctx context.Context, booking *model.DeskBooking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func newBooking() *model.DeskBooking {
	return &model.DeskBooking{
		FirstName: "Luis",
		LastName:  "Marques",
		Email:     "luis@example.com",
		Date:      time.Date(2020, time.September, 5, 0, 0, 0, 0, time.UTC),
		DeskID:    7,
	}
}

func TestEventPublishingBookingStore_PublishesAfterSave(t *testing.T) {
	store := new(mockBookingStore)
	publisher := new(mockPublisher)
	booking := newBooking()

	store.On("Save", mock.Anything, booking).Run(func(args mock.Arguments) {
		args.Get(1).(*model.DeskBooking).ID = "b-1"
	}).Return(nil)

	var published kafka.Message
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("kafka.Message")).Run(func(args mock.Arguments) {
		published = args.Get(1).(kafka.Message)
	}).Return(nil)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	err := NewEventPublishingBookingStore(store, publisher, logger.Discard()).Save(ctx, booking)

	require.NoError(t, err)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
	assert.Equal(t, "7:2020-09-05", published.Key)
	assert.Equal(t, model.EventDeskBookingCreated, published.GetEventType())
	assert.Equal(t, "req-1", published.GetCorrelationID())

	var event model.DeskBookingCreatedEvent
	require.NoError(t, published.DecodeValue(&event))
	assert.Equal(t, "b-1", event.BookingID)
	assert.Equal(t, 7, event.DeskID)
	assert.Equal(t, "2020-09-05", event.Date)
}

func TestEventPublishingBookingStore_SaveErrorSkipsPublish(t *testing.T) {
	store := new(mockBookingStore)
	publisher := new(mockPublisher)
	saveErr := errors.New("write failed")

	store.On("Save", mock.Anything, mock.Anything).Return(saveErr)

	err := NewEventPublishingBookingStore(store, publisher, logger.Discard()).Save(context.Background(), newBooking())

	assert.Same(t, saveErr, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestEventPublishingBookingStore_PublishErrorIsSwallowed(t *testing.T) {
	store := new(mockBookingStore)
	publisher := new(mockPublisher)

	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(kafka.ErrProducerClosed)

	err := NewEventPublishingBookingStore(store, publisher, logger.Discard()).Save(context.Background(), newBooking())

	assert.NoError(t, err)
	store.AssertNumberOfCalls(t, "Save", 1)
}
