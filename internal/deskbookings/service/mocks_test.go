package service

import (
	"context"
	"time"

	"deskbooker/pkg/model"

	"github.com/stretchr/testify/mock"
)

type mockDeskRepository struct {
	mock.Mock
}

func (m *mockDeskRepository) GetAvailableDesks(ctx context.Context, date time.Time) ([]*model.Desk, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Desk), args.Error(1)
}

type mockDeskBookingRepository struct {
	mock.Mock
}

func (m *mockDeskBookingRepository) Save(ctx context.Context, booking *model.DeskBooking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockDeskBookingRepository) FindByDate(ctx context.Context, date time.Time, limit int, offset int64) ([]*model.DeskBooking, error) {
	args := m.Called(ctx, date, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.DeskBooking), args.Error(1)
}

func (m *mockDeskBookingRepository) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}
