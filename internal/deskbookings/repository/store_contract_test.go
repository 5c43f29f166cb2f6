package repository_test

import (
	"context"
	"testing"
	"time"

	deskbookingserrors "deskbooker/internal/deskbookings/errors"
	"deskbooker/internal/deskbookings/repository"
	"deskbooker/internal/deskbookings/service"
	"deskbooker/pkg/logger"
	"deskbooker/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeTestTimeout = 30 * time.Second

// runStoreContract checks the behaviour every store pair must share.
func runStoreContract(t *testing.T, desks repository.DeskRepository, bookings repository.DeskBookingRepository) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), storeTestTimeout)
	defer cancel()

	day := time.Date(2020, time.September, 5, 0, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)

	for _, id := range []int{3, 1, 2} {
		require.NoError(t, desks.Upsert(ctx, &model.Desk{ID: id, Label: "desk"}))
	}
	require.NoError(t, desks.Upsert(ctx, &model.Desk{ID: 2, Label: "window"}))

	count, err := desks.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	t.Run("available desks are ordered by id", func(t *testing.T) {
		available, err := desks.GetAvailableDesks(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, deskIDs(available))
		assert.Equal(t, "window", available[1].Label)
	})

	t.Run("save assigns id and removes desk from availability", func(t *testing.T) {
		booking := &model.DeskBooking{
			FirstName: "Luis",
			LastName:  "Marques",
			Email:     "luis@example.com",
			Date:      day.Add(15 * time.Hour),
			DeskID:    1,
		}
		require.NoError(t, bookings.Save(ctx, booking))
		assert.NotEmpty(t, booking.ID)
		assert.False(t, booking.CreatedAt.IsZero())

		available, err := desks.GetAvailableDesks(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, deskIDs(available))

		available, err = desks.GetAvailableDesks(ctx, nextDay)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, deskIDs(available))
	})

	t.Run("second booking for the same desk and day is rejected", func(t *testing.T) {
		err := bookings.Save(ctx, &model.DeskBooking{
			FirstName: "Ana",
			LastName:  "Silva",
			Email:     "ana@example.com",
			Date:      day,
			DeskID:    1,
		})
		assert.ErrorIs(t, err, deskbookingserrors.ErrDeskAlreadyBooked)
	})

	t.Run("processor books the next free desk", func(t *testing.T) {
		processor := service.NewDeskBookingProcessor(bookings, desks, logger.Discard())

		result, err := processor.BookDesk(ctx, &model.DeskBookingRequest{
			FirstName: "Ana",
			LastName:  "Silva",
			Email:     "ana@example.com",
			Date:      day,
		})
		require.NoError(t, err)
		assert.Equal(t, model.Success, result.Code)

		found, err := bookings.FindByDate(ctx, day, 10, 0)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, 1, found[0].DeskID)
		assert.Equal(t, 2, found[1].DeskID)
		assert.Equal(t, "ana@example.com", found[1].Email)

		total, err := bookings.CountByDate(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		page, err := bookings.FindByDate(ctx, day, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, 2, page[0].DeskID)
	})

	t.Run("no desk available once all are taken", func(t *testing.T) {
		processor := service.NewDeskBookingProcessor(bookings, desks, logger.Discard())
		request := &model.DeskBookingRequest{FirstName: "Rui", LastName: "Costa", Email: "rui@example.com", Date: day}

		result, err := processor.BookDesk(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, model.Success, result.Code)

		result, err = processor.BookDesk(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, model.NoDeskAvailable, result.Code)

		total, err := bookings.CountByDate(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})
}

func deskIDs(desks []*model.Desk) []int {
	ids := make([]int, 0, len(desks))
	for _, d := range desks {
		ids = append(ids, d.ID)
	}
	return ids
}
