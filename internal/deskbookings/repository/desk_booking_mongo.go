package repository

import (
	"context"
	"fmt"
	"time"

	deskbookingserrors "deskbooker/internal/deskbookings/errors"
	"deskbooker/pkg/config"
	"deskbooker/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDeskBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDeskBookingRepository(cfg *config.Config) DeskBookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDeskBookingRepository{
		cfg:        cfg,
		collection: db.Collection(DeskBookingsCollection),
	}
}

// Save inserts the booking with its date normalised to midnight UTC. A second booking
// for the same desk and date violates the unique index and yields ErrDeskAlreadyBooked.
func (r *mongoDeskBookingRepository) Save(ctx context.Context, booking *model.DeskBooking) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	doc := *booking
	doc.ID = uuid.NewString()
	doc.Date = model.DateOnly(booking.Date)
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: desk %d on %s", deskbookingserrors.ErrDeskAlreadyBooked, booking.DeskID, doc.Date.Format(model.DateLayout))
		}
		return fmt.Errorf("failed to save desk booking: %w", err)
	}

	booking.ID = doc.ID
	booking.CreatedAt = doc.CreatedAt
	return nil
}

func (r *mongoDeskBookingRepository) FindByDate(ctx context.Context, date time.Time, limit int, offset int64) ([]*model.DeskBooking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "desk_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"date": model.DateOnly(date)}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find desk bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.DeskBooking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode desk bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoDeskBookingRepository) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"date": model.DateOnly(date)})
	if err != nil {
		return 0, fmt.Errorf("failed to count desk bookings: %w", err)
	}
	return count, nil
}
