package repository

import (
	"context"
	"fmt"
	"time"

	"deskbooker/pkg/config"
	"deskbooker/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDeskRepository struct {
	cfg      *config.Config
	desks    *mongo.Collection
	bookings *mongo.Collection
}

func NewMongoDeskRepository(cfg *config.Config) DeskRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDeskRepository{
		cfg:      cfg,
		desks:    db.Collection(DesksCollection),
		bookings: db.Collection(DeskBookingsCollection),
	}
}

// GetAvailableDesks returns the desks with no booking on date, ordered by ascending _id.
func (r *mongoDeskRepository) GetAvailableDesks(ctx context.Context, date time.Time) ([]*model.Desk, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	booked, err := r.bookings.Distinct(ctx, "desk_id", bson.M{"date": model.DateOnly(date)})
	if err != nil {
		return nil, fmt.Errorf("failed to find booked desks: %w", err)
	}

	filter := bson.M{}
	if len(booked) > 0 {
		filter["_id"] = bson.M{"$nin": booked}
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.desks.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find desks: %w", err)
	}
	defer cursor.Close(ctx)

	var desks []*model.Desk
	if err = cursor.All(ctx, &desks); err != nil {
		return nil, fmt.Errorf("failed to decode desks: %w", err)
	}

	return desks, nil
}

func (r *mongoDeskRepository) Upsert(ctx context.Context, desk *model.Desk) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.desks.ReplaceOne(ctx, bson.M{"_id": desk.ID}, desk, opts); err != nil {
		return fmt.Errorf("failed to upsert desk %d: %w", desk.ID, err)
	}
	return nil
}

func (r *mongoDeskRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.desks.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count desks: %w", err)
	}
	return count, nil
}
