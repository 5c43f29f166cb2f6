// Package bootstrap builds the desk booking object graph for a connected config.
// The HTTP service and deskctl share it so both book through the same store chain.
package bootstrap

import (
	"errors"
	"fmt"

	"deskbooker/internal/deskbookings/repository"
	"deskbooker/internal/deskbookings/service"
	"deskbooker/pkg/config"
	"deskbooker/pkg/kafka"
	kafka_config "deskbooker/pkg/kafka/config"
	kafka_middleware "deskbooker/pkg/kafka/middleware"
)

type Components struct {
	Desks     repository.DeskRepository
	Bookings  repository.DeskBookingRepository
	Store     repository.BookingStore
	Processor service.DeskBookingProcessor
	Queries   service.DeskQueryService

	producer *kafka.Producer
}

// New expects cfg.ConnectStore to have run.
func New(cfg *config.Config) (*Components, error) {
	desks, bookings, err := NewRepositories(cfg)
	if err != nil {
		return nil, err
	}

	c := &Components{
		Desks:    desks,
		Bookings: bookings,
		Store:    bookings,
	}

	if cfg.KafkaEnabled {
		producer, err := newProducer(cfg)
		if err != nil {
			return nil, err
		}
		c.producer = producer
		c.Store = repository.NewEventPublishingBookingStore(bookings, producer, cfg.Log)
		cfg.Log.Info("Desk booking events enabled", "topic", cfg.DeskBookingsTopic)
	}

	c.Processor = service.NewDeskBookingProcessor(c.Store, desks, cfg.Log)
	c.Queries = service.NewDeskQueryService(desks, bookings, cfg.Log)

	cfg.Log.Info("Desk booking services initialized", "store", cfg.StoreDriver)
	return c, nil
}

func NewRepositories(cfg *config.Config) (repository.DeskRepository, repository.DeskBookingRepository, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		if cfg.Client.Mongo == nil {
			return nil, nil, errors.New("mongo store selected but not connected")
		}
		return repository.NewMongoDeskRepository(cfg), repository.NewMongoDeskBookingRepository(cfg), nil
	case config.StorePostgres:
		if cfg.Client.Postgres == nil {
			return nil, nil, errors.New("postgres store selected but not connected")
		}
		return repository.NewPostgresDeskRepository(cfg), repository.NewPostgresDeskBookingRepository(cfg), nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver: %s", cfg.StoreDriver)
	}
}

func newProducer(cfg *config.Config) (*kafka.Producer, error) {
	kafkaCfg := kafka_config.FromEnv()
	if err := kafkaCfg.Validate(); err != nil {
		return nil, err
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.DeskBookingsTopic, cfg.DeskBookingsDLQTopic, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	return producer, nil
}

// Close flushes and closes the event producer, if any.
func (c *Components) Close() error {
	if c.producer == nil {
		return nil
	}
	return c.producer.Close()
}
