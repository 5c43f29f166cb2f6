package migrations

import (
	"context"
	"fmt"

	mongoMigration "deskbooker/internal/migrations/mongo"
	postgresMigration "deskbooker/internal/migrations/postgres"
	"deskbooker/pkg/config"
)

// Run migrates the store selected by cfg.StoreDriver. cfg must be connected.
func Run(ctx context.Context, cfg *config.Config) error {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		return mongoMigration.RunMigration(ctx, cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.Log)
	case config.StorePostgres:
		return postgresMigration.RunMigration(ctx, cfg.Client.Postgres, cfg.Log)
	default:
		return fmt.Errorf("unknown store driver: %s", cfg.StoreDriver)
	}
}
