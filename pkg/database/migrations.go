package database

import (
	"context"
	"fmt"
	"time"

	"cybertrax/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(context.Context, *mongo.Database) error
	Down        func(context.Context, *mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	logger     *logger.Logger
	migrations []Migration
}

func NewMigrator(db *mongo.Database, log *logger.Logger) *Migrator {
	return &Migrator{
		db:         db,
		logger:     log,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up(ctx context.Context) error {
	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version <= currentVersion {
			continue
		}

		m.logger.WithFields(logger.Fields{
			"version":     migration.Version,
			"description": migration.Description,
		}).Info("Running migration")

		if err := migration.Up(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if err := m.updateVersion(ctx, migration.Version); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}
	}

	return nil
}

func (m *Migrator) Down(ctx context.Context, targetVersion int) error {
	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version > currentVersion || migration.Version <= targetVersion {
			continue
		}

		m.logger.WithField("version", migration.Version).Info("Reverting migration")

		if err := migration.Down(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
		}

		previousVersion := targetVersion
		if i > 0 {
			previousVersion = m.migrations[i-1].Version
		}
		if err := m.updateVersion(ctx, previousVersion); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}
	}

	return nil
}

func (m *Migrator) getCurrentVersion(ctx context.Context) (int, error) {
	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection(CollectionMigrations).FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(ctx context.Context, version int) error {
	_, err := m.db.Collection(CollectionMigrations).ReplaceOne(
		ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updated_at", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)
	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create catalog indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				if err := createIndexes(ctx, db, CollectionCities, []mongo.IndexModel{
					{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
					{Keys: bson.D{{Key: "is_active", Value: 1}}},
				}); err != nil {
					return err
				}
				if err := createIndexes(ctx, db, CollectionTariffs, []mongo.IndexModel{
					{Keys: bson.D{{Key: "month", Value: 1}, {Key: "_id", Value: -1}}},
				}); err != nil {
					return err
				}
				return createIndexes(ctx, db, CollectionFixedRoutes, []mongo.IndexModel{
					{Keys: bson.D{{Key: "from_city", Value: 1}, {Key: "to_city", Value: 1}}},
				})
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				return dropIndexes(ctx, db, CollectionCities, CollectionTariffs, CollectionFixedRoutes)
			},
		},
		{
			Version:     2,
			Description: "Create city distance indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				return createIndexes(ctx, db, CollectionCityDistances, []mongo.IndexModel{
					{
						Keys:    bson.D{{Key: "from_city_id", Value: 1}, {Key: "to_city_id", Value: 1}},
						Options: options.Index().SetUnique(true),
					},
				})
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				return dropIndexes(ctx, db, CollectionCityDistances)
			},
		},
		{
			Version:     3,
			Description: "Create user and admin indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				if err := createIndexes(ctx, db, CollectionUsers, []mongo.IndexModel{
					{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
				}); err != nil {
					return err
				}
				return createIndexes(ctx, db, CollectionAdmins, []mongo.IndexModel{
					{Keys: bson.D{{Key: "login", Value: 1}}, Options: options.Index().SetUnique(true)},
				})
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				return dropIndexes(ctx, db, CollectionUsers, CollectionAdmins)
			},
		},
		{
			Version:     4,
			Description: "Create order indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				return createIndexes(ctx, db, CollectionOrders, []mongo.IndexModel{
					{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_date", Value: -1}}},
					{Keys: bson.D{{Key: "start_date", Value: -1}}},
					{Keys: bson.D{{Key: "eta_date", Value: 1}}},
					{Keys: bson.D{{Key: "transport_price", Value: -1}}},
					{Keys: bson.D{{Key: "payment_status", Value: 1}}},
					{Keys: bson.D{{Key: "from_city_id", Value: 1}, {Key: "to_city_id", Value: 1}}},
				})
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				return dropIndexes(ctx, db, CollectionOrders)
			},
		},
	}
}

func createIndexes(ctx context.Context, db *mongo.Database, collection string, indexes []mongo.IndexModel) error {
	if _, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", collection, err)
	}
	return nil
}

func dropIndexes(ctx context.Context, db *mongo.Database, collections ...string) error {
	for _, name := range collections {
		if _, err := db.Collection(name).Indexes().DropAll(ctx); err != nil {
			return fmt.Errorf("failed to drop %s indexes: %w", name, err)
		}
	}
	return nil
}
