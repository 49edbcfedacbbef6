package main

import (
	"context"
	"fmt"

	"cybertrax/internal/config"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/internal/repositories/memory"
	"cybertrax/internal/repositories/mongodb"
	"cybertrax/internal/services"
	"cybertrax/pkg/database"
	"cybertrax/pkg/logger"
)

type storage struct {
	cities      interfaces.CityRepository
	tariffs     interfaces.TariffRepository
	fixedRoutes interfaces.FixedRouteRepository
	distances   interfaces.CityDistanceRepository
	users       interfaces.UserRepository
	admins      interfaces.AdminRepository
	orders      interfaces.OrderRepository

	pinger interface {
		Ping(ctx context.Context) error
	}
	close func() error
}

func (s *storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func openStorage(ctx context.Context, cfg *config.DatabaseConfig, cache services.CacheService, log *logger.Logger) (*storage, error) {
	switch cfg.Driver {
	case "memory":
		log.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &storage{
			cities:      memory.NewCityRepository(store),
			tariffs:     memory.NewTariffRepository(store),
			fixedRoutes: memory.NewFixedRouteRepository(store),
			distances:   memory.NewCityDistanceRepository(store),
			users:       memory.NewUserRepository(store),
			admins:      memory.NewAdminRepository(store),
			orders:      memory.NewOrderRepository(store),
		}, nil
	case "", "mongodb":
		return openMongo(ctx, cfg, cache, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func openMongo(ctx context.Context, cfg *config.DatabaseConfig, cache services.CacheService, log *logger.Logger) (*storage, error) {
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.URI,
		Database:       cfg.Database,
		MaxPoolSize:    cfg.MaxPoolSize,
		MinPoolSize:    cfg.MinPoolSize,
		ConnectTimeout: cfg.ConnectTimeout,
		SocketTimeout:  cfg.SocketTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := database.NewMigrator(db.Database, log).Up(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var repoCache mongodb.CacheService
	if cache != nil {
		repoCache = cache
	}

	sequence := database.NewSequence(db.Database)
	return &storage{
		cities:      mongodb.NewCityRepository(db.Database, sequence, repoCache),
		tariffs:     mongodb.NewTariffRepository(db.Database, sequence, repoCache),
		fixedRoutes: mongodb.NewFixedRouteRepository(db.Database, sequence),
		distances:   mongodb.NewCityDistanceRepository(db.Database, sequence),
		users:       mongodb.NewUserRepository(db.Database, sequence, repoCache),
		admins:      mongodb.NewAdminRepository(db.Database, sequence),
		orders:      mongodb.NewOrderRepository(db.Database, sequence),
		pinger:      db,
		close:       db.Close,
	}, nil
}
