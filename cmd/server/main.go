package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cybertrax/internal/config"
	handlers "cybertrax/internal/handlers/shared"
	"cybertrax/internal/services"
	"cybertrax/pkg/cache"
	"cybertrax/pkg/logger"
	"cybertrax/pkg/maps"
	"cybertrax/pkg/notify"
	"cybertrax/pkg/pricing"
	"cybertrax/pkg/websocket"
	"cybertrax/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     cfg.App.LogFormat,
		Output:     "stdout",
		TimeFormat: time.RFC3339,
		AppName:    cfg.App.Name,
		Version:    cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.Pinger{}

	// Redis is optional: without it distances are not cached and events stay
	// on this instance.
	var (
		redisCache   *cache.RedisCache
		cacheService services.CacheService
		broker       services.EventBroker
	)
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, running without cache")
		} else {
			defer redisCache.Close()
			cacheService = redisCache
			broker = redisCache
			checks["redis"] = redisCache
		}
	}

	store, err := openStorage(ctx, cfg.Database, cacheService, appLogger)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to open storage")
	}
	defer store.Close()
	if store.pinger != nil {
		checks["mongodb"] = store.pinger
	}

	providers, err := distanceProviders(cfg.Maps, appLogger)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to set up distance providers")
	}

	calculator := pricing.NewCalculator(pricing.Config{
		BandThresholdKm: cfg.Pricing.BandThresholdKm,
		InsuranceRate:   cfg.Pricing.InsuranceRate,
		KmPerDay:        cfg.Pricing.KmPerDay,
	})

	// Realtime delivery
	hub := websocket.NewHub(appLogger)
	go hub.Run(ctx)

	var notifier notify.Notifier
	if cfg.Notify.TelegramEnabled() {
		telegram, err := notify.NewTelegramNotifier(cfg.Notify.TelegramToken, cfg.Notify.TelegramAdminID)
		if err != nil {
			appLogger.WithError(err).Warn("Telegram notifier disabled")
		} else {
			notifier = telegram
		}
	}

	eventBus := services.NewOrderEventBus(hub, notifier, broker, cfg.Redis.EventChannel, appLogger)
	if redisCache != nil {
		go func() {
			if err := redisCache.Listen(ctx, cfg.Redis.EventChannel, eventBus.HandleMessage); err != nil {
				appLogger.WithError(err).Error("Order event subscription stopped")
			}
		}()
	}

	// Services
	authService := services.NewAuthService(store.admins, cfg.Security.JWTSecret, cfg.Security.JWTAccessTokenTTL, appLogger)
	cityService := services.NewCityService(store.cities, cacheService, appLogger)
	tariffService := services.NewTariffService(store.tariffs, appLogger)
	userService := services.NewUserService(store.users, appLogger)
	fixedRouteService := services.NewFixedRouteService(store.fixedRoutes, appLogger)
	cityDistanceService := services.NewCityDistanceService(store.distances, store.cities, cacheService, appLogger)
	distanceService := services.NewDistanceService(store.distances, providers, cacheService, cfg.Maps.CacheTTL, appLogger)
	pricingService := services.NewPricingService(store.cities, store.tariffs, store.fixedRoutes, distanceService, calculator, appLogger)
	orderService := services.NewOrderService(store.orders, store.users, store.cities, pricingService, eventBus, appLogger)
	exportService := services.NewExportService(orderService, appLogger)
	syncService := services.NewDistanceSyncService(store.cities, store.distances, distanceService, appLogger)

	if cfg.App.SeedOnStart {
		bootstrap := services.NewBootstrapService(
			store.cities, store.tariffs, store.fixedRoutes, authService,
			cfg.Security.AdminLogin, cfg.Security.AdminPassword, appLogger,
		)
		if err := bootstrap.Run(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to seed reference data")
		}
	}

	if err := syncService.Start(ctx, cfg.Scheduler.DistanceSyncSpec); err != nil {
		appLogger.WithError(err).Fatal("Failed to schedule distance sync")
	}

	router := routes.NewRouter(
		routes.RouterConfig{
			CORSAllowedOrigins: cfg.Security.CORSAllowedOrigins,
			TrustedProxies:     cfg.Security.TrustedProxies,
			WebSocketPath:      cfg.WebSocket.Path,
		},
		&routes.Handlers{
			City:         handlers.NewCityHandler(cityService, appLogger),
			Tariff:       handlers.NewTariffHandler(tariffService, appLogger),
			User:         handlers.NewUserHandler(userService, appLogger),
			Order:        handlers.NewOrderHandler(orderService, pricingService, exportService, appLogger),
			Auth:         handlers.NewAuthHandler(authService, appLogger),
			FixedRoute:   handlers.NewFixedRouteHandler(fixedRouteService, appLogger),
			CityDistance: handlers.NewCityDistanceHandler(cityDistanceService, syncService, appLogger),
			Health:       handlers.NewHealthHandler(checks),
			WebSocket: websocket.NewHandler(hub, websocket.Options{
				ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
				WriteBufferSize: cfg.WebSocket.WriteBufferSize,
				PingInterval:    cfg.WebSocket.PingInterval,
				PongTimeout:     cfg.WebSocket.PongTimeout,
				WriteTimeout:    cfg.WebSocket.WriteTimeout,
				MaxConnections:  cfg.WebSocket.MaxConnections,
				AllowedOrigins:  cfg.WebSocket.AllowedOrigins,
			}),
		},
		authService,
		appLogger,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.App.ReadTimeout,
	}

	go func() {
		appLogger.WithField("addr", server.Addr).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server shutdown failed")
	}
	syncService.Stop()
	eventBus.Wait()
}

func distanceProviders(cfg *config.MapsConfig, log *logger.Logger) ([]maps.DistanceProvider, error) {
	offline, err := maps.NewOfflineMatrixProvider()
	if err != nil {
		return nil, err
	}
	providers := []maps.DistanceProvider{offline}

	if cfg.Provider == "offline" {
		return providers, nil
	}

	if cfg.GoogleMaps.APIKey != "" {
		google, err := maps.NewGoogleMapsProvider(cfg.GoogleMaps.APIKey, cfg.GoogleMaps.Timeout)
		if err != nil {
			log.WithError(err).Warn("Google Maps provider disabled")
		} else {
			providers = append(providers, google)
		}
	}

	return append(providers, maps.NewHaversineProvider(cfg.RoadFactor)), nil
}
