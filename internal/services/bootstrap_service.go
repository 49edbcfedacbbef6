package services

import (
	"context"
	"errors"
	"fmt"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/pkg/logger"
)

type seedCity struct {
	name     string
	lat, lon float64
}

var defaultCities = []seedCity{
	{"Москва", 55.7558, 37.6173},
	{"Сочи", 43.5855, 39.7231},
	{"Санкт-Петербург", 59.9343, 30.3351},
	{"Бишкек", 42.8746, 74.5698},
}

var defaultFixedRoutes = []models.FixedRoute{
	{FromCity: "Москва", ToCity: "Сочи", FixedPrice: 200000},
	{FromCity: "Сочи", ToCity: "Москва", FixedPrice: 200000},
	{FromCity: "Бишкек", ToCity: "Москва", FixedPrice: 350000},
}

const (
	defaultPricePerKmLe1000 = 150
	defaultPricePerKmGt1000 = 100
)

// BootstrapService fills an empty installation with reference data. Running
// it again only adds what is missing.
type BootstrapService struct {
	cityRepo   interfaces.CityRepository
	tariffRepo interfaces.TariffRepository
	routeRepo  interfaces.FixedRouteRepository
	auth       AuthService
	adminLogin string
	adminPass  string
	logger     *logger.Logger
}

func NewBootstrapService(
	cityRepo interfaces.CityRepository,
	tariffRepo interfaces.TariffRepository,
	routeRepo interfaces.FixedRouteRepository,
	auth AuthService,
	adminLogin, adminPassword string,
	log *logger.Logger,
) *BootstrapService {
	return &BootstrapService{
		cityRepo:   cityRepo,
		tariffRepo: tariffRepo,
		routeRepo:  routeRepo,
		auth:       auth,
		adminLogin: adminLogin,
		adminPass:  adminPassword,
		logger:     log,
	}
}

func (b *BootstrapService) Run(ctx context.Context) error {
	steps := []struct {
		name string
		run  func(context.Context) (int, error)
	}{
		{"cities", b.seedCities},
		{"fixed_routes", b.seedFixedRoutes},
		{"tariffs", b.seedTariffs},
		{"admins", b.seedAdmin},
	}

	for _, step := range steps {
		added, err := step.run(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
		if added > 0 {
			b.logger.WithFields(logger.Fields{"collection": step.name, "added": added}).Info("Seeded reference data")
		}
	}
	return nil
}

func (b *BootstrapService) seedCities(ctx context.Context) (int, error) {
	added := 0
	for _, sc := range defaultCities {
		_, err := b.cityRepo.GetByName(ctx, sc.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return added, err
		}

		lat, lon := sc.lat, sc.lon
		city := &models.City{Name: sc.name, IsActive: true, Latitude: &lat, Longitude: &lon}
		if err := b.cityRepo.Create(ctx, city); err != nil && !errors.Is(err, interfaces.ErrDuplicate) {
			return added, err
		}
		added++
	}
	return added, nil
}

func (b *BootstrapService) seedFixedRoutes(ctx context.Context) (int, error) {
	added := 0
	for _, fr := range defaultFixedRoutes {
		_, err := b.routeRepo.Find(ctx, fr.FromCity, fr.ToCity)
		if err == nil {
			continue
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return added, err
		}

		route := fr
		if err := b.routeRepo.Create(ctx, &route); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (b *BootstrapService) seedTariffs(ctx context.Context) (int, error) {
	added := 0
	for month := 1; month <= 12; month++ {
		_, err := b.tariffRepo.GetForMonth(ctx, month)
		if err == nil {
			continue
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return added, err
		}

		tariff := &models.Tariff{
			Month:            month,
			PricePerKmLe1000: defaultPricePerKmLe1000,
			PricePerKmGt1000: defaultPricePerKmGt1000,
		}
		if err := b.tariffRepo.Create(ctx, tariff); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (b *BootstrapService) seedAdmin(ctx context.Context) (int, error) {
	_, created, err := b.auth.EnsureAdmin(ctx, b.adminLogin, b.adminPass)
	if err != nil || !created {
		return 0, err
	}
	return 1, nil
}
