package services

import (
	"context"
	"errors"
	"fmt"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/pkg/logger"
	"cybertrax/pkg/pricing"
)

type PricingService interface {
	// Preview prices a route without storing anything. Cities may be given by
	// name or by id; names unknown to the catalog are still priced when a
	// distance provider knows them.
	Preview(ctx context.Context, request *models.PreviewRequest) (*models.Quote, error)

	// QuoteRoute prices a route between two resolved cities.
	QuoteRoute(ctx context.Context, start models.Date, from, to *models.City) (*models.Quote, error)
}

type pricingService struct {
	cityRepo   interfaces.CityRepository
	tariffRepo interfaces.TariffRepository
	routeRepo  interfaces.FixedRouteRepository
	distances  DistanceService
	calculator *pricing.Calculator
	logger     *logger.Logger
}

func NewPricingService(
	cityRepo interfaces.CityRepository,
	tariffRepo interfaces.TariffRepository,
	routeRepo interfaces.FixedRouteRepository,
	distances DistanceService,
	calculator *pricing.Calculator,
	log *logger.Logger,
) PricingService {
	return &pricingService{
		cityRepo:   cityRepo,
		tariffRepo: tariffRepo,
		routeRepo:  routeRepo,
		distances:  distances,
		calculator: calculator,
		logger:     log,
	}
}

func (s *pricingService) Preview(ctx context.Context, request *models.PreviewRequest) (*models.Quote, error) {
	from, err := s.resolveCity(ctx, request.FromCityID, request.FromCity)
	if err != nil {
		return nil, err
	}
	to, err := s.resolveCity(ctx, request.ToCityID, request.ToCity)
	if err != nil {
		return nil, err
	}

	return s.QuoteRoute(ctx, request.StartDate, from, to)
}

func (s *pricingService) QuoteRoute(ctx context.Context, start models.Date, from, to *models.City) (*models.Quote, error) {
	distanceKm, source, err := s.distances.Resolve(ctx, from, to)
	if err != nil {
		return nil, err
	}

	fixed, err := s.routeRepo.Find(ctx, from.Name, to.Name)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up fixed route: %w", err)
		}
		fixed = nil
	}

	var tariff *models.Tariff
	if fixed == nil {
		tariff, err = s.tariffRepo.GetForMonth(ctx, int(start.Month()))
		if err != nil {
			if !errors.Is(err, interfaces.ErrNotFound) {
				return nil, fmt.Errorf("failed to get tariff: %w", err)
			}
			tariff = nil
		}
	}

	quote, err := s.calculator.Quote(start, distanceKm, tariff, fixed)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logger.Fields{
		"from_city":       from.Name,
		"to_city":         to.Name,
		"distance_km":     distanceKm,
		"distance_source": source,
		"is_fixed_route":  quote.IsFixedRoute,
		"transport_price": quote.TransportPrice,
	}).Debug("Route priced")

	return quote, nil
}

// resolveCity prefers the id. A name missing from the catalog yields an
// unsaved city carrying only the name.
func (s *pricingService) resolveCity(ctx context.Context, id int64, name string) (*models.City, error) {
	if id > 0 {
		city, err := s.cityRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, ErrCityNotFound
			}
			return nil, fmt.Errorf("failed to get city: %w", err)
		}
		return city, nil
	}

	city, err := s.cityRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return &models.City{Name: name}, nil
		}
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	return city, nil
}
