package services

import (
	"context"
	"errors"
	"fmt"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/pkg/logger"
)

type FixedRouteService interface {
	ListFixedRoutes(ctx context.Context) ([]*models.FixedRoute, error)
	CreateFixedRoute(ctx context.Context, request *models.CreateFixedRouteRequest) (*models.FixedRoute, error)
	DeleteFixedRoute(ctx context.Context, id int64) error
}

type CityDistanceService interface {
	ListCityDistances(ctx context.Context) ([]*models.CityDistance, error)
	CreateCityDistance(ctx context.Context, request *models.CreateCityDistanceRequest) (*models.CityDistance, error)
	UpdateCityDistance(ctx context.Context, id int64, request *models.UpdateCityDistanceRequest) (*models.CityDistance, error)
	DeleteCityDistance(ctx context.Context, id int64) error
}

type fixedRouteService struct {
	routeRepo interfaces.FixedRouteRepository
	audit     *logger.AuditLogger
}

func NewFixedRouteService(routeRepo interfaces.FixedRouteRepository, log *logger.Logger) FixedRouteService {
	return &fixedRouteService{
		routeRepo: routeRepo,
		audit:     logger.NewAuditLogger(log),
	}
}

func (s *fixedRouteService) ListFixedRoutes(ctx context.Context) ([]*models.FixedRoute, error) {
	routes, err := s.routeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixed routes: %w", err)
	}
	return routes, nil
}

func (s *fixedRouteService) CreateFixedRoute(ctx context.Context, request *models.CreateFixedRouteRequest) (*models.FixedRoute, error) {
	route := &models.FixedRoute{
		FromCity:   request.FromCity,
		ToCity:     request.ToCity,
		FixedPrice: request.FixedPrice,
	}
	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to create fixed route: %w", err)
	}

	s.audit.LogAction(ctx, "create", "fixed_route", route.ID, logger.Fields{
		"from_city":   route.FromCity,
		"to_city":     route.ToCity,
		"fixed_price": route.FixedPrice,
	})
	return route, nil
}

func (s *fixedRouteService) DeleteFixedRoute(ctx context.Context, id int64) error {
	if err := s.routeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrFixedRouteNotFound
		}
		return fmt.Errorf("failed to delete fixed route: %w", err)
	}

	s.audit.LogAction(ctx, "delete", "fixed_route", id, nil)
	return nil
}

type cityDistanceService struct {
	distanceRepo interfaces.CityDistanceRepository
	cityRepo     interfaces.CityRepository
	cache        CacheService
	audit        *logger.AuditLogger
	logger       *logger.Logger
}

func NewCityDistanceService(
	distanceRepo interfaces.CityDistanceRepository,
	cityRepo interfaces.CityRepository,
	cache CacheService,
	log *logger.Logger,
) CityDistanceService {
	return &cityDistanceService{
		distanceRepo: distanceRepo,
		cityRepo:     cityRepo,
		cache:        cache,
		audit:        logger.NewAuditLogger(log),
		logger:       log,
	}
}

func (s *cityDistanceService) ListCityDistances(ctx context.Context) ([]*models.CityDistance, error) {
	distances, err := s.distanceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list city distances: %w", err)
	}
	return distances, nil
}

func (s *cityDistanceService) CreateCityDistance(ctx context.Context, request *models.CreateCityDistanceRequest) (*models.CityDistance, error) {
	if request.FromCityID == request.ToCityID {
		return nil, ErrSameCity
	}
	for _, id := range []int64{request.FromCityID, request.ToCityID} {
		if _, err := s.cityRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, ErrCityNotFound
			}
			return nil, fmt.Errorf("failed to get city: %w", err)
		}
	}

	_, err := s.distanceRepo.FindPair(ctx, request.FromCityID, request.ToCityID)
	if err == nil {
		return nil, ErrCityDistanceExists
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up city distance: %w", err)
	}

	distance := &models.CityDistance{
		FromCityID: request.FromCityID,
		ToCityID:   request.ToCityID,
		DistanceKm: request.DistanceKm,
		IsManual:   true,
	}
	if err := s.distanceRepo.Create(ctx, distance); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrCityDistanceExists
		}
		return nil, fmt.Errorf("failed to create city distance: %w", err)
	}

	s.forget(ctx, distance)
	s.audit.LogAction(ctx, "create", "city_distance", distance.ID, logger.Fields{"distance_km": distance.DistanceKm})
	return distance, nil
}

// UpdateCityDistance overrides the stored value, which also marks a
// synchronized entry as manual so the sync job leaves it alone.
func (s *cityDistanceService) UpdateCityDistance(ctx context.Context, id int64, request *models.UpdateCityDistanceRequest) (*models.CityDistance, error) {
	distance, err := s.distanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrCityDistanceNotFound
		}
		return nil, fmt.Errorf("failed to get city distance: %w", err)
	}

	if request.DistanceKm != nil {
		distance.DistanceKm = *request.DistanceKm
		distance.IsManual = true
	}

	if err := s.distanceRepo.Update(ctx, distance); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrCityDistanceNotFound
		}
		return nil, fmt.Errorf("failed to update city distance: %w", err)
	}

	s.forget(ctx, distance)
	s.audit.LogAction(ctx, "update", "city_distance", distance.ID, logger.Fields{"distance_km": distance.DistanceKm})
	return distance, nil
}

func (s *cityDistanceService) DeleteCityDistance(ctx context.Context, id int64) error {
	distance, err := s.distanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrCityDistanceNotFound
		}
		return fmt.Errorf("failed to get city distance: %w", err)
	}

	if err := s.distanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrCityDistanceNotFound
		}
		return fmt.Errorf("failed to delete city distance: %w", err)
	}

	s.forget(ctx, distance)
	s.audit.LogAction(ctx, "delete", "city_distance", id, nil)
	return nil
}

func (s *cityDistanceService) forget(ctx context.Context, d *models.CityDistance) {
	if s.cache == nil {
		return
	}
	keys := []string{
		distanceCacheKey(d.FromCityID, d.ToCityID),
		distanceCacheKey(d.ToCityID, d.FromCityID),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate distance cache")
	}
}
