package services

import (
	"context"
	"errors"
	"fmt"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/pkg/logger"
)

type CityService interface {
	ListCities(ctx context.Context, activeOnly bool) ([]*models.City, error)
	GetCity(ctx context.Context, id int64) (*models.City, error)
	CreateCity(ctx context.Context, request *models.CreateCityRequest) (*models.City, error)
	UpdateCity(ctx context.Context, id int64, request *models.UpdateCityRequest) (*models.City, error)
	DeleteCity(ctx context.Context, id int64) error
}

type cityService struct {
	cityRepo interfaces.CityRepository
	cache    CacheService
	audit    *logger.AuditLogger
	logger   *logger.Logger
}

func NewCityService(cityRepo interfaces.CityRepository, cache CacheService, log *logger.Logger) CityService {
	return &cityService{
		cityRepo: cityRepo,
		cache:    cache,
		audit:    logger.NewAuditLogger(log),
		logger:   log,
	}
}

func (s *cityService) ListCities(ctx context.Context, activeOnly bool) ([]*models.City, error) {
	cities, err := s.cityRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

func (s *cityService) GetCity(ctx context.Context, id int64) (*models.City, error) {
	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	return city, nil
}

func (s *cityService) CreateCity(ctx context.Context, request *models.CreateCityRequest) (*models.City, error) {
	city := &models.City{
		Name:      request.Name,
		IsActive:  true,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
	}
	if request.IsActive != nil {
		city.IsActive = *request.IsActive
	}

	if err := s.cityRepo.Create(ctx, city); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrCityExists
		}
		return nil, fmt.Errorf("failed to create city: %w", err)
	}

	s.audit.LogAction(ctx, "create", "city", city.ID, logger.Fields{"name": city.Name})
	return city, nil
}

func (s *cityService) UpdateCity(ctx context.Context, id int64, request *models.UpdateCityRequest) (*models.City, error) {
	city, err := s.GetCity(ctx, id)
	if err != nil {
		return nil, err
	}

	moved := false
	if request.Name != nil {
		city.Name = *request.Name
	}
	if request.IsActive != nil {
		city.IsActive = *request.IsActive
	}
	if request.Latitude != nil {
		city.Latitude = request.Latitude
		moved = true
	}
	if request.Longitude != nil {
		city.Longitude = request.Longitude
		moved = true
	}

	if err := s.cityRepo.Update(ctx, city); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrCityExists
		}
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("failed to update city: %w", err)
	}

	if moved || request.Name != nil {
		s.invalidateDistances(ctx, id)
	}

	s.audit.LogAction(ctx, "update", "city", city.ID, nil)
	return city, nil
}

func (s *cityService) DeleteCity(ctx context.Context, id int64) error {
	if err := s.cityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrCityNotFound
		}
		return fmt.Errorf("failed to delete city: %w", err)
	}

	s.invalidateDistances(ctx, id)
	s.audit.LogAction(ctx, "delete", "city", id, nil)
	return nil
}

// invalidateDistances drops cached provider answers involving the city.
func (s *cityService) invalidateDistances(ctx context.Context, cityID int64) {
	if s.cache == nil {
		return
	}
	for _, pattern := range []string{
		fmt.Sprintf("%s%d:*", distanceCachePrefix, cityID),
		fmt.Sprintf("%s*:%d", distanceCachePrefix, cityID),
	} {
		if _, err := s.cache.DeletePattern(ctx, pattern); err != nil {
			s.logger.WithError(err).WithField("pattern", pattern).Warn("Failed to invalidate distance cache")
		}
	}
}
