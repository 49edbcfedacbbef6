package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/pkg/logger"
	"cybertrax/pkg/maps"
)

const (
	DistanceSourceStored = "stored"
	DistanceSourceCache  = "cache"
)

type DistanceService interface {
	// GetDistanceKm returns the road distance between two cities in whole km.
	GetDistanceKm(ctx context.Context, from, to *models.City) (int, error)

	// Resolve is GetDistanceKm that also names the source of the answer.
	Resolve(ctx context.Context, from, to *models.City) (km int, source string, err error)

	// ResolveExternal skips the stored city distances and asks the providers.
	ResolveExternal(ctx context.Context, from, to *models.City) (km int, source string, err error)
}

type distanceService struct {
	distanceRepo interfaces.CityDistanceRepository
	providers    *maps.ChainProvider
	cache        CacheService
	cacheTTL     time.Duration
	logger       *logger.Logger
}

// NewDistanceService consults the stored city distances first and then each
// provider in order. Answers from providers other than the offline matrix are
// cached for cacheTTL.
func NewDistanceService(
	distanceRepo interfaces.CityDistanceRepository,
	providers []maps.DistanceProvider,
	cache CacheService,
	cacheTTL time.Duration,
	log *logger.Logger,
) DistanceService {
	return &distanceService{
		distanceRepo: distanceRepo,
		providers:    maps.NewChainProvider(providers...),
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       log,
	}
}

func (s *distanceService) GetDistanceKm(ctx context.Context, from, to *models.City) (int, error) {
	km, _, err := s.Resolve(ctx, from, to)
	return km, err
}

func (s *distanceService) Resolve(ctx context.Context, from, to *models.City) (int, string, error) {
	if sameCity(from, to) {
		return 0, "", ErrSameCity
	}

	if from.ID > 0 && to.ID > 0 {
		stored, err := s.distanceRepo.FindPair(ctx, from.ID, to.ID)
		if err == nil {
			return stored.DistanceKm, DistanceSourceStored, nil
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return 0, "", fmt.Errorf("failed to look up city distance: %w", err)
		}
	}

	return s.ResolveExternal(ctx, from, to)
}

func (s *distanceService) ResolveExternal(ctx context.Context, from, to *models.City) (int, string, error) {
	if sameCity(from, to) {
		return 0, "", ErrSameCity
	}

	key := cityPairCacheKey(from, to)
	if km, ok := s.cached(ctx, key); ok {
		return km, DistanceSourceCache, nil
	}

	km, source, err := s.providers.Resolve(ctx, toPlace(from), toPlace(to))
	if err != nil {
		if errors.Is(err, maps.ErrDistanceUnavailable) {
			s.logger.WithError(err).WithFields(logger.Fields{
				"from_city": from.Name,
				"to_city":   to.Name,
			}).Warn("No distance provider answered")
			return 0, "", ErrDistanceNotFound
		}
		return 0, "", fmt.Errorf("failed to resolve distance: %w", err)
	}

	if source != "offline" {
		s.store(ctx, key, km)
	}

	return km, source, nil
}

func (s *distanceService) cached(ctx context.Context, key string) (int, bool) {
	if s.cache == nil {
		return 0, false
	}

	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	var km int
	if err := s.cache.Get(ctx, key, &km); err != nil {
		if !isCacheMiss(err) {
			s.logger.WithError(err).Debug("Distance cache read failed")
		}
		return 0, false
	}
	return km, true
}

func (s *distanceService) store(ctx context.Context, key string, km int) {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	if err := s.cache.Set(ctx, key, km, s.cacheTTL); err != nil {
		s.logger.WithError(err).Debug("Distance cache write failed")
	}
}

func sameCity(from, to *models.City) bool {
	if from.ID > 0 && to.ID > 0 {
		return from.ID == to.ID
	}
	return strings.EqualFold(strings.TrimSpace(from.Name), strings.TrimSpace(to.Name))
}

func toPlace(c *models.City) maps.Place {
	place := maps.Place{Name: c.Name}
	if c.HasCoordinates() {
		place.Location = &maps.Location{Latitude: *c.Latitude, Longitude: *c.Longitude}
	}
	return place
}

func distanceCacheKey(fromID, toID int64) string {
	return fmt.Sprintf("%s%d:%d", distanceCachePrefix, fromID, toID)
}

// cityPairCacheKey falls back to names for cities that are not stored.
func cityPairCacheKey(from, to *models.City) string {
	if from.ID > 0 && to.ID > 0 {
		return distanceCacheKey(from.ID, to.ID)
	}
	return fmt.Sprintf("%sname:%s:%s", distanceCachePrefix,
		strings.ToLower(strings.TrimSpace(from.Name)),
		strings.ToLower(strings.TrimSpace(to.Name)))
}
