package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/pkg/logger"

	"github.com/robfig/cron/v3"
)

type SyncResult struct {
	Checked int `json:"checked"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

// DistanceSyncService stores provider distances for city pairs that have
// no city_distances entry yet. Existing entries, manual or not, are kept.
type DistanceSyncService struct {
	cityRepo     interfaces.CityRepository
	distanceRepo interfaces.CityDistanceRepository
	distances    DistanceService
	logger       *logger.Logger

	running sync.Mutex
	cron    *cron.Cron
}

func NewDistanceSyncService(
	cityRepo interfaces.CityRepository,
	distanceRepo interfaces.CityDistanceRepository,
	distances DistanceService,
	log *logger.Logger,
) *DistanceSyncService {
	return &DistanceSyncService{
		cityRepo:     cityRepo,
		distanceRepo: distanceRepo,
		distances:    distances,
		logger:       log.WithField("job", "distance_sync"),
	}
}

// Sync walks every unordered pair of active cities once.
func (s *DistanceSyncService) Sync(ctx context.Context) (*SyncResult, error) {
	if !s.running.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.running.Unlock()

	cities, err := s.cityRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	result := &SyncResult{}
	for i := 0; i < len(cities); i++ {
		for j := i + 1; j < len(cities); j++ {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			result.Checked++

			created, err := s.syncPair(ctx, cities[i], cities[j])
			if err != nil {
				result.Failed++
				s.logger.WithError(err).WithFields(logger.Fields{
					"from_city": cities[i].Name,
					"to_city":   cities[j].Name,
				}).Debug("Distance not synchronized")
				continue
			}
			if created {
				result.Created++
			}
		}
	}

	s.logger.WithFields(logger.Fields{
		"checked": result.Checked,
		"created": result.Created,
		"failed":  result.Failed,
	}).Info("Distance sync finished")

	return result, nil
}

func (s *DistanceSyncService) syncPair(ctx context.Context, from, to *models.City) (bool, error) {
	_, err := s.distanceRepo.FindPair(ctx, from.ID, to.ID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return false, err
	}

	km, _, err := s.distances.ResolveExternal(ctx, from, to)
	if err != nil {
		return false, err
	}

	err = s.distanceRepo.Create(ctx, &models.CityDistance{
		FromCityID: from.ID,
		ToCityID:   to.ID,
		DistanceKm: km,
		IsManual:   false,
	})
	if errors.Is(err, interfaces.ErrDuplicate) {
		return false, nil
	}
	return err == nil, err
}

// Start schedules Sync on spec. An empty spec leaves the job disabled.
func (s *DistanceSyncService) Start(ctx context.Context, spec string) error {
	if spec == "" {
		s.logger.Info("Distance sync disabled")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if _, err := s.Sync(ctx); err != nil {
			s.logger.WithError(err).Warn("Distance sync failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid distance sync schedule %q: %w", spec, err)
	}

	c.Start()
	s.cron = c
	s.logger.WithField("spec", spec).Info("Distance sync scheduled")
	return nil
}

// Stop waits for a running sync to finish.
func (s *DistanceSyncService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
