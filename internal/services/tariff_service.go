package services

import (
	"context"
	"errors"
	"fmt"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/pkg/logger"
)

type TariffService interface {
	ListTariffs(ctx context.Context) ([]*models.Tariff, error)
	CreateTariff(ctx context.Context, request *models.CreateTariffRequest) (*models.Tariff, error)
	UpdateTariff(ctx context.Context, id int64, request *models.UpdateTariffRequest) (*models.Tariff, error)
	DeleteTariff(ctx context.Context, id int64) error
}

type tariffService struct {
	tariffRepo interfaces.TariffRepository
	audit      *logger.AuditLogger
}

func NewTariffService(tariffRepo interfaces.TariffRepository, log *logger.Logger) TariffService {
	return &tariffService{
		tariffRepo: tariffRepo,
		audit:      logger.NewAuditLogger(log),
	}
}

func (s *tariffService) ListTariffs(ctx context.Context) ([]*models.Tariff, error) {
	tariffs, err := s.tariffRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tariffs: %w", err)
	}
	return tariffs, nil
}

func (s *tariffService) CreateTariff(ctx context.Context, request *models.CreateTariffRequest) (*models.Tariff, error) {
	tariff := &models.Tariff{
		Month:            request.Month,
		PricePerKmLe1000: *request.PricePerKmLe1000,
		PricePerKmGt1000: *request.PricePerKmGt1000,
	}

	if err := s.tariffRepo.Create(ctx, tariff); err != nil {
		return nil, fmt.Errorf("failed to create tariff: %w", err)
	}

	s.audit.LogAction(ctx, "create", "tariff", tariff.ID, logger.Fields{"month": tariff.Month})
	return tariff, nil
}

func (s *tariffService) UpdateTariff(ctx context.Context, id int64, request *models.UpdateTariffRequest) (*models.Tariff, error) {
	tariff, err := s.tariffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrTariffNotFound
		}
		return nil, fmt.Errorf("failed to get tariff: %w", err)
	}

	if request.Month != nil {
		tariff.Month = *request.Month
	}
	if request.PricePerKmLe1000 != nil {
		tariff.PricePerKmLe1000 = *request.PricePerKmLe1000
	}
	if request.PricePerKmGt1000 != nil {
		tariff.PricePerKmGt1000 = *request.PricePerKmGt1000
	}

	if err := s.tariffRepo.Update(ctx, tariff); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrTariffNotFound
		}
		return nil, fmt.Errorf("failed to update tariff: %w", err)
	}

	s.audit.LogAction(ctx, "update", "tariff", tariff.ID, nil)
	return tariff, nil
}

func (s *tariffService) DeleteTariff(ctx context.Context, id int64) error {
	if err := s.tariffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrTariffNotFound
		}
		return fmt.Errorf("failed to delete tariff: %w", err)
	}

	s.audit.LogAction(ctx, "delete", "tariff", id, nil)
	return nil
}
