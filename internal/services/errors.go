package services

import (
	"errors"

	"cybertrax/internal/utils"
	"cybertrax/pkg/pricing"
)

var (
	ErrCityNotFound         = errors.New(utils.ErrCityNotFound)
	ErrCityExists           = errors.New("City with this name already exists")
	ErrTariffNotFound       = errors.New(utils.ErrTariffNotFound)
	ErrUserNotFound         = errors.New(utils.ErrUserNotFound)
	ErrOrderNotFound        = errors.New(utils.ErrOrderNotFound)
	ErrFixedRouteNotFound   = errors.New(utils.ErrFixedRouteNotFound)
	ErrCityDistanceNotFound = errors.New(utils.ErrCityDistanceNotFound)
	ErrCityDistanceExists   = errors.New("Distance between these cities already exists")
	ErrSameCity             = errors.New("Departure and destination cities must differ")
	ErrDistanceNotFound     = errors.New("Distance for the selected route not found")
	ErrInvalidCredentials   = errors.New(utils.ErrInvalidCredentials)
	ErrInvalidPaymentStatus = errors.New("Invalid payment status")
	ErrSyncInProgress       = errors.New("Distance sync is already running")

	// ErrNoTariffForMonth is returned when neither a fixed route nor a tariff
	// for the start month can price an order.
	ErrNoTariffForMonth = pricing.ErrTariffNotFound
)
