package pricing

import (
	"errors"
	"math"

	"cybertrax/internal/models"
)

var ErrTariffNotFound = errors.New("Tariff for the selected month not found")

type Config struct {
	BandThresholdKm int
	InsuranceRate   float64
	KmPerDay        int
}

func DefaultConfig() Config {
	return Config{
		BandThresholdKm: 1000,
		InsuranceRate:   0.10,
		KmPerDay:        1000,
	}
}

// Calculator prices a transport order from its distance and the applicable
// tariff or fixed route. It holds no state besides its configuration.
type Calculator struct {
	config Config
}

func NewCalculator(config Config) *Calculator {
	defaults := DefaultConfig()
	if config.BandThresholdKm <= 0 {
		config.BandThresholdKm = defaults.BandThresholdKm
	}
	if config.InsuranceRate < 0 {
		config.InsuranceRate = defaults.InsuranceRate
	}
	if config.KmPerDay <= 0 {
		config.KmPerDay = defaults.KmPerDay
	}
	return &Calculator{config: config}
}

// Quote computes the price and ETA. A non-nil fixed route takes precedence
// and makes the tariff irrelevant; otherwise tariff must be non-nil.
func (c *Calculator) Quote(start models.Date, distanceKm int, tariff *models.Tariff, fixed *models.FixedRoute) (*models.Quote, error) {
	quote := &models.Quote{DistanceKm: distanceKm}

	if fixed != nil {
		quote.IsFixedRoute = true
		quote.TransportPrice = fixed.FixedPrice
	} else {
		if tariff == nil {
			return nil, ErrTariffNotFound
		}
		applied := c.PricePerKm(tariff, distanceKm)
		quote.AppliedPricePerKm = &applied
		quote.TransportPrice = applied * int64(distanceKm)
	}

	quote.InsurancePrice = c.Insurance(quote.TransportPrice)
	quote.DurationHours = c.DurationHours(distanceKm)
	quote.DurationDays = quote.DurationHours / 24
	quote.DurationHoursRemainder = quote.DurationHours % 24
	quote.EtaDate = start.AddDays(quote.DurationDays)

	return quote, nil
}

// PricePerKm selects the tariff band for the distance. The threshold itself
// belongs to the lower band.
func (c *Calculator) PricePerKm(tariff *models.Tariff, distanceKm int) int64 {
	if distanceKm <= c.config.BandThresholdKm {
		return tariff.PricePerKmLe1000
	}
	return tariff.PricePerKmGt1000
}

func (c *Calculator) Insurance(transportPrice int64) int64 {
	return int64(math.RoundToEven(float64(transportPrice) * c.config.InsuranceRate))
}

// DurationHours converts distance to whole driving hours, rounding half to even.
func (c *Calculator) DurationHours(distanceKm int) int {
	hours := float64(distanceKm) * 24 / float64(c.config.KmPerDay)
	return int(math.RoundToEven(hours))
}

// SelectTariff returns the tariff for the given month. When several exist the
// one with the highest id wins.
func SelectTariff(tariffs []*models.Tariff, month int) *models.Tariff {
	var selected *models.Tariff
	for _, t := range tariffs {
		if t.Month != month {
			continue
		}
		if selected == nil || t.ID > selected.ID {
			selected = t
		}
	}
	return selected
}
