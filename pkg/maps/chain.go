package maps

import (
	"context"
	"errors"
)

// ChainProvider asks each provider in order and returns the first answer.
// Provider errors other than ErrDistanceUnavailable are collected and
// returned only when no provider succeeds.
type ChainProvider struct {
	providers []DistanceProvider
}

func NewChainProvider(providers ...DistanceProvider) *ChainProvider {
	return &ChainProvider{providers: providers}
}

func (c *ChainProvider) Name() string {
	return "chain"
}

func (c *ChainProvider) DistanceKm(ctx context.Context, from, to Place) (int, error) {
	km, _, err := c.Resolve(ctx, from, to)
	return km, err
}

// Resolve is DistanceKm that also reports which provider answered.
func (c *ChainProvider) Resolve(ctx context.Context, from, to Place) (int, string, error) {
	var errs []error
	for _, p := range c.providers {
		km, err := p.DistanceKm(ctx, from, to)
		if err == nil {
			return km, p.Name(), nil
		}
		if !errors.Is(err, ErrDistanceUnavailable) {
			errs = append(errs, err)
		}
		if ctx.Err() != nil {
			return 0, "", ctx.Err()
		}
	}

	if len(errs) > 0 {
		return 0, "", errors.Join(append([]error{ErrDistanceUnavailable}, errs...)...)
	}
	return 0, "", ErrDistanceUnavailable
}
