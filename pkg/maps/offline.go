package maps

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed offline_matrix.json
var defaultMatrix []byte

// OfflineMatrixProvider answers from a static road-distance table keyed by
// city name. Lookups are symmetric.
type OfflineMatrixProvider struct {
	matrix map[string]map[string]int
}

func NewOfflineMatrixProvider() (*OfflineMatrixProvider, error) {
	return NewOfflineMatrixProviderFromJSON(defaultMatrix)
}

func NewOfflineMatrixProviderFromJSON(data []byte) (*OfflineMatrixProvider, error) {
	var matrix map[string]map[string]int
	if err := json.Unmarshal(data, &matrix); err != nil {
		return nil, fmt.Errorf("failed to parse distance matrix: %w", err)
	}

	normalized := make(map[string]map[string]int, len(matrix))
	for from, row := range matrix {
		key := normalizeName(from)
		if normalized[key] == nil {
			normalized[key] = make(map[string]int, len(row))
		}
		for to, km := range row {
			normalized[key][normalizeName(to)] = km
		}
	}

	return &OfflineMatrixProvider{matrix: normalized}, nil
}

func (p *OfflineMatrixProvider) Name() string {
	return "offline"
}

func (p *OfflineMatrixProvider) DistanceKm(_ context.Context, from, to Place) (int, error) {
	a, b := normalizeName(from.Name), normalizeName(to.Name)

	if row, ok := p.matrix[a]; ok {
		if km, ok := row[b]; ok {
			return km, nil
		}
	}
	if row, ok := p.matrix[b]; ok {
		if km, ok := row[a]; ok {
			return km, nil
		}
	}

	return 0, ErrDistanceUnavailable
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
