package memory

import (
	"context"
	"sort"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
)

type cityRepository struct{ s *Store }

func NewCityRepository(s *Store) interfaces.CityRepository { return &cityRepository{s: s} }

func (r *cityRepository) Create(_ context.Context, city *models.City) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.cities {
		if c.Name == city.Name {
			return interfaces.ErrDuplicate
		}
	}

	now := r.s.now()
	city.ID = r.s.next("cities")
	city.CreatedAt = now
	city.UpdatedAt = now
	r.s.cities[city.ID] = clone(city)
	return nil
}

func (r *cityRepository) GetByID(_ context.Context, id int64) (*models.City, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.cities[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return clone(c), nil
}

func (r *cityRepository) GetByName(_ context.Context, name string) (*models.City, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.cities {
		if c.Name == name {
			return clone(c), nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *cityRepository) List(_ context.Context, activeOnly bool) ([]*models.City, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.City, 0, len(r.s.cities))
	for _, id := range sortedIDs(r.s.cities) {
		c := r.s.cities[id]
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, clone(c))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *cityRepository) Update(_ context.Context, city *models.City) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cities[city.ID]; !ok {
		return interfaces.ErrNotFound
	}
	for _, c := range r.s.cities {
		if c.ID != city.ID && c.Name == city.Name {
			return interfaces.ErrDuplicate
		}
	}

	city.UpdatedAt = r.s.now()
	r.s.cities[city.ID] = clone(city)
	return nil
}

func (r *cityRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cities[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.s.cities, id)
	return nil
}

type tariffRepository struct{ s *Store }

func NewTariffRepository(s *Store) interfaces.TariffRepository { return &tariffRepository{s: s} }

func (r *tariffRepository) Create(_ context.Context, tariff *models.Tariff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	tariff.ID = r.s.next("tariffs")
	tariff.CreatedAt = now
	tariff.UpdatedAt = now
	r.s.tariffs[tariff.ID] = clone(tariff)
	return nil
}

func (r *tariffRepository) GetByID(_ context.Context, id int64) (*models.Tariff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tariffs[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return clone(t), nil
}

func (r *tariffRepository) GetForMonth(_ context.Context, month int) (*models.Tariff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *models.Tariff
	for _, t := range r.s.tariffs {
		if t.Month == month && (found == nil || t.ID > found.ID) {
			found = t
		}
	}
	if found == nil {
		return nil, interfaces.ErrNotFound
	}
	return clone(found), nil
}

func (r *tariffRepository) List(_ context.Context) ([]*models.Tariff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Tariff, 0, len(r.s.tariffs))
	for _, id := range sortedIDs(r.s.tariffs) {
		out = append(out, clone(r.s.tariffs[id]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *tariffRepository) Update(_ context.Context, tariff *models.Tariff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tariffs[tariff.ID]; !ok {
		return interfaces.ErrNotFound
	}
	tariff.UpdatedAt = r.s.now()
	r.s.tariffs[tariff.ID] = clone(tariff)
	return nil
}

func (r *tariffRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tariffs[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.s.tariffs, id)
	return nil
}

type fixedRouteRepository struct{ s *Store }

func NewFixedRouteRepository(s *Store) interfaces.FixedRouteRepository {
	return &fixedRouteRepository{s: s}
}

func (r *fixedRouteRepository) Create(_ context.Context, route *models.FixedRoute) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	route.ID = r.s.next("fixed_routes")
	route.CreatedAt = r.s.now()
	r.s.fixedRoutes[route.ID] = clone(route)
	return nil
}

func (r *fixedRouteRepository) GetByID(_ context.Context, id int64) (*models.FixedRoute, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	route, ok := r.s.fixedRoutes[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return clone(route), nil
}

func (r *fixedRouteRepository) Find(_ context.Context, fromCity, toCity string) (*models.FixedRoute, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *models.FixedRoute
	for _, route := range r.s.fixedRoutes {
		if route.FromCity == fromCity && route.ToCity == toCity && (found == nil || route.ID > found.ID) {
			found = route
		}
	}
	if found == nil {
		return nil, interfaces.ErrNotFound
	}
	return clone(found), nil
}

func (r *fixedRouteRepository) List(_ context.Context) ([]*models.FixedRoute, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.FixedRoute, 0, len(r.s.fixedRoutes))
	for _, id := range sortedIDs(r.s.fixedRoutes) {
		out = append(out, clone(r.s.fixedRoutes[id]))
	}
	return out, nil
}

func (r *fixedRouteRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.fixedRoutes[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.s.fixedRoutes, id)
	return nil
}

type cityDistanceRepository struct{ s *Store }

func NewCityDistanceRepository(s *Store) interfaces.CityDistanceRepository {
	return &cityDistanceRepository{s: s}
}

func (r *cityDistanceRepository) Create(_ context.Context, d *models.CityDistance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.cityDistances {
		if existing.FromCityID == d.FromCityID && existing.ToCityID == d.ToCityID {
			return interfaces.ErrDuplicate
		}
	}

	now := r.s.now()
	d.ID = r.s.next("city_distances")
	d.CreatedAt = now
	d.UpdatedAt = now
	r.s.cityDistances[d.ID] = clone(d)
	return nil
}

func (r *cityDistanceRepository) GetByID(_ context.Context, id int64) (*models.CityDistance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.cityDistances[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return clone(d), nil
}

func (r *cityDistanceRepository) FindPair(_ context.Context, a, b int64) (*models.CityDistance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *models.CityDistance
	for _, id := range sortedIDs(r.s.cityDistances) {
		d := r.s.cityDistances[id]
		if !(d.FromCityID == a && d.ToCityID == b) && !(d.FromCityID == b && d.ToCityID == a) {
			continue
		}
		if found == nil || (d.IsManual && !found.IsManual) {
			found = d
		}
	}
	if found == nil {
		return nil, interfaces.ErrNotFound
	}
	return clone(found), nil
}

func (r *cityDistanceRepository) List(_ context.Context) ([]*models.CityDistance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.CityDistance, 0, len(r.s.cityDistances))
	for _, id := range sortedIDs(r.s.cityDistances) {
		out = append(out, clone(r.s.cityDistances[id]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FromCityID != out[j].FromCityID {
			return out[i].FromCityID < out[j].FromCityID
		}
		return out[i].ToCityID < out[j].ToCityID
	})
	return out, nil
}

func (r *cityDistanceRepository) Update(_ context.Context, d *models.CityDistance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cityDistances[d.ID]; !ok {
		return interfaces.ErrNotFound
	}
	d.UpdatedAt = r.s.now()
	r.s.cityDistances[d.ID] = clone(d)
	return nil
}

func (r *cityDistanceRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cityDistances[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.s.cityDistances, id)
	return nil
}
