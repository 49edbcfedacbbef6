// Package memory implements the repository interfaces on top of in-process
// maps. It backs the "memory" storage driver and the service tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"cybertrax/internal/models"
)

// Store holds every collection behind one lock, mirroring a single database.
type Store struct {
	mu sync.RWMutex

	seq map[string]int64

	cities        map[int64]*models.City
	tariffs       map[int64]*models.Tariff
	fixedRoutes   map[int64]*models.FixedRoute
	cityDistances map[int64]*models.CityDistance
	users         map[int64]*models.User
	admins        map[int64]*models.Admin
	orders        map[int64]*models.Order

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		seq:           make(map[string]int64),
		cities:        make(map[int64]*models.City),
		tariffs:       make(map[int64]*models.Tariff),
		fixedRoutes:   make(map[int64]*models.FixedRoute),
		cityDistances: make(map[int64]*models.CityDistance),
		users:         make(map[int64]*models.User),
		admins:        make(map[int64]*models.Admin),
		orders:        make(map[int64]*models.Order),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// next must be called with the write lock held.
func (s *Store) next(name string) int64 {
	s.seq[name]++
	return s.seq[name]
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}
