package services

import (
	"context"
	"sync"
	"time"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/internal/repositories/memory"
	"cybertrax/pkg/cache"
	"cybertrax/pkg/logger"
	"cybertrax/pkg/maps"
	"cybertrax/pkg/pricing"
)

type testEnv struct {
	cities    interfaces.CityRepository
	tariffs   interfaces.TariffRepository
	routes    interfaces.FixedRouteRepository
	distances interfaces.CityDistanceRepository
	users     interfaces.UserRepository
	admins    interfaces.AdminRepository
	orders    interfaces.OrderRepository

	cache     *fakeCache
	hub       *fakeHub
	notifier  *fakeNotifier
	bus       *OrderEventBus
	distance  DistanceService
	pricing   PricingService
	orderSvc  OrderService
	auth      AuthService
	bootstrap *BootstrapService
}

func newTestEnv(extra ...maps.DistanceProvider) *testEnv {
	store := memory.NewStore()
	log := logger.NewNop()

	env := &testEnv{
		cities:    memory.NewCityRepository(store),
		tariffs:   memory.NewTariffRepository(store),
		routes:    memory.NewFixedRouteRepository(store),
		distances: memory.NewCityDistanceRepository(store),
		users:     memory.NewUserRepository(store),
		admins:    memory.NewAdminRepository(store),
		orders:    memory.NewOrderRepository(store),
		cache:     newFakeCache(),
		hub:       &fakeHub{},
		notifier:  &fakeNotifier{},
	}

	offline, err := maps.NewOfflineMatrixProvider()
	if err != nil {
		panic(err)
	}
	providers := append([]maps.DistanceProvider{offline}, extra...)

	env.bus = NewOrderEventBus(env.hub, env.notifier, nil, "", log)
	env.distance = NewDistanceService(env.distances, providers, env.cache, time.Hour, log)
	env.pricing = NewPricingService(env.cities, env.tariffs, env.routes, env.distance, pricing.NewCalculator(pricing.DefaultConfig()), log)
	env.orderSvc = NewOrderService(env.orders, env.users, env.cities, env.pricing, env.bus, log)
	env.auth = NewAuthService(env.admins, "test-secret", time.Hour, log)
	env.bootstrap = NewBootstrapService(env.cities, env.tariffs, env.routes, env.auth, "admin", "admin", log)

	return env
}

func (e *testEnv) city(name string) *models.City {
	c, err := e.cities.GetByName(context.Background(), name)
	if err != nil {
		panic(err)
	}
	return c
}

func (e *testEnv) user(name, phone string) *models.User {
	u := &models.User{FullName: name, Phone: phone}
	if err := e.users.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]interface{})}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	if km, ok := dest.(*int); ok {
		*km = v.(int)
	}
	return nil
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) DeletePattern(_ context.Context, _ string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := int64(len(c.data))
	c.data = make(map[string]interface{})
	return n, nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type hubEvent struct {
	Type    string
	OrderID int64
	Data    map[string]interface{}
}

type fakeHub struct {
	mu     sync.Mutex
	events []hubEvent
}

func (h *fakeHub) PublishOrderEvent(eventType string, orderID int64, data map[string]interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, hubEvent{Type: eventType, OrderID: orderID, Data: data})
}

func (h *fakeHub) types() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

// stubProvider answers every pair with a fixed distance.
type stubProvider struct {
	name  string
	km    int
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) DistanceKm(context.Context, maps.Place, maps.Place) (int, error) {
	p.calls++
	return p.km, p.err
}

type fakeBroker struct {
	err      error
	messages []interface{}
}

func (b *fakeBroker) Publish(_ context.Context, _ string, message interface{}) error {
	if b.err != nil {
		return b.err
	}
	b.messages = append(b.messages, message)
	return nil
}
