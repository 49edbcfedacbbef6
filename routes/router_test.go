package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	handlers "cybertrax/internal/handlers/shared"
	"cybertrax/internal/repositories/memory"
	"cybertrax/internal/services"
	"cybertrax/pkg/logger"
	"cybertrax/pkg/maps"
	"cybertrax/pkg/pricing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	log := logger.NewNop()

	cities := memory.NewCityRepository(store)
	tariffs := memory.NewTariffRepository(store)
	fixedRoutes := memory.NewFixedRouteRepository(store)
	distances := memory.NewCityDistanceRepository(store)
	users := memory.NewUserRepository(store)
	admins := memory.NewAdminRepository(store)
	orders := memory.NewOrderRepository(store)

	offline, err := maps.NewOfflineMatrixProvider()
	if err != nil {
		panic(err)
	}

	authService := services.NewAuthService(admins, "test-secret", time.Hour, log)
	distanceService := services.NewDistanceService(distances, []maps.DistanceProvider{offline}, nil, time.Hour, log)
	pricingService := services.NewPricingService(cities, tariffs, fixedRoutes, distanceService, pricing.NewCalculator(pricing.DefaultConfig()), log)
	eventBus := services.NewOrderEventBus(nil, nil, nil, "", log)
	orderService := services.NewOrderService(orders, users, cities, pricingService, eventBus, log)
	syncService := services.NewDistanceSyncService(cities, distances, distanceService, log)

	bootstrap := services.NewBootstrapService(cities, tariffs, fixedRoutes, authService, "admin", "secret", log)
	if err := bootstrap.Run(context.Background()); err != nil {
		panic(err)
	}

	return NewRouter(RouterConfig{CORSAllowedOrigins: []string{"*"}}, &Handlers{
		City:         handlers.NewCityHandler(services.NewCityService(cities, nil, log), log),
		Tariff:       handlers.NewTariffHandler(services.NewTariffService(tariffs, log), log),
		User:         handlers.NewUserHandler(services.NewUserService(users, log), log),
		Order:        handlers.NewOrderHandler(orderService, pricingService, services.NewExportService(orderService, log), log),
		Auth:         handlers.NewAuthHandler(authService, log),
		FixedRoute:   handlers.NewFixedRouteHandler(services.NewFixedRouteService(fixedRoutes, log), log),
		CityDistance: handlers.NewCityDistanceHandler(services.NewCityDistanceService(distances, cities, nil, log), syncService, log),
		Health:       handlers.NewHealthHandler(nil),
	}, authService, log)
}

type client struct {
	router *gin.Engine
	token  string
}

func (c *client) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

func (c *client) cityID(name string) int64 {
	var cities []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	w := c.do(http.MethodGet, "/api/v1/cities", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &cities)
	for _, city := range cities {
		if city.Name == name {
			return city.ID
		}
	}
	return 0
}

func TestRouter(t *testing.T) {
	Convey("Given a seeded API", t, func() {
		public := &client{router: newTestRouter()}

		login := public.do(http.MethodPost, "/api/v1/auth/admin/login", map[string]string{"login": "admin", "password": "secret"})
		So(login.Code, ShouldEqual, http.StatusOK)
		admin := &client{router: public.router, token: decode(login)["token"].(string)}

		moscow := public.cityID("Москва")
		spb := public.cityID("Санкт-Петербург")
		sochi := public.cityID("Сочи")
		So(moscow, ShouldBeGreaterThan, 0)

		Convey("a wrong password is rejected", func() {
			w := public.do(http.MethodPost, "/api/v1/auth/admin/login", map[string]string{"login": "admin", "password": "nope"})
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("preview prices a tariff route", func() {
			w := public.do(http.MethodPost, "/api/v1/orders/preview", map[string]interface{}{
				"from_city_id": moscow,
				"to_city_id":   spb,
				"start_date":   "2026-03-10",
			})
			So(w.Code, ShouldEqual, http.StatusOK)

			quote := decode(w)
			So(quote["distance_km"], ShouldEqual, float64(700))
			So(quote["is_fixed_route"], ShouldBeFalse)
			So(quote["applied_price_per_km"], ShouldEqual, float64(150))
			So(quote["transport_price"], ShouldEqual, float64(105000))
			So(quote["insurance_price"], ShouldEqual, float64(10500))
			So(quote["duration_hours"], ShouldEqual, float64(17))
			So(quote["eta_date"], ShouldEqual, "2026-03-10")
		})

		Convey("preview prefers a fixed route", func() {
			w := public.do(http.MethodPost, "/api/v1/orders/preview", map[string]interface{}{
				"from_city_id": moscow,
				"to_city_id":   sochi,
				"start_date":   "2026-03-10",
			})
			So(w.Code, ShouldEqual, http.StatusOK)

			quote := decode(w)
			So(quote["is_fixed_route"], ShouldBeTrue)
			So(quote["applied_price_per_km"], ShouldBeNil)
			So(quote["transport_price"], ShouldEqual, float64(200000))
			So(quote["insurance_price"], ShouldEqual, float64(20000))
		})

		Convey("an order goes through its lifecycle", func() {
			w := public.do(http.MethodPost, "/api/v1/users", map[string]string{"full_name": "Иван Петров", "phone": "+79001234567"})
			So(w.Code, ShouldEqual, http.StatusCreated)
			userID := int64(decode(w)["id"].(float64))

			again := public.do(http.MethodPost, "/api/v1/users", map[string]string{"full_name": "Иван Петров", "phone": "+79001234567"})
			So(again.Code, ShouldEqual, http.StatusOK)

			w = public.do(http.MethodPost, "/api/v1/orders", map[string]interface{}{
				"user_id":         userID,
				"car_brand_model": "Toyota Camry",
				"from_city_id":    moscow,
				"to_city_id":      spb,
				"start_date":      "2026-03-10",
			})
			So(w.Code, ShouldEqual, http.StatusCreated)
			order := decode(w)
			So(order["payment_status"], ShouldEqual, "PENDING")
			So(order["transport_price"], ShouldEqual, float64(105000))
			path := "/api/v1/orders/" + jsonNumber(order["id"])

			Convey("anyone can fetch and pay it", func() {
				So(public.do(http.MethodGet, path, nil).Code, ShouldEqual, http.StatusOK)

				paid := public.do(http.MethodPost, path+"/pay", nil)
				So(paid.Code, ShouldEqual, http.StatusOK)
				So(decode(paid)["payment_status"], ShouldEqual, "PAID")
				So(decode(paid)["paid_at"], ShouldNotBeNil)

				Convey("and paying twice changes nothing", func() {
					again := public.do(http.MethodPost, path+"/pay", nil)
					So(again.Code, ShouldEqual, http.StatusOK)
					So(decode(again)["paid_at"], ShouldEqual, decode(paid)["paid_at"])
				})
			})

			Convey("only an admin may change its status", func() {
				So(public.do(http.MethodPatch, path+"/payment-status?new_status=MANUAL", nil).Code, ShouldEqual, http.StatusUnauthorized)

				w := admin.do(http.MethodPatch, path+"/payment-status?new_status=MANUAL", nil)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decode(w)["payment_status"], ShouldEqual, "MANUAL")

				bad := admin.do(http.MethodPatch, path+"/payment-status", map[string]string{"payment_status": "LOST"})
				So(bad.Code, ShouldEqual, http.StatusBadRequest)
			})

			Convey("it shows up in the filtered list", func() {
				w := public.do(http.MethodGet, "/api/v1/orders?user_id="+jsonNumber(order["user_id"]), nil)
				So(w.Code, ShouldEqual, http.StatusOK)
				page := decode(w)
				So(page["total"], ShouldEqual, float64(1))
				So(page["items"], ShouldHaveLength, 1)
			})

			Convey("only an admin may export", func() {
				So(public.do(http.MethodGet, "/api/v1/orders/export", nil).Code, ShouldEqual, http.StatusUnauthorized)

				w := admin.do(http.MethodGet, "/api/v1/orders/export", nil)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/vnd.openxmlformats")
				So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, ".xlsx")
				So(w.Body.Len(), ShouldBeGreaterThan, 0)
			})

			Convey("only an admin may delete it", func() {
				So(public.do(http.MethodDelete, path, nil).Code, ShouldEqual, http.StatusUnauthorized)
				So(admin.do(http.MethodDelete, path, nil).Code, ShouldEqual, http.StatusNoContent)
				So(public.do(http.MethodGet, path, nil).Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("an order for an unknown user is not found", func() {
			w := public.do(http.MethodPost, "/api/v1/orders", map[string]interface{}{
				"user_id":         999,
				"car_brand_model": "Lada",
				"from_city_id":    moscow,
				"to_city_id":      spb,
				"start_date":      "2026-03-10",
			})
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("catalog writes need an admin", func() {
			body := map[string]interface{}{"name": "Казань"}
			So(public.do(http.MethodPost, "/api/v1/cities", body).Code, ShouldEqual, http.StatusUnauthorized)

			w := admin.do(http.MethodPost, "/api/v1/cities", body)
			So(w.Code, ShouldEqual, http.StatusCreated)
			So(admin.do(http.MethodPost, "/api/v1/cities", body).Code, ShouldEqual, http.StatusConflict)
		})

		Convey("a manual distance cannot duplicate a pair", func() {
			body := map[string]interface{}{"from_city_id": spb, "to_city_id": moscow, "distance_km": 710}
			So(admin.do(http.MethodPost, "/api/v1/city-distances", body).Code, ShouldEqual, http.StatusCreated)
			So(admin.do(http.MethodPost, "/api/v1/city-distances", map[string]interface{}{
				"from_city_id": moscow, "to_city_id": spb, "distance_km": 720,
			}).Code, ShouldEqual, http.StatusBadRequest)

			Convey("and it overrides the offline matrix", func() {
				w := public.do(http.MethodPost, "/api/v1/orders/preview", map[string]interface{}{
					"from_city_id": moscow,
					"to_city_id":   spb,
					"start_date":   "2026-03-10",
				})
				So(decode(w)["distance_km"], ShouldEqual, float64(710))
			})
		})

		Convey("a sync fills in the missing pairs", func() {
			w := admin.do(http.MethodPost, "/api/v1/city-distances/sync", nil)
			So(w.Code, ShouldEqual, http.StatusOK)

			list := admin.do(http.MethodGet, "/api/v1/city-distances", nil)
			So(strings.Count(list.Body.String(), `"distance_km"`), ShouldEqual, 6)
		})

		Convey("out of range paging is a bad request", func() {
			So(public.do(http.MethodGet, "/api/v1/orders?page=0", nil).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("unknown paths answer with a JSON 404", func() {
			w := public.do(http.MethodGet, "/api/v1/nowhere", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode(w)["error"], ShouldNotBeEmpty)
		})

		Convey("the health check passes with no dependencies", func() {
			So(public.do(http.MethodGet, "/health", nil).Code, ShouldEqual, http.StatusOK)
		})
	})
}

func jsonNumber(v interface{}) string {
	data, _ := json.Marshal(v)
	return string(data)
}
