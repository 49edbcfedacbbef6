package services

import (
	"context"
	"testing"
	"time"

	"cybertrax/internal/models"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPricingService(t *testing.T) {
	ctx := context.Background()

	Convey("Given seeded reference data", t, func() {
		env := newTestEnv()
		So(env.bootstrap.Run(ctx), ShouldBeNil)

		january := models.NewDate(2025, time.January, 10)

		Convey("a per-km route uses the lower band", func() {
			quote, err := env.pricing.Preview(ctx, &models.PreviewRequest{
				FromCity:  "Санкт-Петербург",
				ToCity:    "Москва",
				StartDate: january,
			})
			So(err, ShouldBeNil)
			So(quote.DistanceKm, ShouldEqual, 700)
			So(quote.IsFixedRoute, ShouldBeFalse)
			So(*quote.AppliedPricePerKm, ShouldEqual, 150)
			So(quote.TransportPrice, ShouldEqual, 105000)
			So(quote.InsurancePrice, ShouldEqual, 10500)
			So(quote.DurationHours, ShouldEqual, 17)
			So(quote.EtaDate, ShouldResemble, january)
		})

		Convey("a fixed route ignores the tariff", func() {
			quote, err := env.pricing.Preview(ctx, &models.PreviewRequest{
				FromCity:  "Москва",
				ToCity:    "Сочи",
				StartDate: january,
			})
			So(err, ShouldBeNil)
			So(quote.IsFixedRoute, ShouldBeTrue)
			So(quote.AppliedPricePerKm, ShouldBeNil)
			So(quote.TransportPrice, ShouldEqual, 200000)
			So(quote.InsurancePrice, ShouldEqual, 20000)
			So(quote.DurationHours, ShouldEqual, 39)
			So(quote.DurationDays, ShouldEqual, 1)
			So(quote.DurationHoursRemainder, ShouldEqual, 15)
			So(quote.EtaDate, ShouldResemble, january.AddDays(1))
		})

		Convey("fixed routes are directional", func() {
			quote, err := env.pricing.Preview(ctx, &models.PreviewRequest{
				FromCity:  "Москва",
				ToCity:    "Бишкек",
				StartDate: january,
			})
			So(err, ShouldBeNil)
			So(quote.IsFixedRoute, ShouldBeFalse)
			So(*quote.AppliedPricePerKm, ShouldEqual, 100)
			So(quote.TransportPrice, ShouldEqual, 370000)
		})

		Convey("cities can be given by id", func() {
			quote, err := env.pricing.Preview(ctx, &models.PreviewRequest{
				FromCityID: env.city("Санкт-Петербург").ID,
				ToCityID:   env.city("Москва").ID,
				StartDate:  january,
			})
			So(err, ShouldBeNil)
			So(quote.TransportPrice, ShouldEqual, 105000)

			_, err = env.pricing.Preview(ctx, &models.PreviewRequest{FromCityID: 999, ToCity: "Москва", StartDate: january})
			So(err, ShouldEqual, ErrCityNotFound)
		})

		Convey("a missing tariff fails unless a fixed route applies", func() {
			tariffs, _ := env.tariffs.List(ctx)
			for _, tariff := range tariffs {
				if tariff.Month == 1 {
					So(env.tariffs.Delete(ctx, tariff.ID), ShouldBeNil)
				}
			}

			_, err := env.pricing.Preview(ctx, &models.PreviewRequest{FromCity: "Санкт-Петербург", ToCity: "Москва", StartDate: january})
			So(err, ShouldEqual, ErrNoTariffForMonth)

			_, err = env.pricing.Preview(ctx, &models.PreviewRequest{FromCity: "Москва", ToCity: "Сочи", StartDate: january})
			So(err, ShouldBeNil)
		})

		Convey("the newest tariff of a month wins", func() {
			So(env.tariffs.Create(ctx, &models.Tariff{Month: 1, PricePerKmLe1000: 200, PricePerKmGt1000: 120}), ShouldBeNil)

			quote, err := env.pricing.Preview(ctx, &models.PreviewRequest{FromCity: "Санкт-Петербург", ToCity: "Москва", StartDate: january})
			So(err, ShouldBeNil)
			So(quote.TransportPrice, ShouldEqual, 140000)
		})

		Convey("a stored distance overrides the offline matrix", func() {
			So(env.distances.Create(ctx, &models.CityDistance{
				FromCityID: env.city("Москва").ID,
				ToCityID:   env.city("Санкт-Петербург").ID,
				DistanceKm: 650,
				IsManual:   true,
			}), ShouldBeNil)

			quote, err := env.pricing.Preview(ctx, &models.PreviewRequest{FromCity: "Санкт-Петербург", ToCity: "Москва", StartDate: january})
			So(err, ShouldBeNil)
			So(quote.DistanceKm, ShouldEqual, 650)
		})

		Convey("unknown routes and same-city routes are rejected", func() {
			_, err := env.pricing.Preview(ctx, &models.PreviewRequest{FromCity: "Атлантида", ToCity: "Москва", StartDate: january})
			So(err, ShouldEqual, ErrDistanceNotFound)

			_, err = env.pricing.Preview(ctx, &models.PreviewRequest{FromCity: "Москва", ToCity: "москва", StartDate: january})
			So(err, ShouldEqual, ErrSameCity)
		})
	})
}

func TestDistanceServiceCaching(t *testing.T) {
	ctx := context.Background()

	Convey("Given a remote provider behind the offline matrix", t, func() {
		remote := &stubProvider{name: "google", km: 180}
		env := newTestEnv(remote)

		lat1, lon1, lat2, lon2 := 56.8587, 35.9176, 55.7558, 37.6173
		tver := &models.City{Name: "Тверь", IsActive: true, Latitude: &lat1, Longitude: &lon1}
		moscow := &models.City{Name: "Москва", IsActive: true, Latitude: &lat2, Longitude: &lon2}
		So(env.cities.Create(ctx, tver), ShouldBeNil)
		So(env.cities.Create(ctx, moscow), ShouldBeNil)

		Convey("remote answers are cached by city ids", func() {
			km, source, err := env.distance.Resolve(ctx, tver, moscow)
			So(err, ShouldBeNil)
			So(km, ShouldEqual, 180)
			So(source, ShouldEqual, "google")
			So(env.cache.has(distanceCacheKey(tver.ID, moscow.ID)), ShouldBeTrue)

			km, source, err = env.distance.Resolve(ctx, tver, moscow)
			So(err, ShouldBeNil)
			So(km, ShouldEqual, 180)
			So(source, ShouldEqual, DistanceSourceCache)
			So(remote.calls, ShouldEqual, 1)
		})

		Convey("offline answers are not cached", func() {
			lat3, lon3 := 59.9343, 30.3351
			spb := &models.City{Name: "Санкт-Петербург", Latitude: &lat3, Longitude: &lon3}
			So(env.cities.Create(ctx, spb), ShouldBeNil)

			km, source, err := env.distance.Resolve(ctx, spb, moscow)
			So(err, ShouldBeNil)
			So(km, ShouldEqual, 700)
			So(source, ShouldEqual, "offline")
			So(env.cache.has(distanceCacheKey(spb.ID, moscow.ID)), ShouldBeFalse)
			So(remote.calls, ShouldEqual, 0)
		})
	})
}
