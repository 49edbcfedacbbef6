package validators

import (
	"testing"
	"time"

	"cybertrax/internal/models"

	. "github.com/smartystreets/goconvey/convey"
)

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }

func TestCatalogValidators(t *testing.T) {
	Convey("Users", t, func() {
		Convey("a valid phone is normalized", func() {
			req := &models.CreateUserRequest{FullName: "  Иван  ", Phone: "+7 (999) 123-45-67"}
			So(ValidateCreateUser(req), ShouldBeEmpty)
			So(req.Phone, ShouldEqual, "+79991234567")
			So(req.FullName, ShouldEqual, "Иван")
		})

		Convey("short phones are rejected with the json field name", func() {
			errs := ValidateCreateUser(&models.CreateUserRequest{FullName: "Иван", Phone: "123"})
			So(errs, ShouldHaveLength, 1)
			So(errs[0].Field, ShouldEqual, "phone")
			So(errs.ToMap()["phone"], ShouldEqual, "Invalid phone number format")
		})
	})

	Convey("Tariffs", t, func() {
		So(ValidateCreateTariff(&models.CreateTariffRequest{
			Month: 1, PricePerKmLe1000: int64Ptr(150), PricePerKmGt1000: int64Ptr(100),
		}), ShouldBeEmpty)

		errs := ValidateCreateTariff(&models.CreateTariffRequest{
			Month: 13, PricePerKmLe1000: int64Ptr(-1), PricePerKmGt1000: int64Ptr(100),
		})
		So(errs.ToMap(), ShouldContainKey, "month")
		So(errs.ToMap(), ShouldContainKey, "price_per_km_le_1000")

		month := 0
		So(ValidateUpdateTariff(&models.UpdateTariffRequest{Month: &month}).ToMap(), ShouldContainKey, "month")
	})

	Convey("Cities", t, func() {
		So(ValidateCreateCity(&models.CreateCityRequest{
			Name: "Казань", Latitude: float64Ptr(55.79), Longitude: float64Ptr(49.12),
		}), ShouldBeEmpty)

		errs := ValidateCreateCity(&models.CreateCityRequest{Name: "X", Latitude: float64Ptr(91), Longitude: float64Ptr(0)})
		So(errs.ToMap(), ShouldContainKey, "latitude")

		errs = ValidateCreateCity(&models.CreateCityRequest{Name: "X", Latitude: float64Ptr(10)})
		So(errs.ToMap(), ShouldContainKey, "latitude")

		So(ValidateCreateCity(&models.CreateCityRequest{Name: "   "}).ToMap(), ShouldContainKey, "name")
	})

	Convey("City distances must join two different cities", t, func() {
		errs := ValidateCreateCityDistance(&models.CreateCityDistanceRequest{FromCityID: 1, ToCityID: 1, DistanceKm: 10})
		So(errs.ToMap()["to_city_id"], ShouldEqual, "to_city_id must differ from from_city_id")
	})
}

func TestOrderValidators(t *testing.T) {
	Convey("Create order", t, func() {
		req := &models.CreateOrderRequest{
			UserID: 1, CarBrandModel: " Kia Rio ", FromCityID: 1, ToCityID: 2,
			StartDate: models.NewDate(2025, time.January, 5),
		}
		So(ValidateCreateOrder(req), ShouldBeEmpty)
		So(req.CarBrandModel, ShouldEqual, "Kia Rio")

		errs := ValidateCreateOrder(&models.CreateOrderRequest{UserID: 1, FromCityID: 1, ToCityID: 2})
		So(errs.ToMap(), ShouldContainKey, "car_brand_model")
		So(errs.ToMap(), ShouldContainKey, "start_date")
	})

	Convey("Preview accepts ids in place of names", t, func() {
		So(ValidatePreview(&models.PreviewRequest{
			FromCityID: 1, ToCity: "Сочи", StartDate: models.NewDate(2025, time.May, 1),
		}), ShouldBeEmpty)

		errs := ValidatePreview(&models.PreviewRequest{})
		So(errs, ShouldHaveLength, 3)
	})

	Convey("Payment status is case-insensitive", t, func() {
		req := &models.UpdatePaymentStatusRequest{PaymentStatus: "manual"}
		So(ValidatePaymentStatus(req), ShouldBeEmpty)
		So(req.PaymentStatus, ShouldEqual, models.PaymentStatusManual)

		So(ValidatePaymentStatus(&models.UpdatePaymentStatusRequest{PaymentStatus: "REFUNDED"}), ShouldNotBeEmpty)
	})
}
