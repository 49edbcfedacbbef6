package pricing

import (
	"testing"
	"time"

	"cybertrax/internal/models"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCalculatorQuote(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	january := &models.Tariff{ID: 1, Month: 1, PricePerKmLe1000: 150, PricePerKmGt1000: 100}

	Convey("Given a calculator with default settings", t, func() {
		Convey("A fixed route wins over the tariff", func() {
			start := models.NewDate(2025, time.January, 10)
			route := &models.FixedRoute{FromCity: "Москва", ToCity: "Сочи", FixedPrice: 200000}

			quote, err := calc.Quote(start, 1620, january, route)

			So(err, ShouldBeNil)
			So(quote.IsFixedRoute, ShouldBeTrue)
			So(quote.AppliedPricePerKm, ShouldBeNil)
			So(quote.TransportPrice, ShouldEqual, 200000)
			So(quote.InsurancePrice, ShouldEqual, 20000)
		})

		Convey("A fixed route does not need a tariff", func() {
			start := models.NewDate(2025, time.March, 1)
			route := &models.FixedRoute{FixedPrice: 350000}

			quote, err := calc.Quote(start, 3700, nil, route)

			So(err, ShouldBeNil)
			So(quote.TransportPrice, ShouldEqual, 350000)
			So(quote.InsurancePrice, ShouldEqual, 35000)
		})

		Convey("Short routes use the lower band and round hours", func() {
			start := models.NewDate(2025, time.January, 5)

			quote, err := calc.Quote(start, 700, january, nil)

			So(err, ShouldBeNil)
			So(quote.IsFixedRoute, ShouldBeFalse)
			So(*quote.AppliedPricePerKm, ShouldEqual, 150)
			So(quote.TransportPrice, ShouldEqual, 105000)
			So(quote.InsurancePrice, ShouldEqual, 10500)
			So(quote.DurationHours, ShouldEqual, 17)
			So(quote.DurationDays, ShouldEqual, 0)
			So(quote.DurationHoursRemainder, ShouldEqual, 17)
			So(quote.EtaDate.String(), ShouldEqual, "2025-01-05")
		})

		Convey("Exactly 1000 km stays in the lower band", func() {
			quote, err := calc.Quote(models.NewDate(2025, time.January, 1), 1000, january, nil)

			So(err, ShouldBeNil)
			So(*quote.AppliedPricePerKm, ShouldEqual, 150)
			So(quote.DurationHours, ShouldEqual, 24)
			So(quote.DurationDays, ShouldEqual, 1)
			So(quote.EtaDate.String(), ShouldEqual, "2025-01-02")
		})

		Convey("Long routes use the upper band and cross month ends", func() {
			start := models.NewDate(2025, time.January, 30)

			quote, err := calc.Quote(start, 2300, january, nil)

			So(err, ShouldBeNil)
			So(*quote.AppliedPricePerKm, ShouldEqual, 100)
			So(quote.TransportPrice, ShouldEqual, 230000)
			So(quote.DurationHours, ShouldEqual, 55)
			So(quote.DurationDays, ShouldEqual, 2)
			So(quote.DurationHoursRemainder, ShouldEqual, 7)
			So(quote.EtaDate.String(), ShouldEqual, "2025-02-01")
		})

		Convey("Insurance halves round to even", func() {
			So(calc.Insurance(105), ShouldEqual, 10)
			So(calc.Insurance(115), ShouldEqual, 12)
			So(calc.Insurance(0), ShouldEqual, 0)
		})

		Convey("Missing tariff is an error without a fixed route", func() {
			_, err := calc.Quote(models.NewDate(2025, time.June, 1), 500, nil, nil)

			So(err, ShouldEqual, ErrTariffNotFound)
		})

		Convey("Invariants hold across distances", func() {
			start := models.NewDate(2025, time.January, 1)
			for _, km := range []int{1, 42, 999, 1000, 1001, 4321, 12000} {
				quote, err := calc.Quote(start, km, january, nil)
				So(err, ShouldBeNil)
				So(quote.InsurancePrice, ShouldBeLessThanOrEqualTo, quote.TransportPrice)
				So(quote.DurationDays*24+quote.DurationHoursRemainder, ShouldEqual, quote.DurationHours)
				So(quote.EtaDate.Before(start.Time), ShouldBeFalse)
			}
		})
	})
}

func TestSelectTariff(t *testing.T) {
	Convey("SelectTariff picks the newest tariff of the month", t, func() {
		tariffs := []*models.Tariff{
			{ID: 1, Month: 1, PricePerKmLe1000: 150},
			{ID: 7, Month: 1, PricePerKmLe1000: 170},
			{ID: 3, Month: 2, PricePerKmLe1000: 140},
		}

		So(SelectTariff(tariffs, 1).ID, ShouldEqual, 7)
		So(SelectTariff(tariffs, 2).ID, ShouldEqual, 3)
		So(SelectTariff(tariffs, 5), ShouldBeNil)
	})
}
