package mongodb

import (
	"testing"
	"time"

	"cybertrax/internal/models"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildOrderQuery(t *testing.T) {
	Convey("buildOrderQuery", t, func() {
		Convey("an empty filter matches everything", func() {
			So(buildOrderQuery(&models.OrderFilter{}), ShouldBeEmpty)
			So(buildOrderQuery(nil), ShouldBeEmpty)
		})

		Convey("set fields become equality and range conditions", func() {
			userID := int64(4)
			status := models.PaymentStatusPaid
			from := models.NewDate(2025, time.January, 1)
			to := models.NewDate(2025, time.January, 31)

			query := buildOrderQuery(&models.OrderFilter{
				UserID:        &userID,
				PaymentStatus: &status,
				StartFrom:     &from,
				StartTo:       &to,
			})

			So(query["user_id"], ShouldEqual, int64(4))
			So(query["payment_status"], ShouldEqual, models.PaymentStatusPaid)
			So(query["start_date"], ShouldResemble, bson.M{"$gte": from, "$lte": to})
			So(query, ShouldNotContainKey, "from_city_id")
		})
	})

	Convey("orderSort defaults to newest start date", t, func() {
		So(orderSort(""), ShouldResemble, bson.D{{Key: "start_date", Value: -1}, {Key: "_id", Value: -1}})
		So(orderSort(models.OrderSortCost)[0].Key, ShouldEqual, "transport_price")
		So(orderSort(models.OrderSortEta)[0].Value, ShouldEqual, 1)
	})
}

func TestDateBSONRoundTrip(t *testing.T) {
	Convey("Dates are stored as UTC midnight datetimes", t, func() {
		doc := struct {
			Start models.Date `bson:"start"`
		}{Start: models.NewDate(2025, time.March, 9)}

		raw, err := bson.Marshal(doc)
		So(err, ShouldBeNil)
		So(bson.Raw(raw).Lookup("start").Type, ShouldEqual, bson.TypeDateTime)

		var decoded struct {
			Start models.Date `bson:"start"`
		}
		So(bson.Unmarshal(raw, &decoded), ShouldBeNil)
		So(decoded.Start.String(), ShouldEqual, "2025-03-09")
	})
}
