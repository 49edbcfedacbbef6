package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"cybertrax/internal/models"
	"cybertrax/pkg/logger"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

func TestExportService(t *testing.T) {
	ctx := context.Background()

	Convey("Given a few orders", t, func() {
		env := newTestEnv()
		So(env.bootstrap.Run(ctx), ShouldBeNil)
		client := env.user("Иван Петров", "+79991234567")

		for _, to := range []string{"Москва", "Сочи"} {
			_, err := env.orderSvc.CreateOrder(ctx, &models.CreateOrderRequest{
				UserID:        client.ID,
				CarBrandModel: "Lada Vesta",
				FromCityID:    env.city("Санкт-Петербург").ID,
				ToCityID:      env.city(to).ID,
				StartDate:     models.NewDate(2025, time.May, 1),
			})
			So(err, ShouldBeNil)
		}

		svc := NewExportService(env.orderSvc, logger.NewNop())

		Convey("the workbook has a header and one row per order", func() {
			var buf bytes.Buffer
			n, err := svc.ExportOrders(ctx, &models.OrderFilter{}, &buf)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)

			f, err := excelize.OpenReader(&buf)
			So(err, ShouldBeNil)
			defer f.Close()

			rows, err := f.GetRows(ordersSheetName)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 3)
			So(rows[0][0], ShouldEqual, "ID заявки")
			So(rows[1][2], ShouldEqual, "Иван Петров")
			So(rows[1][15], ShouldEqual, "Ожидает оплаты")
		})

		Convey("filters apply to the export", func() {
			toID := env.city("Сочи").ID
			var buf bytes.Buffer
			n, err := svc.ExportOrders(ctx, &models.OrderFilter{ToCityID: &toID}, &buf)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
		})
	})
}
