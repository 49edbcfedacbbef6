package services

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBootstrapService(t *testing.T) {
	ctx := context.Background()

	Convey("Seeding twice adds the reference data once", t, func() {
		env := newTestEnv()
		So(env.bootstrap.Run(ctx), ShouldBeNil)
		So(env.bootstrap.Run(ctx), ShouldBeNil)

		cities, _ := env.cities.List(ctx, false)
		So(cities, ShouldHaveLength, 4)

		routes, _ := env.routes.List(ctx)
		So(routes, ShouldHaveLength, 3)

		tariffs, _ := env.tariffs.List(ctx)
		So(tariffs, ShouldHaveLength, 12)
		So(tariffs[0].PricePerKmLe1000, ShouldEqual, 150)
		So(tariffs[0].PricePerKmGt1000, ShouldEqual, 100)

		count, _ := env.admins.Count(ctx)
		So(count, ShouldEqual, 1)

		_, err := env.auth.VerifyCredentials(ctx, "admin", "admin")
		So(err, ShouldBeNil)
	})
}
