package maps

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type stubProvider struct {
	name string
	km   int
	err  error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) DistanceKm(context.Context, Place, Place) (int, error) {
	return s.km, s.err
}

func TestOfflineMatrixProvider(t *testing.T) {
	Convey("Given the embedded matrix", t, func() {
		provider, err := NewOfflineMatrixProvider()
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("Known pairs resolve in both directions", func() {
			km, err := provider.DistanceKm(ctx, Place{Name: "Москва"}, Place{Name: "Санкт-Петербург"})
			So(err, ShouldBeNil)
			So(km, ShouldEqual, 700)

			km, err = provider.DistanceKm(ctx, Place{Name: "Санкт-Петербург"}, Place{Name: "Москва"})
			So(err, ShouldBeNil)
			So(km, ShouldEqual, 700)
		})

		Convey("Names are matched case-insensitively", func() {
			km, err := provider.DistanceKm(ctx, Place{Name: " москва "}, Place{Name: "СОЧИ"})
			So(err, ShouldBeNil)
			So(km, ShouldEqual, 1620)
		})

		Convey("Unknown pairs are unavailable", func() {
			_, err := provider.DistanceKm(ctx, Place{Name: "Москва"}, Place{Name: "Атлантида"})
			So(errors.Is(err, ErrDistanceUnavailable), ShouldBeTrue)
		})
	})
}

func TestHaversineProvider(t *testing.T) {
	Convey("Haversine needs coordinates on both sides", t, func() {
		provider := NewHaversineProvider(1.2)
		moscow := Place{Name: "Москва", Location: &Location{Latitude: 55.7558, Longitude: 37.6173}}
		spb := Place{Name: "Санкт-Петербург", Location: &Location{Latitude: 59.9343, Longitude: 30.3351}}

		km, err := provider.DistanceKm(context.Background(), moscow, spb)
		So(err, ShouldBeNil)
		So(km, ShouldBeBetween, 750, 800)

		_, err = provider.DistanceKm(context.Background(), moscow, Place{Name: "Сочи"})
		So(errors.Is(err, ErrDistanceUnavailable), ShouldBeTrue)
	})
}

func TestChainProvider(t *testing.T) {
	ctx := context.Background()

	Convey("The first provider with an answer wins", t, func() {
		chain := NewChainProvider(
			&stubProvider{name: "a", err: ErrDistanceUnavailable},
			&stubProvider{name: "b", km: 42},
			&stubProvider{name: "c", km: 99},
		)

		km, source, err := chain.Resolve(ctx, Place{}, Place{})
		So(err, ShouldBeNil)
		So(km, ShouldEqual, 42)
		So(source, ShouldEqual, "b")
	})

	Convey("Hard failures are skipped but reported when nothing resolves", t, func() {
		boom := errors.New("quota exceeded")
		chain := NewChainProvider(
			&stubProvider{name: "a", err: boom},
			&stubProvider{name: "b", err: ErrDistanceUnavailable},
		)

		_, _, err := chain.Resolve(ctx, Place{}, Place{})
		So(errors.Is(err, ErrDistanceUnavailable), ShouldBeTrue)
		So(errors.Is(err, boom), ShouldBeTrue)
	})
}
