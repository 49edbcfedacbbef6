package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizePhone(t *testing.T) {
	Convey("NormalizePhone", t, func() {
		So(NormalizePhone("+7 (999) 123-45-67"), ShouldEqual, "+79991234567")
		So(NormalizePhone("8 999 123 45 67"), ShouldEqual, "+79991234567")
		So(NormalizePhone("996 555 123456"), ShouldEqual, "+996555123456")
		So(NormalizePhone("abc"), ShouldEqual, "")

		Convey("validity is based on digit count", func() {
			So(IsValidPhone("+7 999 123-45-67"), ShouldBeTrue)
			So(IsValidPhone("12345"), ShouldBeFalse)
			So(IsValidPhone("+1234567890123456"), ShouldBeFalse)
		})

		So(MaskPhone("+79991234567"), ShouldEqual, "********4567")
	})
}

func TestPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parse := func(query string) (*PaginationParams, error) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/orders"+query, nil)
		return GetPaginationParams(c)
	}

	Convey("GetPaginationParams", t, func() {
		Convey("defaults to the first page of twenty", func() {
			p, err := parse("")
			So(err, ShouldBeNil)
			So(p.Page, ShouldEqual, 1)
			So(p.Limit, ShouldEqual, 20)
			So(p.GetSkip(), ShouldEqual, 0)
		})

		Convey("computes the skip from page and limit", func() {
			p, err := parse("?page=3&limit=50")
			So(err, ShouldBeNil)
			So(p.GetSkip(), ShouldEqual, 100)
			So(p.GetLimit(), ShouldEqual, 50)
		})

		Convey("rejects out-of-range values", func() {
			_, err := parse("?page=0")
			So(err, ShouldNotBeNil)
			_, err = parse("?limit=101")
			So(err, ShouldNotBeNil)
			_, err = parse("?limit=abc")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("TotalPages rounds up", t, func() {
		So(TotalPages(0, 20), ShouldEqual, 0)
		So(TotalPages(20, 20), ShouldEqual, 1)
		So(TotalPages(21, 20), ShouldEqual, 2)
	})
}

func TestAdminToken(t *testing.T) {
	Convey("Admin tokens round-trip with the same secret only", t, func() {
		token, err := GenerateAdminToken(3, "admin", "secret", time.Hour)
		So(err, ShouldBeNil)

		claims, err := ValidateToken(token, "secret")
		So(err, ShouldBeNil)
		So(claims.AdminID, ShouldEqual, 3)
		So(claims.Subject, ShouldEqual, "3")

		_, err = ValidateToken(token, "other")
		So(err, ShouldNotBeNil)

		expired, err := GenerateAdminToken(3, "admin", "secret", -time.Minute)
		So(err, ShouldBeNil)
		_, err = ValidateToken(expired, "secret")
		So(err, ShouldNotBeNil)
	})
}

func TestCalculateDistance(t *testing.T) {
	Convey("Moscow to Saint Petersburg is about 634 km as the crow flies", t, func() {
		km := CalculateDistance(55.7558, 37.6173, 59.9343, 30.3351)
		So(km, ShouldAlmostEqual, 634, 5)
	})
}
