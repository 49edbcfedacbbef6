package services

import (
	"context"
	"testing"

	"cybertrax/internal/models"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAuthService(t *testing.T) {
	ctx := context.Background()

	Convey("Given a bootstrapped admin", t, func() {
		env := newTestEnv()
		admin, created, err := env.auth.EnsureAdmin(ctx, "admin", "s3cret")
		So(err, ShouldBeNil)
		So(created, ShouldBeTrue)
		So(admin.PasswordHash, ShouldNotEqual, "s3cret")

		Convey("a second bootstrap is a no-op", func() {
			_, created, err := env.auth.EnsureAdmin(ctx, "other", "x")
			So(err, ShouldBeNil)
			So(created, ShouldBeFalse)
		})

		Convey("login issues a token for the admin", func() {
			resp, err := env.auth.Login(ctx, &models.AdminLoginRequest{Login: "admin", Password: "s3cret"}, "127.0.0.1")
			So(err, ShouldBeNil)
			So(resp.AdminID, ShouldEqual, admin.ID)

			id, err := env.auth.ValidateToken(ctx, resp.Token)
			So(err, ShouldBeNil)
			So(id, ShouldEqual, admin.ID)

			stored, _ := env.admins.GetByID(ctx, admin.ID)
			So(stored.LastLoginAt, ShouldNotBeNil)
		})

		Convey("bad credentials are rejected", func() {
			_, err := env.auth.Login(ctx, &models.AdminLoginRequest{Login: "admin", Password: "wrong"}, "")
			So(err, ShouldEqual, ErrInvalidCredentials)

			_, err = env.auth.VerifyCredentials(ctx, "nobody", "s3cret")
			So(err, ShouldEqual, ErrInvalidCredentials)

			_, err = env.auth.ValidateToken(ctx, "not-a-token")
			So(err, ShouldEqual, ErrInvalidCredentials)
		})

		Convey("basic credentials verify against the hash", func() {
			verified, err := env.auth.VerifyCredentials(ctx, "admin", "s3cret")
			So(err, ShouldBeNil)
			So(verified.ID, ShouldEqual, admin.ID)
		})
	})
}
