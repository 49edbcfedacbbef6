package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cybertrax/internal/models"
	"cybertrax/pkg/logger"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeAuthenticator struct{}

func (fakeAuthenticator) ValidateToken(_ context.Context, token string) (int64, error) {
	if token == "good" {
		return 7, nil
	}
	return 0, errors.New("bad token")
}

func (fakeAuthenticator) VerifyCredentials(_ context.Context, login, password string) (*models.Admin, error) {
	if login == "admin" && password == "admin" {
		return &models.Admin{ID: 3, Login: login}, nil
	}
	return nil, errors.New("bad credentials")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/admin", AdminRequired(fakeAuthenticator{}, logger.NewNop()), func(c *gin.Context) {
		id, _ := logger.AdminIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"admin_id": c.GetInt64("admin_id"), "ctx_admin_id": id})
	})
	return r
}

func TestAdminRequired(t *testing.T) {
	Convey("Given an admin-only route", t, func() {
		router := newRouter()

		do := func(setup func(*http.Request), target string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if setup != nil {
				setup(req)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		Convey("a bearer token is accepted", func() {
			w := do(func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, "/admin")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"admin_id":7`)
			So(w.Body.String(), ShouldContainSubstring, `"ctx_admin_id":7`)
		})

		Convey("basic credentials are accepted", func() {
			w := do(func(r *http.Request) { r.SetBasicAuth("admin", "admin") }, "/admin")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"admin_id":3`)
		})

		Convey("a query token is accepted", func() {
			w := do(nil, "/admin?token=good")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("anything else is unauthorized", func() {
			for _, setup := range []func(*http.Request){
				nil,
				func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") },
				func(r *http.Request) { r.SetBasicAuth("admin", "wrong") },
				func(r *http.Request) { r.Header.Set("Authorization", "Token good") },
			} {
				w := do(setup, "/admin")
				So(w.Code, ShouldEqual, http.StatusUnauthorized)
				So(w.Body.String(), ShouldEqual, `{"error":"Unauthorized"}`)
			}
		})
	})
}

func TestUtilityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Request ids are generated or propagated", t, func() {
		r := gin.New()
		r.Use(RequestIDMiddleware(), LoggingMiddleware(logger.NewNop()))
		r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, logger.RequestIDFromContext(c.Request.Context())) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		So(w.Header().Get("X-Request-ID"), ShouldHaveLength, 36)
		So(w.Body.String(), ShouldEqual, w.Header().Get("X-Request-ID"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		So(w.Header().Get("X-Request-ID"), ShouldEqual, "abc")
	})

	Convey("CORS only echoes allowed origins", t, func() {
		r := gin.New()
		r.Use(CORSMiddleware([]string{"http://admin.local"}))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://admin.local")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		So(w.Code, ShouldEqual, http.StatusNoContent)
		So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://admin.local")

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.local")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
	})

	Convey("Panics become a 500 error body", t, func() {
		r := gin.New()
		r.Use(RecoveryMiddleware(logger.NewNop()))
		r.GET("/", func(c *gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(w.Body.String(), ShouldEqual, `{"error":"Internal server error"}`)
	})
}
