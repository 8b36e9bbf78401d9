package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	mw := NewMiddleware(AdminCredentials{Username: "owner", PasswordHash: string(hash)})

	e := echo.New()
	e.GET("/private", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, mw.AdminAuth())

	tests := []struct {
		name     string
		user     string
		pass     string
		withAuth bool
		want     int
	}{
		{name: "valid credentials", user: "owner", pass: "s3cret", withAuth: true, want: http.StatusOK},
		{name: "wrong password", user: "owner", pass: "nope", withAuth: true, want: http.StatusUnauthorized},
		{name: "wrong user", user: "other", pass: "s3cret", withAuth: true, want: http.StatusUnauthorized},
		{name: "no header", withAuth: false, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.withAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAdminAuthNotConfigured(t *testing.T) {
	mw := NewMiddleware(AdminCredentials{})
	e := echo.New()
	e.GET("/private", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, mw.AdminAuth())

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.SetBasicAuth("", "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
