package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	"sparkle-booking/core/logger"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

type AdminCredentials struct {
	Username     string
	PasswordHash string
}

type Middleware struct {
	admin AdminCredentials
}

func NewMiddleware(admin AdminCredentials) *Middleware {
	return &Middleware{admin: admin}
}

// AdminAuth guards the private routes with HTTP basic auth checked against a bcrypt hash.
func (m *Middleware) AdminAuth() echo.MiddlewareFunc {
	return echoMiddleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		if m.admin.Username == "" || m.admin.PasswordHash == "" {
			logger.Warn("Middleware:AdminAuth:NotConfigured")
			return false, nil
		}
		if subtle.ConstantTimeCompare([]byte(username), []byte(m.admin.Username)) != 1 {
			logger.Warn("Middleware:AdminAuth:UnknownUser", "path", c.Path())
			return false, nil
		}
		if err := bcrypt.CompareHashAndPassword([]byte(m.admin.PasswordHash), []byte(password)); err != nil {
			logger.Warn("Middleware:AdminAuth:BadPassword", "path", c.Path())
			return false, nil
		}
		return true, nil
	})
}

func CORS() echo.MiddlewareFunc {
	return echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
	})
}

func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			logger.Info("HTTP:Request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return nil
		}
	}
}
