package router

import (
	"sparkle-booking/core/middleware"
	"sparkle-booking/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	controller *controller.BookingController
}

func NewBookingRouter(controller *controller.BookingController) *BookingRouter {
	return &BookingRouter{controller: controller}
}

func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	public := e.Group("/api/v1/public")
	public.POST("/bookings/checkout", r.controller.Checkout)
	public.POST("/webhooks/stripe", r.controller.StripeWebhook)

	private := e.Group("/api/v1/private", mw.AdminAuth())
	private.GET("/orders", r.controller.PrivateGetOrders)
	private.GET("/orders/:id", r.controller.PrivateGetOrderByID)
}
