package router

import (
	"sparkle-booking/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

func NewAvailabilityRouter(ctrl *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{AvailabilityController: ctrl}
}

func (r *AvailabilityRouter) Setup(e *echo.Echo) {
	public := e.Group("/api/v1/public")
	public.POST("/available-times", r.AvailabilityController.GetAvailableTimes)
	public.GET("/available-times", r.AvailabilityController.GetAvailableTimes)
}
