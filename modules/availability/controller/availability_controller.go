package controller

import (
	"sparkle-booking/core/controller"
	"sparkle-booking/core/errors"
	"sparkle-booking/modules/availability/dto"
	"sparkle-booking/modules/availability/service"

	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	controller.BaseController
	AvailabilityService *service.AvailabilityService
}

func NewAvailabilityController(svc *service.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// GetAvailableTimes handles POST /public/available-times and GET /public/available-times?date=
func (c *AvailabilityController) GetAvailableTimes(ctx echo.Context) error {
	var req dto.AvailableTimesRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Date == "" {
		return c.BadRequest(errors.ErrInvalidInput, "date is required")
	}

	result, appErr := c.AvailabilityService.GetAvailableTimes(ctx.Request().Context(), req.Date)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Available times retrieved successfully")
}
