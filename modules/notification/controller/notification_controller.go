package controller

import (
	"sparkle-booking/core/controller"
	"sparkle-booking/core/errors"
	"sparkle-booking/modules/notification/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	service service.NotificationServiceInterface
	controller.BaseController
}

func NewNotificationController(service service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// ListByOrder handles GET /private/orders/:id/notifications
func (c *NotificationController) ListByOrder(ctx echo.Context) error {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid order id")
	}

	items, appErr := c.service.ListByOrder(ctx.Request().Context(), orderID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, items, "Notifications retrieved successfully")
}
