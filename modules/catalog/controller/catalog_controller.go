package controller

import (
	"sparkle-booking/core/controller"
	"sparkle-booking/modules/catalog/service"

	"github.com/labstack/echo/v4"
)

type CatalogController struct {
	controller.BaseController
	CatalogService service.CatalogServiceInterface
}

func NewCatalogController(svc service.CatalogServiceInterface) *CatalogController {
	return &CatalogController{
		BaseController: controller.NewBaseController(),
		CatalogService: svc,
	}
}

// ListServices handles GET /public/services
func (c *CatalogController) ListServices(ctx echo.Context) error {
	result, appErr := c.CatalogService.ListActive(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Services retrieved successfully")
}
