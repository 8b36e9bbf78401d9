package router

import (
	"sparkle-booking/modules/catalog/controller"

	"github.com/labstack/echo/v4"
)

type CatalogRouter struct {
	CatalogController *controller.CatalogController
}

func NewCatalogRouter(ctrl *controller.CatalogController) *CatalogRouter {
	return &CatalogRouter{CatalogController: ctrl}
}

func (r *CatalogRouter) Setup(e *echo.Echo) {
	public := e.Group("/api/v1/public")
	public.GET("/services", r.CatalogController.ListServices)
}
