package catalog

import (
	"context"

	"sparkle-booking/core/database"
	"sparkle-booking/core/logger"
	"sparkle-booking/modules/catalog/controller"
	"sparkle-booking/modules/catalog/repository"
	"sparkle-booking/modules/catalog/router"
	"sparkle-booking/modules/catalog/service"

	"github.com/labstack/echo/v4"
)

// Init seeds an empty catalog, registers the public services route and returns the service.
func Init(ctx context.Context, e *echo.Echo, db database.IDatabase) *service.CatalogService {
	repo := repository.NewServiceRepository(db)
	if err := service.Seed(ctx, repo); err != nil {
		logger.Error("Catalog:Init:Seed:Error", "error", err)
	}

	svc := service.NewCatalogService(repo)
	ctrl := controller.NewCatalogController(svc)
	router.NewCatalogRouter(ctrl).Setup(e)

	return svc
}
