package notification

import (
	"sparkle-booking/core/config"
	"sparkle-booking/core/constants"
	"sparkle-booking/core/database"
	"sparkle-booking/core/middleware"
	"sparkle-booking/modules/notification/controller"
	"sparkle-booking/modules/notification/repository"
	"sparkle-booking/modules/notification/router"
	"sparkle-booking/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, emailCfg config.EmailConfig, zoneLabel string) (*service.NotificationService, error) {
	repo := repository.NewNotificationRepository(db)
	sender, err := service.NewResendEmailSender(emailCfg.APIURL, emailCfg.APIKey, constants.DefaultRequestTimeout)
	if err != nil {
		return nil, err
	}
	svc := service.NewNotificationService(repo, sender, service.NotifierConfig{
		From:      emailCfg.From,
		OwnerTo:   emailCfg.OwnerTo,
		ZoneLabel: zoneLabel,
	})
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)

	return svc, nil
}
