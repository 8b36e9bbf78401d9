package availability

import (
	"fmt"
	"time"

	"sparkle-booking/core/config"
	"sparkle-booking/modules/availability/controller"
	"sparkle-booking/modules/availability/entity"
	"sparkle-booking/modules/availability/router"
	"sparkle-booking/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init validates the business-hour template and registers the available-times routes.
func Init(e *echo.Echo, cfg config.BookingConfig, calendar service.BusyLister) (*service.AvailabilityService, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("booking timezone %q: %w", cfg.Timezone, err)
	}
	windows := cfg.Windows
	if len(windows) == 0 {
		windows = entity.DefaultWindows
	}
	tmpl, err := entity.ParseTemplate(windows)
	if err != nil {
		return nil, fmt.Errorf("business hours: %w", err)
	}

	svc := service.NewAvailabilityService(calendar, tmpl, loc)
	ctrl := controller.NewAvailabilityController(svc)
	router.NewAvailabilityRouter(ctrl).Setup(e)

	return svc, nil
}
