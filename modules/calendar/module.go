package calendar

import (
	"context"

	"sparkle-booking/core/cache"
	"sparkle-booking/core/config"
	"sparkle-booking/modules/calendar/service"
)

// Init builds the calendar gateway from the google_calendar config section.
func Init(ctx context.Context, cfg config.GoogleCalendarConfig, c cache.Cache) (service.Gateway, error) {
	return service.NewGoogleGateway(ctx, service.GatewayConfig{
		ServiceIssuer:  cfg.ServiceIssuer,
		SigningKey:     cfg.SigningKey,
		CalendarID:     cfg.CalendarID,
		TokenAudience:  cfg.TokenAudience,
		Scope:          cfg.Scope,
		APIEndpoint:    cfg.APIEndpoint,
		RequestTimeout: cfg.RequestTimeout,
	}, c)
}
