package payment

import (
	"sparkle-booking/core/config"
	"sparkle-booking/core/logger"
	"sparkle-booking/modules/payment/service"
)

func Init(cfg config.StripeConfig) *service.StripeService {
	if cfg.SecretKey == "" {
		logger.Warn("Payment:Init:SecretKeyMissing")
	}
	return service.NewStripeService(service.StripeConfig{
		SecretKey:     cfg.SecretKey,
		WebhookSecret: cfg.WebhookSecret,
	})
}
