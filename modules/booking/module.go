package booking

import (
	"sparkle-booking/core/broker"
	"sparkle-booking/core/cache"
	"sparkle-booking/core/config"
	"sparkle-booking/core/constants"
	"sparkle-booking/core/database"
	"sparkle-booking/core/middleware"
	"sparkle-booking/core/queue"
	"sparkle-booking/modules/booking/controller"
	"sparkle-booking/modules/booking/repository"
	"sparkle-booking/modules/booking/router"
	"sparkle-booking/modules/booking/service"
	calendarService "sparkle-booking/modules/calendar/service"
	catalogService "sparkle-booking/modules/catalog/service"
	paymentService "sparkle-booking/modules/payment/service"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	DB     database.IDatabase
	Cache  cache.Cache
	Tasks  queue.Enqueuer
	Worker *queue.Worker
	// CalendarWorker runs calendar sync one task at a time.
	CalendarWorker *queue.Worker
	Publisher      broker.Publisher
	Middleware     *middleware.Middleware
	Catalog        catalogService.CatalogServiceInterface
	Availability   service.AppointmentResolver
	Calendar       calendarService.Gateway
	Payments       paymentService.PaymentGateway
	Notifier       service.Notifier
}

// Init registers the booking routes and the post-payment task handlers.
func Init(e *echo.Echo, deps Deps, stripeCfg config.StripeConfig, bookingCfg config.BookingConfig) {
	repo := repository.NewOrderRepository(deps.DB)

	bookingService := service.NewBookingService(repo, deps.Catalog, deps.Availability, deps.Payments, service.CheckoutConfig{
		DepositPriceID: stripeCfg.DepositPriceID,
		DepositCents:   stripeCfg.DepositCents,
		Currency:       stripeCfg.Currency,
		SuccessURL:     stripeCfg.SuccessURL,
		CancelURL:      stripeCfg.CancelURL,
	})
	confirmationService := service.NewConfirmationService(repo, deps.Payments, deps.Cache, deps.Tasks)
	orderService := service.NewOrderService(repo)
	taskService := service.NewTaskService(repo, deps.Catalog, deps.Availability, deps.Calendar, deps.Payments, deps.Notifier, deps.Publisher, deps.Tasks, service.TaskConfig{
		EventSummary: bookingCfg.EventSummary,
		TimeZone:     bookingCfg.Timezone,
	})

	if deps.CalendarWorker != nil {
		deps.CalendarWorker.HandleFunc(constants.TaskCalendarSync, taskService.HandleCalendarSync)
	}
	if deps.Worker != nil {
		deps.Worker.HandleFunc(constants.TaskNotify, taskService.HandleNotify)
	}

	ctrl := controller.NewBookingController(bookingService, confirmationService, orderService)
	router.NewBookingRouter(ctrl).Setup(e, deps.Middleware)
}
