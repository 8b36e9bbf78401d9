package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sparkle-booking/core/broker"
	"sparkle-booking/core/cache"
	"sparkle-booking/core/config"
	"sparkle-booking/core/constants"
	"sparkle-booking/core/database"
	"sparkle-booking/core/logger"
	"sparkle-booking/core/middleware"
	"sparkle-booking/core/queue"
	"sparkle-booking/modules/availability"
	"sparkle-booking/modules/booking"
	"sparkle-booking/modules/calendar"
	"sparkle-booking/modules/catalog"
	"sparkle-booking/modules/notification"
	"sparkle-booking/modules/payment"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

const workerConcurrency = 5

// Run wires every module, serves HTTP and the task worker, and blocks until SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}

	redisCfg := cache.RedisConfig{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	store, err := cache.InitRedis(redisCfg)
	if err != nil {
		logger.Warn("Server:Run:Redis:FallbackToMemory", "error", err)
		store = cache.NewMemoryCache()
	}
	defer store.Close()

	queueCfg := queue.RedisConfig{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	tasks := queue.NewClient(queueCfg)
	defer tasks.Close()
	worker := queue.NewWorker(queueCfg, workerConcurrency)
	// Calendar sync checks then inserts, so two syncs must never overlap.
	calendarWorker := queue.NewWorker(queueCfg, 1, constants.TaskQueueCalendar)

	var publisher broker.Publisher = broker.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		rabbit := broker.NewRabbitPublisher(cfg.RabbitMQ.URL)
		defer rabbit.Close()
		publisher = rabbit
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware(middleware.AdminCredentials{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
	})

	catalogService := catalog.Init(ctx, e, db)

	gateway, err := calendar.Init(ctx, cfg.GoogleCalendar, store)
	if err != nil {
		return fmt.Errorf("calendar gateway: %w", err)
	}

	availabilityService, err := availability.Init(e, cfg.Booking, gateway)
	if err != nil {
		return err
	}

	paymentService := payment.Init(cfg.Stripe)
	notificationService, err := notification.Init(e, db, mw, cfg.Email, cfg.Booking.ZoneLabel)
	if err != nil {
		return err
	}

	booking.Init(e, booking.Deps{
		DB:             db,
		Cache:          store,
		Tasks:          tasks,
		Worker:         worker,
		CalendarWorker: calendarWorker,
		Publisher:      publisher,
		Middleware:     mw,
		Catalog:        catalogService,
		Availability:   availabilityService,
		Calendar:       gateway,
		Payments:       paymentService,
		Notifier:       notificationService,
	}, cfg.Stripe, cfg.Booking)

	if err := worker.Start(); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	defer worker.Shutdown()
	if err := calendarWorker.Start(); err != nil {
		return fmt.Errorf("start calendar worker: %w", err)
	}
	defer calendarWorker.Shutdown()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr, "env", cfg.Server.Env)
		errCh <- e.Start(addr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Server:Run:ShutdownSignal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server:Run:Shutdown:Error", "error", err)
		return err
	}
	logger.Info("Server:Run:Stopped")
	return nil
}
