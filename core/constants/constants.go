package constants

import "time"

// Timeouts
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultTimeout        = 30 * time.Second
	ShutdownTimeout       = 15 * time.Second
)

// Database
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Redis keys
const (
	RedisKeyCalendarToken = "calendar:token:"
	RedisKeyStripeEvent   = "stripe:event:"
)

const (
	// CalendarTokenEarlyExpiry is subtracted from the bearer token lifetime when caching it.
	CalendarTokenEarlyExpiry = 5 * time.Minute
	// StripeEventDedupeTTL bounds how long delivered webhook ids are remembered.
	StripeEventDedupeTTL = 72 * time.Hour
)

// Task types
const (
	TaskCalendarSync  = "booking:calendar_sync"
	TaskNotify        = "booking:notify"
	TaskQueueDefault  = "default"
	TaskQueueCalendar = "calendar"
	TaskNotifyRetry   = 3
)

// RabbitMQ
const (
	QueueBookingConfirmed = "booking.confirmed"
)

// Pagination
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

const DateLayout = "2006-01-02"
const TimeOfDayLayout = "15:04"
