package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	GoogleCalendar GoogleCalendarConfig `mapstructure:"google_calendar"`
	Stripe         StripeConfig         `mapstructure:"stripe"`
	Email          EmailConfig          `mapstructure:"email"`
	RabbitMQ       RabbitMQConfig       `mapstructure:"rabbitmq"`
	Booking        BookingConfig        `mapstructure:"booking"`
	Admin          AdminConfig          `mapstructure:"admin"`
	Log            LogConfig            `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GoogleCalendarConfig carries the service credential used by the calendar gateway.
type GoogleCalendarConfig struct {
	ServiceIssuer  string        `mapstructure:"service_issuer"`
	SigningKey     string        `mapstructure:"signing_key"`
	CalendarID     string        `mapstructure:"calendar_id"`
	TokenAudience  string        `mapstructure:"token_audience"`
	Scope          string        `mapstructure:"scope"`
	APIEndpoint    string        `mapstructure:"api_endpoint"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type StripeConfig struct {
	SecretKey      string `mapstructure:"secret_key"`
	WebhookSecret  string `mapstructure:"webhook_secret"`
	DepositPriceID string `mapstructure:"deposit_price_id"`
	DepositCents   int64  `mapstructure:"deposit_cents"`
	Currency       string `mapstructure:"currency"`
	SuccessURL     string `mapstructure:"success_url"`
	CancelURL      string `mapstructure:"cancel_url"`
}

type EmailConfig struct {
	APIURL  string `mapstructure:"api_url"`
	APIKey  string `mapstructure:"api_key"`
	From    string `mapstructure:"from"`
	OwnerTo string `mapstructure:"owner_to"`
}

type RabbitMQConfig struct {
	URL string `mapstructure:"url"`
}

type BookingConfig struct {
	Timezone     string   `mapstructure:"timezone"`
	ZoneLabel    string   `mapstructure:"zone_label"`
	Windows      []string `mapstructure:"windows"` // "07:00-10:00"
	EventSummary string   `mapstructure:"event_summary"`
}

type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Init loads .env (if any), then config.yaml (if any), then environment overrides.
func Init() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.GoogleCalendar.SigningKey = strings.ReplaceAll(cfg.GoogleCalendar.SigningKey, `\n`, "\n")

	Set(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Every key gets a default so AutomaticEnv can override it during Unmarshal.
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.env", "development")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "sparkle")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("google_calendar.service_issuer", "")
	v.SetDefault("google_calendar.signing_key", "")
	v.SetDefault("google_calendar.calendar_id", "primary")
	v.SetDefault("google_calendar.token_audience", "https://oauth2.googleapis.com/token")
	v.SetDefault("google_calendar.scope", "https://www.googleapis.com/auth/calendar")
	v.SetDefault("google_calendar.api_endpoint", "")
	v.SetDefault("google_calendar.request_timeout", 10*time.Second)

	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.webhook_secret", "")
	v.SetDefault("stripe.deposit_price_id", "")
	v.SetDefault("stripe.deposit_cents", 2500)
	v.SetDefault("stripe.currency", "usd")
	v.SetDefault("stripe.success_url", "http://localhost:5173/booking-success?session_id={CHECKOUT_SESSION_ID}")
	v.SetDefault("stripe.cancel_url", "http://localhost:5173/booking")

	v.SetDefault("email.api_url", "https://api.resend.com/")
	v.SetDefault("email.api_key", "")
	v.SetDefault("email.from", "Sparkle Bookings <onboarding@resend.dev>")
	v.SetDefault("email.owner_to", "")

	v.SetDefault("rabbitmq.url", "")

	v.SetDefault("booking.timezone", "America/Denver")
	v.SetDefault("booking.zone_label", "MT")
	v.SetDefault("booking.windows", []string{"07:00-10:00", "10:00-13:00", "13:00-16:00", "16:00-19:00"})
	v.SetDefault("booking.event_summary", "Auto detailing appointment")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password_hash", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config not initialized")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
