package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/estimate"
	"github.com/spf13/viper"
)

// CurrencyConfig selects the locale and symbol used for estimate amounts.
type CurrencyConfig struct {
	Locale string
	Symbol string
}

// NotificationConfig holds the email provider credentials and addresses.
type NotificationConfig struct {
	APIKey   string
	From     string
	NotifyTo string
	Brand    string
	Endpoint string
}

// GoogleConfig holds the Directions API settings.
type GoogleConfig struct {
	APIKey  string
	Region  string
	BaseURL string
}

// RedisConfig holds the route cache connection. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// KafkaConfig holds the event publisher settings. No brokers disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ServiceConfig holds all configuration for the estimate service.
type ServiceConfig struct {
	Port           string
	AppEnv         string
	Pricing        estimate.PricingConfig
	Currency       CurrencyConfig
	Notification   NotificationConfig
	Google         GoogleConfig
	Redis          RedisConfig
	Kafka          KafkaConfig
	NotifyEndpoint string
}

// Load reads configuration from environment variables and an optional config.yaml.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a ServiceConfig from v after applying defaults and
// environment bindings. Callers may bind flags into v first.
func FromViper(v *viper.Viper) (*ServiceConfig, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &ServiceConfig{
		Port:   servicePort(v.GetString("SERVICE_PORT")),
		AppEnv: v.GetString("APP_ENV"),
		Pricing: estimate.PricingConfig{
			PerHour:              v.GetFloat64("PRICING_PER_HOUR"),
			PerKm:                v.GetFloat64("PRICING_PER_KM"),
			ReturnTripMultiplier: v.GetFloat64("PRICING_RETURN_TRIP_MULTIPLIER"),
			ReturnTripHoursExtra: v.GetFloat64("PRICING_RETURN_TRIP_HOURS_EXTRA"),
		},
		Currency: CurrencyConfig{
			Locale: v.GetString("CURRENCY_LOCALE"),
			Symbol: v.GetString("CURRENCY_SYMBOL"),
		},
		Notification: NotificationConfig{
			APIKey:   v.GetString("RESEND_API_KEY"),
			From:     v.GetString("ESTIMATE_FROM"),
			NotifyTo: v.GetString("ESTIMATE_NOTIFY_TO"),
			Brand:    v.GetString("ESTIMATE_BRAND"),
			Endpoint: v.GetString("RESEND_ENDPOINT"),
		},
		Google: GoogleConfig{
			APIKey:  v.GetString("GOOGLE_MAPS_API_KEY"),
			Region:  v.GetString("GOOGLE_MAPS_REGION"),
			BaseURL: v.GetString("GOOGLE_MAPS_DIRECTIONS_URL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("ROUTE_CACHE_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		NotifyEndpoint: v.GetString("NOTIFY_ENDPOINT"),
	}

	if err := cfg.Pricing.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	return cfg, nil
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("PRICING_PER_HOUR", estimate.DefaultPerHour)
	v.SetDefault("PRICING_PER_KM", estimate.DefaultPerKm)
	v.SetDefault("PRICING_RETURN_TRIP_MULTIPLIER", estimate.DefaultReturnTripMultiplier)
	v.SetDefault("PRICING_RETURN_TRIP_HOURS_EXTRA", estimate.DefaultReturnTripHoursExtra)
	v.SetDefault("CURRENCY_LOCALE", "en-AU")
	v.SetDefault("CURRENCY_SYMBOL", "$")
	v.SetDefault("ESTIMATE_BRAND", "JML Hotshots")
	v.SetDefault("GOOGLE_MAPS_REGION", "au")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ROUTE_CACHE_TTL", 24*time.Hour)
	v.SetDefault("KAFKA_TOPIC", "estimate.events")
	v.SetDefault("NOTIFY_ENDPOINT", "http://localhost:8080/api/v1/estimates/send")
}

func servicePort(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
