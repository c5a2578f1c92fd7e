package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the application reads from the environment.
// It is loaded once at startup and handed to constructors as a value, so
// no component reads ambient configuration state.
type Config struct {
	AppPort   string
	APIPrefix string

	DatabaseDSN string

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins string

	FirstSuperuser         string
	FirstSuperuserPassword string

	// RabbitMQURL is optional; an empty value disables catalog events.
	RabbitMQURL string
}

// Load reads configuration from environment variables with sensible
// development defaults.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("API_PREFIX", "/api/v1")
	viper.SetDefault("DATABASE_DSN", "bookshelf.db")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("TOKEN_TTL_HOURS", 24*8) // 8 days
	viper.SetDefault("CORS_ORIGINS", "http://localhost:8000,http://localhost:3000")
	viper.SetDefault("FIRST_SUPERUSER", "admin@example.com")
	viper.SetDefault("FIRST_SUPERUSER_PASSWORD", "admin")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv() // Load environment variables

	return Config{
		AppPort:                viper.GetString("APP_PORT"),
		APIPrefix:              viper.GetString("API_PREFIX"),
		DatabaseDSN:            viper.GetString("DATABASE_DSN"),
		JWTSecret:              viper.GetString("JWT_SECRET"),
		TokenTTL:               time.Duration(viper.GetInt("TOKEN_TTL_HOURS")) * time.Hour,
		CORSOrigins:            viper.GetString("CORS_ORIGINS"),
		FirstSuperuser:         viper.GetString("FIRST_SUPERUSER"),
		FirstSuperuserPassword: viper.GetString("FIRST_SUPERUSER_PASSWORD"),
		RabbitMQURL:            viper.GetString("RABBITMQ_URL"),
	}
}
