package utils

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultCORSOrigin is the local frontend dev server.
const DefaultCORSOrigin = "http://localhost:5173"

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Backend   BackendConfig
	Session   SessionConfig
	Dashboard DashboardConfig
	Redis     RedisConfig
}

type AppConfig struct {
	Name       string
	Port       string
	Debug      bool
	LogPath    string
	CORSOrigin string
}

type DatabaseConfig struct {
	Host          string
	Port          string
	Name          string
	User          string
	Password      string
	MaxConns      int32
	RunMigrations bool
}

type BackendConfig struct {
	BaseURL string
	// Zero means no client-side timeout.
	Timeout time.Duration
}

type SessionConfig struct {
	ExpiryHours  int
	CookieSecure bool
}

type DashboardConfig struct {
	PollInterval  time.Duration
	IdleTimeout   time.Duration
	CommissionPct float64
}

type RedisConfig struct {
	URL string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_NAME", "smartride-portal")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ORIGIN", DefaultCORSOrigin)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8080/api/v1")
	viper.SetDefault("GATEWAY_TIMEOUT", "0s")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("SESSION_COOKIE_SECURE", false)
	viper.SetDefault("POLL_INTERVAL", "8s")
	viper.SetDefault("DASHBOARD_IDLE_TIMEOUT", "5m")
	viper.SetDefault("COMMISSION_PCT", 10)

	config := &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Port:       viper.GetString("PORT"),
			Debug:      viper.GetBool("DEBUG"),
			LogPath:    viper.GetString("LOG_PATH"),
			CORSOrigin: viper.GetString("CORS_ORIGIN"),
		},
		Database: DatabaseConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			Name:          viper.GetString("DB_NAME"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASS"),
			MaxConns:      viper.GetInt32("DB_MAX_CONNS"),
			RunMigrations: viper.GetBool("DB_MIGRATE"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
			Timeout: viper.GetDuration("GATEWAY_TIMEOUT"),
		},
		Session: SessionConfig{
			ExpiryHours:  viper.GetInt("SESSION_EXPIRY_HOURS"),
			CookieSecure: viper.GetBool("SESSION_COOKIE_SECURE"),
		},
		Dashboard: DashboardConfig{
			PollInterval:  viper.GetDuration("POLL_INTERVAL"),
			IdleTimeout:   viper.GetDuration("DASHBOARD_IDLE_TIMEOUT"),
			CommissionPct: viper.GetFloat64("COMMISSION_PCT"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("REDIS_URL"),
		},
	}

	return config, nil
}
