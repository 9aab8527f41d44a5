package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

type Config struct {
	GinMode   string
	Port      int
	LogLevel  string
	LogFormat string

	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnectAttempts int
	DBConnectDelay    time.Duration

	ShutdownTimeout time.Duration

	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int

	OTLPEndpoint string
	ServiceName  string
}

// Load reads settings from an optional .env file, an optional config.yaml and
// the process environment, in increasing order of precedence. Keys it does not
// know about are ignored.
func Load() (*Config, error) {
	loadEnvFile(getenv("ENV_FILE", ".env"))

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		GinMode:   v.GetString("GIN_MODE"),
		Port:      v.GetInt("PORT"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		DatabaseURL:       v.GetString("DATABASE_URL"),
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		DBConnectAttempts: v.GetInt("DB_CONNECT_ATTEMPTS"),
		DBConnectDelay:    v.GetDuration("DB_CONNECT_DELAY"),

		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),

		RateLimitEnabled: v.GetBool("RATE_LIMIT_ENABLED"),
		RateLimitRPS:     v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),

		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  v.GetString("OTEL_SERVICE_NAME"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return ErrMissingDatabaseURL
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}

	if c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0 {
		return fmt.Errorf("db pool sizes must not be negative (open=%d, idle=%d)",
			c.DBMaxOpenConns, c.DBMaxIdleConns)
	}

	if c.DBConnectAttempts < 1 {
		return fmt.Errorf("DB_CONNECT_ATTEMPTS must be at least 1, got %d", c.DBConnectAttempts)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q (expected text or json)", c.LogFormat)
	}

	if c.RateLimitEnabled && (c.RateLimitRPS <= 0 || c.RateLimitBurst < 1) {
		return fmt.Errorf("rate limit needs RATE_LIMIT_RPS > 0 and RATE_LIMIT_BURST >= 1")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("DB_CONNECT_ATTEMPTS", 10)
	v.SetDefault("DB_CONNECT_DELAY", 2*time.Second)

	v.SetDefault("SHUTDOWN_TIMEOUT", 20*time.Second)

	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 2)
	v.SetDefault("RATE_LIMIT_BURST", 4)

	v.SetDefault("OTEL_SERVICE_NAME", "bookshelf-api")
}

func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}

	if err := godotenv.Load(path); err != nil {
		log.Printf("warning: could not load %s: %v", path, err)
		return
	}

	log.Printf("loaded environment from %s", path)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
