package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// RedisOptions cấu hình kết nối Redis
type RedisOptions struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Username string `env:"REDIS_USER"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Config chứa toàn bộ cấu hình của dashboard
type Config struct {
	APIURL         string        `env:"API_URL,required,notEmpty"`
	Port           string        `env:"PORT" envDefault:"8083"`
	GinMode        string        `env:"GIN_MODE" envDefault:"release"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`

	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	ScreenStateTTL time.Duration `env:"SCREEN_STATE_TTL" envDefault:"30m"`
	CookieName     string        `env:"SESSION_COOKIE" envDefault:"sid"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`

	CorsOrigins       []string `env:"CORS_ORIGINS" envSeparator:","`
	KeepAliveSchedule string   `env:"KEEPALIVE_SCHEDULE" envDefault:"@every 5m"`

	Redis RedisOptions
}

// LoadEnv nạp biến môi trường từ tệp `.env`
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

// Load nạp .env rồi parse cấu hình từ biến môi trường
func Load() (*Config, error) {
	LoadEnv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.BackendTimeout <= 0 {
		return nil, fmt.Errorf("BACKEND_TIMEOUT must be positive, got %s", cfg.BackendTimeout)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.ScreenStateTTL <= 0 {
		return nil, fmt.Errorf("SCREEN_STATE_TTL must be positive, got %s", cfg.ScreenStateTTL)
	}
	return cfg, nil
}
