package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config — конфигурация сервиса, собираемая из переменных окружения.
type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	DatabaseURL     string `env:"DATABASE_URL"`
	TestDatabaseURL string `env:"TEST_DATABASE_URL"`
	RedisAddr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`

	MaxWinnersPerPayout    int     `env:"MAX_WINNERS_PER_PAYOUT" envDefault:"2"`
	DefaultPayoutThreshold float64 `env:"DEFAULT_PAYOUT_THRESHOLD" envDefault:"500000"`

	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	RateLimitWindowMS    int `env:"RATE_LIMIT_WINDOW_MS" envDefault:"900000"`
	RateLimitMaxRequests int `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`

	StatsCacheTTLSeconds int `env:"STATS_CACHE_TTL_SECONDS" envDefault:"60"`

	// Легаси-поведение: отсутствующий участник отдаётся как 500 с текстом "not found".
	// Флаг переключает на честный 404.
	MemberNotFound404 bool `env:"MEMBER_NOT_FOUND_404" envDefault:"false"`

	// Устаревшие мутирующие эндпоинты: по умолчанию no-op с кодом 200,
	// при включении — 410 Gone.
	DeprecatedGone bool `env:"DEPRECATED_GONE" envDefault:"false"`

	JWTAccessSecret  string `env:"JWT_ACCESS_SECRET"`
	JWTRefreshSecret string `env:"JWT_REFRESH_SECRET"`
}

// Load разбирает переменные окружения в Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction сообщает, работает ли сервис в продакшене (скрываем детали ошибок).
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Origins возвращает список разрешённых CORS-источников.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}

// RateLimitWindow возвращает окно rate-лимитера как Duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMS) * time.Millisecond
}

// StatsCacheTTL возвращает TTL кэша статистики.
func (c *Config) StatsCacheTTL() time.Duration {
	return time.Duration(c.StatsCacheTTLSeconds) * time.Second
}
