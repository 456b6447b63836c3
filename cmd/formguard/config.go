package main

import (
	"time"

	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/redis"
)

// Config is the process configuration, read from the environment and an
// optional .env file.
type Config struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL"`
	RulesFile string `env:"RULES_FILE"`

	HTTP      httpserver.Config
	Redis     redis.Config
	Countries CountriesConfig
}

// CountriesConfig configures the country selector source. Deadline bounds a
// whole fetch, retries included; keep it below HTTP_WRITE_TIMEOUT so
// GET /countries can still answer with the fallback.
type CountriesConfig struct {
	BaseURL     string        `env:"COUNTRIES_BASE_URL" envDefault:"https://restcountries.com"`
	Timeout     time.Duration `env:"COUNTRIES_TIMEOUT" envDefault:"10s"`
	MaxRetries  int           `env:"COUNTRIES_MAX_RETRIES" envDefault:"2"`
	Deadline    time.Duration `env:"COUNTRIES_DEADLINE" envDefault:"12s"`
	Language    string        `env:"COUNTRIES_LANGUAGE" envDefault:"en"`
	CacheTTL    time.Duration `env:"COUNTRIES_CACHE_TTL" envDefault:"24h"`
	FailureTTL  time.Duration `env:"COUNTRIES_FAILURE_TTL" envDefault:"1m"`
	RedisKey    string        `env:"COUNTRIES_REDIS_KEY" envDefault:"formguard:countries"`
	WarmOnStart bool          `env:"COUNTRIES_WARM_ON_START" envDefault:"true"`
}
