package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries everything the gateway needs at startup. Provider keys are
// all optional; a missing key routes that provider to synthetic data.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	RedisURL      string        `envconfig:"REDIS_URL" default:"redis://localhost:6379"`
	CacheVersion  string        `envconfig:"CACHE_VERSION" default:"v1"`
	CacheTTLNews  time.Duration `envconfig:"CACHE_TTL_NEWS" default:"30m"`
	CacheTTLQuote time.Duration `envconfig:"CACHE_TTL_QUOTE" default:"60s"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	AITimeout      time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`

	OilAPIKey        string `envconfig:"OIL_PRICE_API_KEY"`
	MetalAPIKey      string `envconfig:"METAL_PRICE_API_KEY"`
	TwelveDataAPIKey string `envconfig:"TWELVE_DATA_API_KEY"`
	NewsAPIKey       string `envconfig:"NEWS_API_KEY"`
	OpenAIAPIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel      string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
