package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	TMDB      TMDBConfig
	Database  DatabaseConfig
	RabbitMQ  RabbitMQConfig
	TTL       TTLConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type TMDBConfig struct {
	BaseURL     string        `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
	Token       string        `envconfig:"TMDB_API_TOKEN" required:"true"`
	Timeout     time.Duration `envconfig:"TMDB_TIMEOUT" default:"10s"`
	MinInterval time.Duration `envconfig:"TMDB_MIN_INTERVAL" default:"250ms"`
	MaxRetries  int           `envconfig:"TMDB_MAX_RETRIES" default:"3"`
}

type DatabaseConfig struct {
	// Host left empty disables the analytics store entirely.
	Host     string `envconfig:"POSTGRES_HOST" default:""`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"reelgate"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"reelgate"`
	DBName   string `envconfig:"POSTGRES_DB" default:"reelgate"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type RabbitMQConfig struct {
	// Host left empty disables the invalidation consumer.
	Host     string `envconfig:"RABBITMQ_HOST" default:""`
	Port     int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User     string `envconfig:"RABBITMQ_USER" default:"reelgate"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"reelgate"`
	VHost    string `envconfig:"RABBITMQ_VHOST" default:"/"`
}

func (c RabbitMQConfig) Enabled() bool {
	return c.Host != ""
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

// TTLConfig carries the per-category cache lifetimes. Overridable via
// environment, fixed after startup.
type TTLConfig struct {
	Trending          time.Duration `envconfig:"TTL_TRENDING" default:"1h"`
	Popular           time.Duration `envconfig:"TTL_POPULAR" default:"2h"`
	TopRated          time.Duration `envconfig:"TTL_TOP_RATED" default:"4h"`
	ContentDetails    time.Duration `envconfig:"TTL_CONTENT_DETAILS" default:"24h"`
	Credits           time.Duration `envconfig:"TTL_CREDITS" default:"24h"`
	Similar           time.Duration `envconfig:"TTL_SIMILAR" default:"12h"`
	Recommendations   time.Duration `envconfig:"TTL_RECOMMENDATIONS" default:"12h"`
	SearchResults     time.Duration `envconfig:"TTL_SEARCH_RESULTS" default:"30m"`
	SearchSuggestions time.Duration `envconfig:"TTL_SEARCH_SUGGESTIONS" default:"30m"`
	Genres            time.Duration `envconfig:"TTL_GENRES" default:"168h"`
	StreamSources     time.Duration `envconfig:"TTL_STREAM_SOURCES" default:"5m"`
}

type RateLimitConfig struct {
	Window      time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	MaxRequests int           `envconfig:"RATE_LIMIT_MAX" default:"120"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadRabbitMQ loads only the queue connection settings. Tooling that
// talks to the broker uses this so it does not inherit the API server's
// required variables, such as the upstream token.
func LoadRabbitMQ() (*RabbitMQConfig, error) {
	var cfg RabbitMQConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load rabbitmq config: %w", err)
	}
	return &cfg, nil
}
