package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvProduction = "production"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"3000"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	LogMode string `envconfig:"LOG_MODE" default:"development"`

	StoreDriver    string        `envconfig:"STORE_DRIVER" default:"memory"`
	DatabaseURL    string        `envconfig:"DATABASE_URL"`
	DBMaxOpenConns int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBConnLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	AutoMigrate    bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`

	OpenAIAPIKey    string        `envconfig:"OPENAI_API_KEY"`
	OpenAIModel     string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIBaseURL   string        `envconfig:"OPENAI_BASE_URL"`
	AITimeout       time.Duration `envconfig:"AI_TIMEOUT" default:"30s"`
	AIProviderRPS   float64       `envconfig:"AI_PROVIDER_RPS" default:"0"`
	AIProviderBurst int           `envconfig:"AI_PROVIDER_BURST" default:"5"`

	JWTSecret  string        `envconfig:"JWT_SECRET"`
	JWTTTL     time.Duration `envconfig:"JWT_TTL" default:"168h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`

	RateLimitEnabled bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RateLimitWindow  time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`
	RateLimitMax     int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"100"`
	RedisAddr        string        `envconfig:"REDIS_ADDR"`

	OtelEnabled     bool              `envconfig:"OTEL_ENABLED" default:"false"`
	OtelServiceName string            `envconfig:"OTEL_SERVICE_NAME" default:"studynotes-api"`
	OtelEndpoint    string            `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelInsecure    bool              `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"false"`
	OtelHeaders     map[string]string `envconfig:"OTEL_EXPORTER_OTLP_HEADERS"`
	OtelSampleRatio float64           `envconfig:"OTEL_TRACES_SAMPLER_RATIO" default:"1"`
	Version         string            `envconfig:"APP_VERSION" default:"dev"`
}

func (c Config) Production() bool { return strings.EqualFold(c.AppEnv, EnvProduction) }

func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// LoadConfig reads envFiles (missing ones are skipped) and then the process
// environment. Variables already set win over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreMemory, StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of memory, postgres, sqlite (got %q)", c.StoreDriver)
	}
	if c.RateLimitWindow <= 0 || c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW and RATE_LIMIT_MAX_REQUESTS must be positive")
	}
	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
	return nil
}
