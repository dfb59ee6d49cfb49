package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"healthadvisor.app/pkg/errors"
	"healthadvisor.app/pkg/validation"
)

const (
	maxRedisDB       = 15
	maxPortNumber    = 65535
	maxCacheTTL      = 24 * time.Hour
	maxProviderDelay = 2 * time.Minute
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Providers ProvidersConfig `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Engine    EngineConfig    `split_words:"true"`
	Logging   LoggingConfig   `split_words:"true"`
	Sentry    SentryConfig    `split_words:"true"`
}

type ServerConfig struct {
	Port               int      `envconfig:"SERVER_PORT" default:"8082"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// ProvidersConfig describes the two upstream data sources
type ProvidersConfig struct {
	AirQualityBaseURL string        `envconfig:"AIR_QUALITY_BASE_URL" default:"http://air-quality-service:8080"`
	WeatherBaseURL    string        `envconfig:"WEATHER_BASE_URL" default:"http://weather-service:8081"`
	Timeout           time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"10s"`
	DefaultCountry    string        `envconfig:"PROVIDER_DEFAULT_COUNTRY" default:"FR"`
	CacheEnabled      bool          `envconfig:"PROVIDER_CACHE_ENABLED" default:"false"`
	CacheTTL          time.Duration `envconfig:"PROVIDER_CACHE_TTL" default:"5m"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// EngineConfig holds the demo latency knob; off unless explicitly enabled.
type EngineConfig struct {
	SimulatedLatency    bool          `envconfig:"ENGINE_SIMULATED_LATENCY" default:"false"`
	SimulatedLatencyMin time.Duration `envconfig:"ENGINE_SIMULATED_LATENCY_MIN" default:"50ms"`
	SimulatedLatencyMax time.Duration `envconfig:"ENGINE_SIMULATED_LATENCY_MAX" default:"200ms"`
}

type LoggingConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	FilePath string `envconfig:"LOG_FILE_PATH"`
}

type SentryConfig struct {
	DSN         string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"development"`
}

// Enabled reports whether error reporting should be initialized
func (s SentryConfig) Enabled() bool {
	return strings.TrimSpace(s.DSN) != ""
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Providers.Validate(); err != nil {
		return err
	}
	if c.Providers.CacheEnabled {
		if err := c.Cache.Validate(); err != nil {
			return err
		}
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	if len(s.CORSAllowedOrigins) == 0 {
		return errors.NewConfigurationError("CORS_ALLOWED_ORIGINS cannot be empty", nil)
	}
	for _, origin := range s.CORSAllowedOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return errors.NewConfigurationError(fmt.Sprintf("CORS_ALLOWED_ORIGINS entry %q must be * or an http(s) origin", origin), nil)
		}
	}
	return nil
}

func (p *ProvidersConfig) Validate() error {
	if err := validateBaseURL("AIR_QUALITY_BASE_URL", p.AirQualityBaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("WEATHER_BASE_URL", p.WeatherBaseURL); err != nil {
		return err
	}
	if p.Timeout <= 0 || p.Timeout > maxProviderDelay {
		return errors.NewConfigurationError("PROVIDER_TIMEOUT must be positive and at most 2m", nil)
	}
	if !validation.IsCountryCode(p.DefaultCountry) {
		return errors.NewConfigurationError("PROVIDER_DEFAULT_COUNTRY must be a two-letter country code", nil)
	}
	if p.CacheEnabled && (p.CacheTTL <= 0 || p.CacheTTL > maxCacheTTL) {
		return errors.NewConfigurationError("PROVIDER_CACHE_TTL must be positive and at most 24h", nil)
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(fmt.Sprintf("%s cannot be empty", name), nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(fmt.Sprintf("%s must start with http:// or https://", name), nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (e *EngineConfig) Validate() error {
	if !e.SimulatedLatency {
		return nil
	}
	if e.SimulatedLatencyMin < 0 {
		return errors.NewConfigurationError("ENGINE_SIMULATED_LATENCY_MIN cannot be negative", nil)
	}
	if e.SimulatedLatencyMax < e.SimulatedLatencyMin {
		return errors.NewConfigurationError("ENGINE_SIMULATED_LATENCY_MAX must not be below ENGINE_SIMULATED_LATENCY_MIN", nil)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
}
