package config

import (
	"time"

	"github.com/seu-repo/habitua/internal/domain"
)

type Config struct {
	App            AppConfig            `mapstructure:"app"`
	HTTP           HTTPConfig           `mapstructure:"http"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	NATS           NATSConfig           `mapstructure:"nats"`
	RabbitMQ       RabbitMQConfig       `mapstructure:"rabbitmq"`
	Queue          QueueConfig          `mapstructure:"queue"`
	OpenTelemetry  OpenTelemetryConfig  `mapstructure:"opentelemetry"`
	Prometheus     PrometheusConfig     `mapstructure:"prometheus"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	CORS           CORSConfig           `mapstructure:"cors"`
	Cache          CacheConfig          `mapstructure:"cache"`
	Game           GameConfig           `mapstructure:"game"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port           int           `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	LogQueries      bool          `mapstructure:"log_queries"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
}

type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type RabbitMQConfig struct {
	URL string `mapstructure:"url"`
}

// QueueConfig selects which broker backs the message queue adapter.
// Provider is "nats" or "rabbitmq".
type QueueConfig struct {
	Provider string `mapstructure:"provider"`
}

type OpenTelemetryConfig struct {
	Enabled     bool              `mapstructure:"enabled"`
	Jaeger      JaegerConfig      `mapstructure:"jaeger"`
	ServiceName string            `mapstructure:"service_name"`
	Attributes  map[string]string `mapstructure:"attributes"`
}

type JaegerConfig struct {
	Endpoint     string  `mapstructure:"endpoint"`
	SamplerType  string  `mapstructure:"sampler_type"`
	SamplerParam float64 `mapstructure:"sampler_param"`
}

type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Port    int    `mapstructure:"port"`
}

type LoggingConfig struct {
	Level    string          `mapstructure:"level"`
	Format   string          `mapstructure:"format"`
	Output   string          `mapstructure:"output"`
	Sampling LoggingSampling `mapstructure:"sampling"`
}

type LoggingSampling struct {
	Enabled    bool `mapstructure:"enabled"`
	Initial    int  `mapstructure:"initial"`
	Thereafter int  `mapstructure:"thereafter"`
}

type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      int           `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
}

type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	ExposeHeaders  []string `mapstructure:"expose_headers"`
	MaxAge         int      `mapstructure:"max_age"`
	Credentials    bool     `mapstructure:"credentials"`
}

type CacheConfig struct {
	HabitConfigTTL time.Duration `mapstructure:"habit_config_ttl"`
	ProfileTTL     time.Duration `mapstructure:"profile_ttl"`
}

// GameConfig holds the progression economy tunables. Zero values fall
// back to the defaults in domain.DefaultGameConfig.
type GameConfig struct {
	BaseStat         int                `mapstructure:"base_stat"`
	WeightMultiplier int                `mapstructure:"weight_multiplier"`
	StartingLevel    int                `mapstructure:"starting_level"`
	StartingCoins    int                `mapstructure:"starting_coins"`
	LevelUpStatBonus int                `mapstructure:"level_up_stat_bonus"`
	NormalCards      domain.CardAmounts `mapstructure:"normal_cards"`
	GuaranteedCards  domain.CardAmounts `mapstructure:"guaranteed_cards"`
	CardDismissDelay time.Duration      `mapstructure:"card_dismiss_delay"`
	SessionTTL       time.Duration      `mapstructure:"session_ttl"`
}

// GameRules converts the configured economy into a domain.GameConfig,
// keeping defaults for any field left unset.
func (g GameConfig) GameRules() *domain.GameConfig {
	rules := domain.DefaultGameConfig()
	if g.BaseStat > 0 {
		rules.BaseStat = g.BaseStat
	}
	if g.WeightMultiplier > 0 {
		rules.WeightMultiplier = g.WeightMultiplier
	}
	if g.StartingLevel > 0 {
		rules.StartingLevel = g.StartingLevel
	}
	if g.StartingCoins > 0 {
		rules.StartingCoins = g.StartingCoins
	}
	if g.LevelUpStatBonus > 0 {
		rules.LevelUpStatBonus = g.LevelUpStatBonus
	}
	if g.NormalCards != (domain.CardAmounts{}) {
		rules.NormalCards = g.NormalCards
	}
	if g.GuaranteedCards != (domain.CardAmounts{}) {
		rules.GuaranteedCards = g.GuaranteedCards
	}
	if g.CardDismissDelay > 0 {
		rules.CardDismissDelay = g.CardDismissDelay
	}
	if g.SessionTTL > 0 {
		rules.SessionTTL = g.SessionTTL
	}
	return rules
}
