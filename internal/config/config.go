package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Generator   GeneratorConfig `mapstructure:"generator"`
	Forecast    ForecastConfig  `mapstructure:"forecast"`
	Cache       CacheConfig     `mapstructure:"cache"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GeneratorConfig controls the synthetic series defaults. A zero seed means
// "seed from the clock", so every dashboard session sees fresh data; a fixed
// seed pins the data for demos and tests.
type GeneratorConfig struct {
	Seed            int64  `mapstructure:"seed"`
	DefaultCount    int    `mapstructure:"default_count"`
	DefaultInterval string `mapstructure:"default_interval"`
	MaxCount        int    `mapstructure:"max_count"`
}

type ForecastConfig struct {
	DefaultPeriods int `mapstructure:"default_periods"`
	MaxPeriods     int `mapstructure:"max_periods"`
}

type CacheConfig struct {
	SeriesTTL string `mapstructure:"series_ttl"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.SetEnvPrefix("salespulse")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Normalize environment to lowercase for consistent comparison
	config.Environment = strings.ToLower(config.Environment)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the cross-field constraints that viper cannot express.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in (0, 65535], got %d", c.Server.Port)
	}
	if c.Generator.DefaultCount <= 0 {
		return fmt.Errorf("generator default_count must be positive, got %d", c.Generator.DefaultCount)
	}
	if c.Generator.MaxCount < c.Generator.DefaultCount {
		return fmt.Errorf("generator max_count %d is below default_count %d", c.Generator.MaxCount, c.Generator.DefaultCount)
	}
	switch c.Generator.DefaultInterval {
	case "day", "week", "month":
	default:
		return fmt.Errorf("generator default_interval must be day, week, or month, got %q", c.Generator.DefaultInterval)
	}
	if c.Forecast.MaxPeriods < c.Forecast.DefaultPeriods {
		return fmt.Errorf("forecast max_periods %d is below default_periods %d", c.Forecast.MaxPeriods, c.Forecast.DefaultPeriods)
	}
	if c.Cache.SeriesTTL != "" {
		if _, err := time.ParseDuration(c.Cache.SeriesTTL); err != nil {
			return fmt.Errorf("invalid cache series_ttl: %w", err)
		}
	}
	return nil
}

// SeriesTTLDuration returns the parsed cache TTL, falling back to 15 minutes.
func (c *CacheConfig) SeriesTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.SeriesTTL)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database
	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "salespulse")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_conns", 10)

	// Redis
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Generator
	viper.SetDefault("generator.seed", 0)
	viper.SetDefault("generator.default_count", 24)
	viper.SetDefault("generator.default_interval", "month")
	viper.SetDefault("generator.max_count", 1096)

	// Forecast
	viper.SetDefault("forecast.default_periods", 12)
	viper.SetDefault("forecast.max_periods", 60)

	// Cache
	viper.SetDefault("cache.series_ttl", "15m")
}
