package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Report    ReportConfig
	OrderTime OrderTimeConfig `mapstructure:"ordertime"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Metrics        bool     `mapstructure:"metrics"`
}

// ReportConfig holds the export endpoint used by the report pipeline
type ReportConfig struct {
	URL                  string        `mapstructure:"url"`
	Token                string        `mapstructure:"token"`
	Username             string        `mapstructure:"username"`
	Password             string        `mapstructure:"password"`
	MaxAge               int           `mapstructure:"max_age"`                // seconds
	StaleWhileRevalidate int           `mapstructure:"stale_while_revalidate"` // seconds
	Timeout              time.Duration `mapstructure:"timeout"`
}

// OrderTimeConfig holds list API configuration for the live pipeline
type OrderTimeConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Username  string        `mapstructure:"username"`
	Password  string        `mapstructure:"password"`
	PageSize  int           `mapstructure:"page_size"`
	MaxPages  int           `mapstructure:"max_pages"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second, 0 = unlimited
	Burst     int           `mapstructure:"burst"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Types     EntityTypes   `mapstructure:"types"`
}

// EntityTypes names the list API record types
type EntityTypes struct {
	Inventory string `mapstructure:"inventory"`
	LotSerial string `mapstructure:"lot_serial"`
	Item      string `mapstructure:"item"`
	Bin       string `mapstructure:"bin"`
}

// Load loads configuration from a .env file, environment variables and config files.
// Pipeline credentials are not required here; a missing one is reported when
// its endpoint is called.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/stockview/")

	// Environment variable settings
	v.SetEnvPrefix("STOCKVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. Every key gets a default so
// AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.metrics", true)

	// Report pipeline defaults
	v.SetDefault("report.url", "")
	v.SetDefault("report.token", "")
	v.SetDefault("report.username", "")
	v.SetDefault("report.password", "")
	v.SetDefault("report.max_age", 60)
	v.SetDefault("report.stale_while_revalidate", 300)
	v.SetDefault("report.timeout", "30s")

	// Live pipeline defaults
	v.SetDefault("ordertime.base_url", "")
	v.SetDefault("ordertime.api_key", "")
	v.SetDefault("ordertime.username", "")
	v.SetDefault("ordertime.password", "")
	v.SetDefault("ordertime.page_size", 500)
	v.SetDefault("ordertime.max_pages", 200)
	v.SetDefault("ordertime.rate_limit", 10)
	v.SetDefault("ordertime.burst", 10)
	v.SetDefault("ordertime.timeout", "30s")
	v.SetDefault("ordertime.types.inventory", "InventoryBalance")
	v.SetDefault("ordertime.types.lot_serial", "LotOrSerial")
	v.SetDefault("ordertime.types.item", "PartItem")
	v.SetDefault("ordertime.types.bin", "Bin")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set STOCKVIEW_SERVER_PORT)")
	}

	if config.OrderTime.PageSize <= 0 {
		return fmt.Errorf("ordertime page size must be positive, got: %d", config.OrderTime.PageSize)
	}

	if config.OrderTime.MaxPages <= 0 {
		return fmt.Errorf("ordertime max pages must be positive, got: %d", config.OrderTime.MaxPages)
	}

	if config.OrderTime.RateLimit < 0 {
		return fmt.Errorf("ordertime rate limit cannot be negative, got: %v", config.OrderTime.RateLimit)
	}

	if config.Report.MaxAge < 0 || config.Report.StaleWhileRevalidate < 0 {
		return fmt.Errorf("report cache lifetimes cannot be negative")
	}

	return nil
}
