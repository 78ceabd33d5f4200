package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	USDA     USDAConfig
	Database DatabaseConfig
	Cache    CacheConfig
	AI       AIConfig
	Kafka    KafkaConfig
	Assets   AssetsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// USDAConfig holds Local Food Portal API configuration. A missing API key is
// not a startup error: the explore pipeline degrades to the bundled fallback
// data and surfaces a notice instead.
type USDAConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	RadiusMiles float64       `mapstructure:"radius_miles"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Debug       bool          `mapstructure:"debug"`
}

// DatabaseConfig holds the Postgres connection settings
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// AIConfig holds the generative advisor settings. When the API key is empty
// the advisor endpoints report unavailability and geocoded explore falls
// back, but the server still starts.
type AIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// KafkaConfig holds the order notification broker settings. No brokers
// means notifications are logged locally instead of published.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// AssetsConfig holds the MinIO object storage settings for farm imagery.
// When the endpoint is empty, static placeholder URLs are served.
type AssetsConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/farme/")

	// Environment variable settings
	v.SetEnvPrefix("FARME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// USDA defaults: an empty api_key default registers the key with viper
	// so the env override binds; the missing credential itself is tolerated.
	v.SetDefault("usda.api_key", "")
	v.SetDefault("usda.base_url", "https://www.usdalocalfoodportal.com")
	v.SetDefault("usda.radius_miles", 50)
	v.SetDefault("usda.timeout", "10s")
	v.SetDefault("usda.debug", false)

	// Database defaults
	v.SetDefault("database.url", "")

	// Cache defaults
	v.SetDefault("cache.ttl", "720h") // 30 days
	v.SetDefault("cache.cleanup_interval", "10m")

	// AI defaults
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.5-flash")

	// Kafka defaults
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "farm-order-notifications")

	// Asset defaults
	v.SetDefault("assets.endpoint", "")
	v.SetDefault("assets.access_key", "")
	v.SetDefault("assets.secret_key", "")
	v.SetDefault("assets.bucket", "farm-assets")
	v.SetDefault("assets.use_ssl", true)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.USDA.BaseURL == "" {
		return fmt.Errorf("USDA base URL is required")
	}

	if config.USDA.RadiusMiles <= 0 {
		return fmt.Errorf("USDA search radius must be positive, got: %v", config.USDA.RadiusMiles)
	}

	if config.Assets.Endpoint != "" && (config.Assets.AccessKey == "" || config.Assets.SecretKey == "") {
		return fmt.Errorf("asset storage credentials are required when an endpoint is set")
	}

	return nil
}
