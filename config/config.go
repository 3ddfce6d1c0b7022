package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	OpenAI  OpenAIConfig
	Crawler CrawlerConfig
	Enrich  EnrichConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	APIKey         string   `mapstructure:"api_key"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenAIConfig holds completion backend configuration
type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Endpoint    string        `mapstructure:"endpoint"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
	PerMinute   int           `mapstructure:"per_minute"`
}

// CrawlerConfig holds page fetch configuration
type CrawlerConfig struct {
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// EnrichConfig holds crawl-time enrichment configuration
type EnrichConfig struct {
	// EnrichOnCrawl enables enrichment of every variant during a crawl.
	EnrichOnCrawl bool `mapstructure:"on_crawl"`
	// Concurrency bounds the number of in-flight enrichment calls per crawl.
	Concurrency int `mapstructure:"concurrency"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/crawlproduct/")

	// Environment variable settings
	v.SetEnvPrefix("CRAWLPRODUCT")
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
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// OpenAI defaults. Secrets default to empty so env-only values are
	// visible to Unmarshal; validate rejects them when still unset.
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.endpoint", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 1000)
	v.SetDefault("openai.temperature", 0.1)
	v.SetDefault("openai.timeout", "60s")
	v.SetDefault("openai.per_minute", 60)

	// Crawler defaults
	v.SetDefault("crawler.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("crawler.timeout", "30s")

	// Enrichment defaults
	v.SetDefault("enrich.on_crawl", false)
	v.SetDefault("enrich.concurrency", 4)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OpenAI.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required (set CRAWLPRODUCT_OPENAI_API_KEY)")
	}

	if config.OpenAI.Endpoint == "" {
		return fmt.Errorf("OpenAI endpoint is required (set CRAWLPRODUCT_OPENAI_ENDPOINT)")
	}

	if config.Server.APIKey == "" {
		return fmt.Errorf("server API key is required (set CRAWLPRODUCT_SERVER_API_KEY)")
	}

	if config.Enrich.Concurrency < 1 {
		return fmt.Errorf("enrich concurrency must be at least 1, got: %d", config.Enrich.Concurrency)
	}

	return nil
}
