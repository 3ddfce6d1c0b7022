package config

import (
	"os"
	"testing"
	"time"
)

// configEnvVars is every environment variable the loader reads; cleared
// between tests so one case cannot leak into the next.
var configEnvVars = []string{
	"CRAWLPRODUCT_SERVER_PORT",
	"CRAWLPRODUCT_SERVER_ENVIRONMENT",
	"CRAWLPRODUCT_SERVER_API_KEY",
	"CRAWLPRODUCT_OPENAI_API_KEY",
	"CRAWLPRODUCT_OPENAI_ENDPOINT",
	"CRAWLPRODUCT_OPENAI_MODEL",
	"CRAWLPRODUCT_OPENAI_MAX_TOKENS",
	"CRAWLPRODUCT_OPENAI_TIMEOUT",
	"CRAWLPRODUCT_OPENAI_PER_MINUTE",
	"CRAWLPRODUCT_CRAWLER_USER_AGENT",
	"CRAWLPRODUCT_CRAWLER_TIMEOUT",
	"CRAWLPRODUCT_ENRICH_ON_CRAWL",
	"CRAWLPRODUCT_ENRICH_CONCURRENCY",
}

func cleanupEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for _, key := range configEnvVars {
			os.Unsetenv(key)
		}
	})
}

// setRequired sets the secrets without which validation fails.
func setRequired(t *testing.T) {
	t.Helper()
	os.Setenv("CRAWLPRODUCT_OPENAI_API_KEY", "test-openai-key")
	os.Setenv("CRAWLPRODUCT_OPENAI_ENDPOINT", "https://api.example.com/v1/chat/completions")
	os.Setenv("CRAWLPRODUCT_SERVER_API_KEY", "test-server-key")
}

func TestLoad_Defaults(t *testing.T) {
	cleanupEnv(t)
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("OpenAI.Model = %s, want gpt-4o-mini", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.MaxTokens != 1000 {
		t.Errorf("OpenAI.MaxTokens = %d, want 1000", cfg.OpenAI.MaxTokens)
	}
	if cfg.OpenAI.Timeout != 60*time.Second {
		t.Errorf("OpenAI.Timeout = %v, want 60s", cfg.OpenAI.Timeout)
	}
	if cfg.Crawler.Timeout != 30*time.Second {
		t.Errorf("Crawler.Timeout = %v, want 30s", cfg.Crawler.Timeout)
	}
	if cfg.Enrich.EnrichOnCrawl {
		t.Error("Enrich.EnrichOnCrawl = true, want false by default")
	}
	if cfg.Enrich.Concurrency != 4 {
		t.Errorf("Enrich.Concurrency = %d, want 4", cfg.Enrich.Concurrency)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	cleanupEnv(t)
	setRequired(t)
	os.Setenv("CRAWLPRODUCT_SERVER_PORT", "9090")
	os.Setenv("CRAWLPRODUCT_SERVER_ENVIRONMENT", "production")
	os.Setenv("CRAWLPRODUCT_OPENAI_MODEL", "gpt-4o")
	os.Setenv("CRAWLPRODUCT_ENRICH_ON_CRAWL", "true")
	os.Setenv("CRAWLPRODUCT_ENRICH_CONCURRENCY", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Environment != "production" {
		t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
	}
	if cfg.Server.APIKey != "test-server-key" {
		t.Errorf("Server.APIKey = %s, want test-server-key", cfg.Server.APIKey)
	}
	if cfg.OpenAI.APIKey != "test-openai-key" {
		t.Errorf("OpenAI.APIKey = %s, want test-openai-key", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("OpenAI.Model = %s, want gpt-4o", cfg.OpenAI.Model)
	}
	if !cfg.Enrich.EnrichOnCrawl {
		t.Error("Enrich.EnrichOnCrawl = false, want true")
	}
	if cfg.Enrich.Concurrency != 8 {
		t.Errorf("Enrich.Concurrency = %d, want 8", cfg.Enrich.Concurrency)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{name: "openai api key", omit: "CRAWLPRODUCT_OPENAI_API_KEY"},
		{name: "openai endpoint", omit: "CRAWLPRODUCT_OPENAI_ENDPOINT"},
		{name: "server api key", omit: "CRAWLPRODUCT_SERVER_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanupEnv(t)
			setRequired(t)
			os.Unsetenv(tt.omit)

			if _, err := Load(); err == nil {
				t.Errorf("Load() error = nil, want failure without %s", tt.omit)
			}
		})
	}
}

func TestLoad_InvalidConcurrency(t *testing.T) {
	cleanupEnv(t)
	setRequired(t)
	os.Setenv("CRAWLPRODUCT_ENRICH_CONCURRENCY", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want failure for zero concurrency")
	}
}
