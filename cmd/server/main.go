package main

import (
	"fmt"
	"log"
	"os"

	"github.com/crawlproduct/backend/config"
	httpDelivery "github.com/crawlproduct/backend/internal/delivery/http"
	"github.com/crawlproduct/backend/internal/infrastructure/openai"
	"github.com/crawlproduct/backend/internal/infrastructure/store"
	"github.com/crawlproduct/backend/internal/infrastructure/storefront"
	"github.com/crawlproduct/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CrawlProduct Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	productStore := store.NewMemoryStore()

	fetcher := storefront.NewClient(cfg.Crawler.UserAgent, cfg.Crawler.Timeout)

	completions := openai.NewClient(openai.Config{
		Endpoint:    cfg.OpenAI.Endpoint,
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
		Timeout:     cfg.OpenAI.Timeout,
		PerMinute:   cfg.OpenAI.PerMinute,
	})
	log.Printf("Completion backend: %s (model: %s)", cfg.OpenAI.Endpoint, cfg.OpenAI.Model)

	// Initialize usecase layer
	enrichService := usecase.NewEnrichService(completions, productStore)
	crawlService := usecase.NewCrawlService(
		fetcher,
		productStore,
		enrichService,
		usecase.CrawlServiceConfig{
			EnrichOnCrawl:     cfg.Enrich.EnrichOnCrawl,
			EnrichConcurrency: cfg.Enrich.Concurrency,
		},
	)

	log.Printf("Enrichment: on_crawl=%v, concurrency=%d",
		cfg.Enrich.EnrichOnCrawl, cfg.Enrich.Concurrency)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(crawlService, enrichService, productStore)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
