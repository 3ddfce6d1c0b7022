package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/crawlproduct/backend/internal/domain"
	"github.com/crawlproduct/backend/internal/infrastructure/storefront"
)

// Enricher produces a transformed record from a canonical one.
type Enricher interface {
	Enrich(ctx context.Context, product domain.Product) (*domain.TransformedProduct, error)
}

// CrawlServiceConfig holds configuration for the crawl service.
type CrawlServiceConfig struct {
	// EnrichOnCrawl enriches every extracted variant as part of the crawl.
	EnrichOnCrawl bool
	// EnrichConcurrency bounds in-flight enrichment calls per crawl.
	EnrichConcurrency int
}

// CrawlService runs the page pipeline: fetch, extract the embedded state,
// normalize it into canonical records, persist them, and optionally enrich
// each variant.
type CrawlService struct {
	fetcher           domain.PageFetcher
	store             domain.ProductStore
	enricher          Enricher
	enrichOnCrawl     bool
	enrichConcurrency int
}

// NewCrawlService creates a new crawl service with dependencies.
func NewCrawlService(
	fetcher domain.PageFetcher,
	store domain.ProductStore,
	enricher Enricher,
	config CrawlServiceConfig,
) *CrawlService {
	concurrency := config.EnrichConcurrency
	if concurrency < 1 {
		concurrency = 4
	}

	return &CrawlService{
		fetcher:           fetcher,
		store:             store,
		enricher:          enricher,
		enrichOnCrawl:     config.EnrichOnCrawl,
		enrichConcurrency: concurrency,
	}
}

// Crawl fetches a product page, extracts its embedded state and returns the
// canonical records in source variant order. Records are appended to the
// crawled collection. A page without the state blob yields
// domain.ErrStateNotFound; the caller surfaces that as "no product data",
// not a crash.
func (s *CrawlService) Crawl(ctx context.Context, pageURL string) ([]domain.Product, error) {
	if pageURL == "" {
		return nil, domain.ErrInvalidRequest
	}

	html, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}

	stateJSON, err := storefront.ExtractState(html)
	if err != nil {
		return nil, err
	}

	products, err := storefront.ParseProducts(stateJSON)
	if err != nil {
		return nil, err
	}

	s.store.AddCrawled(products...)

	if s.enrichOnCrawl && s.enricher != nil {
		s.enrichAll(ctx, products)
	}

	return products, nil
}

// enrichAll enriches extracted variants with bounded concurrency and
// appends the successes. Enrichment failures are logged and skipped; a
// crawl never fails because the backend rejected one variant.
func (s *CrawlService) enrichAll(ctx context.Context, products []domain.Product) {
	semaphore := make(chan struct{}, s.enrichConcurrency)
	var wg sync.WaitGroup

	for _, product := range products {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(p domain.Product) {
			defer wg.Done()
			defer func() { <-semaphore }()

			transformed, err := s.enricher.Enrich(ctx, p)
			if err != nil {
				log.Printf("[crawl] enrichment failed for sku %s: %v", p.Sku, err)
				return
			}
			s.store.AddTransformed(*transformed)
		}(product)
	}

	wg.Wait()
}
