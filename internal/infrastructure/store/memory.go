package store

import (
	"sync"

	"github.com/crawlproduct/backend/internal/domain"
)

// MemoryStore keeps the crawled and transformed product collections in
// process memory. Both collections are append-only; records are never
// mutated or deleted. Appends from concurrent requests are serialized by a
// single mutex.
type MemoryStore struct {
	mu          sync.RWMutex
	crawled     []domain.Product
	transformed []domain.TransformedProduct
}

// NewMemoryStore creates an empty in-memory product store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AddCrawled appends canonical records in the order given.
func (s *MemoryStore) AddCrawled(products ...domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.crawled = append(s.crawled, products...)
}

// AddTransformed appends one enriched record.
func (s *MemoryStore) AddTransformed(product domain.TransformedProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transformed = append(s.transformed, product)
}

// Crawled returns a copy of the crawled collection in insertion order.
func (s *MemoryStore) Crawled() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.crawled))
	copy(out, s.crawled)
	return out
}

// Transformed returns a copy of the transformed collection in insertion order.
func (s *MemoryStore) Transformed() []domain.TransformedProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.TransformedProduct, len(s.transformed))
	copy(out, s.transformed)
	return out
}

// FindBySKU returns a copy of the first crawled product whose Sku or
// ParentSku matches.
func (s *MemoryStore) FindBySKU(sku string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.crawled {
		if s.crawled[i].Sku == sku || s.crawled[i].ParentSku == sku {
			p := s.crawled[i]
			return &p, nil
		}
	}

	return nil, domain.ErrProductNotFound
}
