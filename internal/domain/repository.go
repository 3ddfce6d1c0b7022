package domain

import "context"

// ProductStore holds the crawled and transformed product collections.
// Both collections are append-only for the lifetime of the process.
type ProductStore interface {
	AddCrawled(products ...Product)
	AddTransformed(product TransformedProduct)
	Crawled() []Product
	Transformed() []TransformedProduct
	// FindBySKU returns the first crawled product whose Sku or ParentSku
	// matches, in insertion order.
	FindBySKU(sku string) (*Product, error)
}

// PageFetcher retrieves the raw HTML of a product page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// CompletionClient sends a single system+user instruction pair to a
// text-generation backend and returns its textual completion.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
