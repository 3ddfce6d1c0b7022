package domain

// ProductAttribute is a flattened key/display-value pair extracted from a
// variant. Duplicates are allowed and insertion order is preserved.
type ProductAttribute struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Product is the canonical record built from one variant of a product page.
// Sku identifies the single variant; ParentSku identifies the product family
// all variants of a page share. Category is a hierarchy path joined with
// " > ". Fields absent from the source default to ""/0/empty list.
type Product struct {
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Sku             string             `json:"sku"`
	ParentSku       string             `json:"parentSku"`
	Attributes      []ProductAttribute `json:"attributes"`
	Category        string             `json:"category"`
	Brand           string             `json:"brand"`
	OriginalPrice   float64            `json:"originalPrice"`
	DiscountedPrice float64            `json:"discountedPrice"`
	Images          []string           `json:"images"`
}

// TransformedProduct is a Product after enrichment: translated fields plus a
// 0-100 quality score. It is only ever produced by the enrichment backend,
// never directly by extraction.
type TransformedProduct struct {
	Product
	Score float64 `json:"score"`
}
