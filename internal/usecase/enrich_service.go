package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/crawlproduct/backend/internal/domain"
)

// translateInstruction is the fixed system instruction for enrichment. The
// backend translates the record to English, regenerates name and description
// for search-friendliness, keeps identifiers, prices and images verbatim,
// and scores the record 0-100.
const translateInstruction = `You are an e-commerce product translator and reviewer. Translate the incoming product record to English using these rules:

1. name: do not translate word for word; produce an SEO-friendly English name based on the description and attributes
2. description: strip any HTML tags; do not translate word for word; write a new SEO-friendly description
3. sku and parentSku: keep unchanged
4. attributes: translate every key and name value to English
5. category: translate the category hierarchy to English, keeping the " > " separator
6. brand: translate the brand name to English
7. prices and images: keep unchanged
8. score: compute a 0-100 score from these criteria:
   - descriptiveness of the product name (25 points)
   - detail and SEO quality of the description (35 points)
   - number of images (20 points)
   - richness of attributes and brand (20 points)

Return only a JSON object in the exact schema of the incoming record plus a numeric "score" field. No extra explanation or text.`

// classifyInstruction is the fixed system instruction for the raw
// classification passthrough, which maps arbitrary page data into the
// canonical schema without going through the normalizer.
const classifyInstruction = `You are an e-commerce product data transformer. You must convert the incoming data strictly into the following JSON format:
{
    "name": string,
    "description": string,
    "sku": string,
    "parentSku": string,
    "attributes": [
        {
            "key": string,
            "name": string
        }
    ],
    "category": string,
    "brand": string,
    "originalPrice": number,
    "discountedPrice": number,
    "images": [string]
}

Important rules:
- Use only this JSON schema
- Fill every field
- Prices must be decimal numbers
- The category value must be hierarchical (e.g. 'Accessories > Bags > Shoulder Bag')
- Do not add any explanation or extra text, return only JSON
- The attributes array must contain the product's properties`

// EnrichService runs canonical records through the completion backend and
// handles the transform-by-SKU flow.
type EnrichService struct {
	completions domain.CompletionClient
	store       domain.ProductStore
}

// NewEnrichService creates a new enrichment service with dependencies.
func NewEnrichService(completions domain.CompletionClient, store domain.ProductStore) *EnrichService {
	return &EnrichService{
		completions: completions,
		store:       store,
	}
}

// Enrich sends one canonical record through the backend and parses the
// completion into a transformed record. A non-success backend response
// surfaces as domain.ErrCompletionFailed (soft); a completion that does not
// parse into the expected schema surfaces as domain.ErrCompletionSchema,
// which propagates because callers depend on the record shape.
func (s *EnrichService) Enrich(ctx context.Context, product domain.Product) (*domain.TransformedProduct, error) {
	payload, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}

	completion, err := s.completions.Complete(ctx, translateInstruction, string(payload))
	if err != nil {
		return nil, err
	}

	var transformed domain.TransformedProduct
	if err := json.Unmarshal([]byte(stripCodeFence(completion)), &transformed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCompletionSchema, err)
	}

	transformed.Score = clampScore(transformed.Score)
	return &transformed, nil
}

// Transform looks up a crawled product by sku-or-parentSku, enriches it and
// appends the result to the transformed collection.
func (s *EnrichService) Transform(ctx context.Context, sku string) (*domain.TransformedProduct, error) {
	if sku == "" {
		return nil, domain.ErrInvalidRequest
	}

	product, err := s.store.FindBySKU(sku)
	if err != nil {
		return nil, err
	}

	transformed, err := s.Enrich(ctx, *product)
	if err != nil {
		return nil, err
	}

	s.store.AddTransformed(*transformed)
	return transformed, nil
}

// Ask forwards a free-form prompt to the backend.
func (s *EnrichService) Ask(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", domain.ErrInvalidRequest
	}
	return s.completions.Complete(ctx, "", prompt)
}

// Classify forwards page data to the backend with the fixed
// transform-to-schema instruction, bypassing the normalizer.
func (s *EnrichService) Classify(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", domain.ErrInvalidRequest
	}
	return s.completions.Complete(ctx, classifyInstruction, prompt)
}

// stripCodeFence removes a markdown code fence some models wrap JSON
// completions in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimSuffix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	return strings.TrimSpace(s)
}

// clampScore bounds a backend-produced score to [0, 100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
