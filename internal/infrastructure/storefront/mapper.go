package storefront

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/crawlproduct/backend/internal/domain"
)

// categorySeparator joins the category hierarchy into a single path string.
const categorySeparator = " > "

// snippetLength is how much of the offending text a malformed-state error
// carries for diagnosis.
const snippetLength = 100

// ParseProducts normalizes an extracted state blob into canonical product
// records, one per variant, in source order. A page whose product carries no
// variants yields an empty result and no error. A variant that fails
// structurally is logged and skipped; it never aborts the remaining
// variants. The function is pure: persistence is the caller's decision.
func ParseProducts(stateJSON string) ([]domain.Product, error) {
	dec := json.NewDecoder(strings.NewReader(stateJSON))
	dec.UseNumber() // keep ids and prices in their source text form

	var state map[string]interface{}
	if err := dec.Decode(&state); err != nil {
		return nil, fmt.Errorf("%w: %v (state: %s)", domain.ErrMalformedState, err, snippet(stateJSON))
	}

	product, ok := state["product"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing product object (state: %s)", domain.ErrMalformedState, snippet(stateJSON))
	}

	rawVariants, ok := product["variants"].([]interface{})
	if !ok {
		// Non-product pages embed state without variants.
		return []domain.Product{}, nil
	}

	products := make([]domain.Product, 0, len(rawVariants))
	for i, raw := range rawVariants {
		variant, ok := raw.(map[string]interface{})
		if !ok {
			log.Printf("[storefront] skipping variant %d: not an object", i)
			continue
		}

		p, err := buildVariant(product, variant)
		if err != nil {
			log.Printf("[storefront] skipping variant %d: %v", i, err)
			continue
		}
		products = append(products, *p)
	}

	return products, nil
}

// buildVariant maps one variant of the parsed product tree to a canonical
// record. Optional fields default to ""/0/empty; only structural problems
// (missing variant id, wrong node types) are errors.
func buildVariant(product, variant map[string]interface{}) (*domain.Product, error) {
	sku, err := identifier(variant, "id")
	if err != nil {
		return nil, err
	}

	parentSku := ""
	if _, present := product["id"]; present {
		parentSku, err = identifier(product, "id")
		if err != nil {
			return nil, err
		}
	}

	category, err := joinHierarchy(product)
	if err != nil {
		return nil, err
	}

	originalPrice, discountedPrice, err := resolvePrices(variant)
	if err != nil {
		return nil, err
	}

	images, err := stringList(variant, "images")
	if err != nil {
		return nil, err
	}

	attributes, err := attributeList(variant)
	if err != nil {
		return nil, err
	}

	return &domain.Product{
		Name:            stringField(product, "name"),
		Description:     stringField(product, "description"),
		Sku:             sku,
		ParentSku:       parentSku,
		Brand:           brandName(product),
		Category:        category,
		OriginalPrice:   originalPrice,
		DiscountedPrice: discountedPrice,
		Images:          images,
		Attributes:      attributes,
	}, nil
}

// resolvePrices reads originalPrice and discountedPrice from the variant's
// price subtree. Each value may be a bare number or an object carrying the
// number under "value"; an absent subtree resolves both to 0.
func resolvePrices(variant map[string]interface{}) (original, discounted float64, err error) {
	raw, present := variant["price"]
	if !present {
		return 0, 0, nil
	}

	price, ok := raw.(map[string]interface{})
	if !ok {
		return 0, 0, fmt.Errorf("price is not an object")
	}

	original, err = priceValue(price, "originalPrice")
	if err != nil {
		return 0, 0, err
	}
	discounted, err = priceValue(price, "discountedPrice")
	if err != nil {
		return 0, 0, err
	}

	return original, discounted, nil
}

// priceValue resolves one price field through the dual-shape rule.
func priceValue(price map[string]interface{}, key string) (float64, error) {
	raw, present := price[key]
	if !present {
		return 0, nil
	}

	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s: %v", key, err)
		}
		return f, nil
	case map[string]interface{}:
		n, ok := v["value"].(json.Number)
		if !ok {
			return 0, fmt.Errorf("%s: object without numeric value", key)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s: %v", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s: unexpected type %T", key, raw)
	}
}

// identifier stringifies an id that pages encode either as a number or a
// string. The key must be present; a variant without an id is unusable.
func identifier(node map[string]interface{}, key string) (string, error) {
	raw, present := node[key]
	if !present {
		return "", fmt.Errorf("missing %s", key)
	}

	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%s: unexpected type %T", key, raw)
	}
}

// joinHierarchy builds the category path from the parent's hierarchy array.
func joinHierarchy(product map[string]interface{}) (string, error) {
	raw, present := product["categoryHierarchy"]
	if !present {
		return "", nil
	}

	entries, ok := raw.([]interface{})
	if !ok {
		return "", fmt.Errorf("categoryHierarchy is not an array")
	}

	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		s, ok := entry.(string)
		if !ok {
			return "", fmt.Errorf("categoryHierarchy entry is not a string")
		}
		parts = append(parts, s)
	}

	return strings.Join(parts, categorySeparator), nil
}

// brandName reads the nested-optional brand.name from the parent product.
func brandName(product map[string]interface{}) string {
	brand, ok := product["brand"].(map[string]interface{})
	if !ok {
		return ""
	}
	return stringField(brand, "name")
}

// stringField returns node[key] as a string, or "" when absent or null.
func stringField(node map[string]interface{}, key string) string {
	s, _ := node[key].(string)
	return s
}

// stringList reads an optional array of strings from the variant.
func stringList(variant map[string]interface{}, key string) ([]string, error) {
	raw, present := variant[key]
	if !present {
		return []string{}, nil
	}

	entries, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s is not an array", key)
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		s, ok := entry.(string)
		if !ok {
			return nil, fmt.Errorf("%s entry is not a string", key)
		}
		out = append(out, s)
	}

	return out, nil
}

// attributeList reads the variant's attributes, renaming the source
// {key, value} pairs to the canonical {key, name} shape. Duplicates are
// allowed and source order is preserved.
func attributeList(variant map[string]interface{}) ([]domain.ProductAttribute, error) {
	raw, present := variant["attributes"]
	if !present {
		return []domain.ProductAttribute{}, nil
	}

	entries, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("attributes is not an array")
	}

	out := make([]domain.ProductAttribute, 0, len(entries))
	for _, entry := range entries {
		attr, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("attribute entry is not an object")
		}
		out = append(out, domain.ProductAttribute{
			Key:  stringField(attr, "key"),
			Name: stringField(attr, "value"),
		})
	}

	return out, nil
}

// snippet truncates the state text for error messages.
func snippet(s string) string {
	if len(s) <= snippetLength {
		return s
	}
	return s[:snippetLength] + "..."
}
