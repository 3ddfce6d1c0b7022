package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crawlproduct/backend/internal/domain"
	"github.com/crawlproduct/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	crawlService  *usecase.CrawlService
	enrichService *usecase.EnrichService
	store         domain.ProductStore
}

// NewHandler creates a new HTTP handler
func NewHandler(crawlService *usecase.CrawlService, enrichService *usecase.EnrichService, store domain.ProductStore) *Handler {
	return &Handler{
		crawlService:  crawlService,
		enrichService: enrichService,
		store:         store,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "crawlproduct-backend",
		"version": "1.0.0",
	})
}

// ListCrawled returns every crawled product in insertion order.
func (h *Handler) ListCrawled(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Crawled())
}

// ListTransformed returns every transformed product in insertion order.
func (h *Handler) ListTransformed(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Transformed())
}

// CrawlProduct handles crawl requests for a single product page URL.
func (h *Handler) CrawlProduct(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	products, err := h.crawlService.Crawl(c.Request.Context(), pageURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrStateNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no product data found on page"})
		case errors.Is(err, domain.ErrMalformedState):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrFetchFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch page"})
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to crawl product page"})
		}
		return
	}

	c.JSON(http.StatusOK, products)
}

// TransformProduct enriches a previously crawled product by SKU.
func (h *Handler) TransformProduct(c *gin.Context) {
	sku := c.Query("sku")
	if sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku query parameter is required"})
		return
	}

	transformed, err := h.enrichService.Transform(c.Request.Context(), sku)
	if err != nil {
		h.writeEnrichError(c, err)
		return
	}

	c.JSON(http.StatusOK, transformed)
}

// TranslateProduct enriches a caller-supplied record without touching the
// crawled collection.
func (h *Handler) TranslateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a product record"})
		return
	}

	transformed, err := h.enrichService.Enrich(c.Request.Context(), product)
	if err != nil {
		h.writeEnrichError(c, err)
		return
	}

	c.JSON(http.StatusOK, transformed)
}

// Ask forwards a free-form prompt to the completion backend.
func (h *Handler) Ask(c *gin.Context) {
	h.passthrough(c, h.enrichService.Ask)
}

// Classify forwards page data to the completion backend with the fixed
// transform-to-schema instruction.
func (h *Handler) Classify(c *gin.Context) {
	h.passthrough(c, h.enrichService.Classify)
}

// passthrough runs a prompt-in, text-out backend call and writes the raw
// completion under a response key.
func (h *Handler) passthrough(c *gin.Context, call func(ctx context.Context, prompt string) (string, error)) {
	prompt := c.Query("prompt")
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt query parameter is required"})
		return
	}

	output, err := call(c.Request.Context(), prompt)
	if err != nil {
		h.writeEnrichError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": output})
}

func (h *Handler) writeEnrichError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, domain.ErrCompletionFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "enrichment backend unavailable"})
	case errors.Is(err, domain.ErrCompletionSchema):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "enrichment failed"})
	}
}
