package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"shop-agent-be/internal/repository/contract"
	"shop-agent-be/pkg/agent"
	"shop-agent-be/pkg/embedding"

	gocache "github.com/patrickmn/go-cache"
)

type productSearchService struct {
	repo              contract.ProductEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
	shopDomain        string
	queryCache        *gocache.Cache
}

// NewProductSearchService builds the search capability the agents call into.
// Query vectors are cached so repeated phrasings of the same question don't
// re-bill the embedding API.
func NewProductSearchService(
	repo contract.ProductEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
	shopDomain string,
) agent.ProductSearcher {
	return &productSearchService{
		repo:              repo,
		embeddingProvider: embeddingProvider,
		shopDomain:        shopDomain,
		queryCache:        gocache.New(10*time.Minute, 15*time.Minute),
	}
}

func (s *productSearchService) SearchProducts(ctx context.Context, shopDomain, query string, limit int) ([]agent.ProductSummary, error) {
	if s.repo == nil || s.embeddingProvider == nil {
		log.Printf("[WARN] Product search unavailable, returning no results")
		return []agent.ProductSummary{}, nil
	}
	if shopDomain == "" {
		shopDomain = s.shopDomain
	}

	vector, err := s.queryVector(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.repo.SearchSimilar(ctx, vector, limit, shopDomain)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	results := make([]agent.ProductSummary, 0, len(hits))
	for _, hit := range hits {
		results = append(results, agent.ProductSummary{
			Id:       metaString(hit.Metadata, "id", hit.ProductId),
			Title:    metaString(hit.Metadata, "title", ""),
			Price:    metaString(hit.Metadata, "price", ""),
			ImageUrl: metaString(hit.Metadata, "image_url", ""),
			Handle:   metaString(hit.Metadata, "handle", ""),
			Category: metaString(hit.Metadata, "category", ""),
		})
	}

	log.Printf("[INFO] Search %q returned %d products", query, len(results))
	return results, nil
}

func (s *productSearchService) queryVector(ctx context.Context, query string) ([]float32, error) {
	if cached, found := s.queryCache.Get(query); found {
		return cached.([]float32), nil
	}

	vector, err := s.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	s.queryCache.Set(query, vector, gocache.DefaultExpiration)
	return vector, nil
}

func metaString(metadata map[string]interface{}, key, fallback string) string {
	if metadata == nil {
		return fallback
	}
	if value, ok := metadata[key].(string); ok && value != "" {
		return value
	}
	return fallback
}
