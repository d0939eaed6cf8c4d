package service

import (
	"context"
	"errors"
	"testing"

	"shop-agent-be/internal/entity"
)

type searchableRepo struct {
	fakeEmbeddingRepo
	hits       []*entity.ProductEmbedding
	searchErr  error
	lastLimit  int
	lastDomain string
}

func (r *searchableRepo) SearchSimilar(ctx context.Context, embedding []float32, limit int, shopDomain string) ([]*entity.ProductEmbedding, error) {
	r.lastLimit = limit
	r.lastDomain = shopDomain
	return r.hits, r.searchErr
}

func TestSearchProductsMapsMetadata(t *testing.T) {
	repo := &searchableRepo{
		hits: []*entity.ProductEmbedding{
			{
				ProductId: "gid://shopify/Product/1",
				Metadata: map[string]interface{}{
					"id":        "gid://shopify/Product/1",
					"title":     "Red Runner",
					"price":     "59.00",
					"handle":    "red-runner",
					"category":  "Shoes",
					"image_url": "https://cdn.test/red.png",
				},
			},
			{
				// Missing title metadata falls back to empty, id falls back
				// to the row's product id.
				ProductId: "gid://shopify/Product/2",
				Metadata:  map[string]interface{}{},
			},
		},
	}
	provider := &fakeEmbeddingProvider{}
	searcher := NewProductSearchService(repo, provider, "shop.test")

	results, err := searcher.SearchProducts(context.Background(), "", "red shoes", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Red Runner" || results[0].Price != "59.00" {
		t.Errorf("metadata not mapped: %+v", results[0])
	}
	if results[1].Id != "gid://shopify/Product/2" {
		t.Errorf("id fallback broken: %+v", results[1])
	}
	// Empty shop domain falls back to the configured default.
	if repo.lastLimit != 5 || repo.lastDomain != "shop.test" {
		t.Errorf("search scoped wrong: limit=%d domain=%q", repo.lastLimit, repo.lastDomain)
	}
}

func TestSearchProductsShopOverride(t *testing.T) {
	repo := &searchableRepo{}
	searcher := NewProductSearchService(repo, &fakeEmbeddingProvider{}, "shop.test")

	if _, err := searcher.SearchProducts(context.Background(), "other.test", "shoes", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastDomain != "other.test" {
		t.Errorf("shop override ignored, searched %q", repo.lastDomain)
	}
}

func TestSearchProductsCachesQueryVector(t *testing.T) {
	repo := &searchableRepo{}
	provider := &fakeEmbeddingProvider{}
	searcher := NewProductSearchService(repo, provider, "shop.test")

	for i := 0; i < 3; i++ {
		if _, err := searcher.SearchProducts(context.Background(), "", "same query", 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if provider.generateCalls != 1 {
		t.Errorf("repeated query must hit the vector cache, embedded %d times", provider.generateCalls)
	}

	if _, err := searcher.SearchProducts(context.Background(), "", "different query", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.generateCalls != 2 {
		t.Errorf("new query must embed again, embedded %d times", provider.generateCalls)
	}
}

func TestSearchProductsEmbedFailure(t *testing.T) {
	repo := &searchableRepo{}
	provider := &fakeEmbeddingProvider{generateErr: errors.New("quota exceeded")}
	searcher := NewProductSearchService(repo, provider, "shop.test")

	if _, err := searcher.SearchProducts(context.Background(), "", "red shoes", 5); err == nil {
		t.Fatal("expected error when the query cannot be embedded")
	}
}

func TestSearchProductsUnconfigured(t *testing.T) {
	searcher := NewProductSearchService(nil, nil, "shop.test")

	results, err := searcher.SearchProducts(context.Background(), "", "anything", 5)
	if err != nil {
		t.Fatalf("unconfigured search must degrade, not fail: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results, got %+v", results)
	}
}
