package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"shop-agent-be/internal/entity"
	"shop-agent-be/pkg/shopify"
	"shop-agent-be/pkg/store"
)

type fakeEmbeddingProvider struct {
	batchSizes    []int
	failAtCall    int // 1-based call index, 0 disables
	shortByOne    bool
	vectorValue   float32
	generateCalls int
	generateErr   error
}

func (f *fakeEmbeddingProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	f.generateCalls++
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return []float32{f.vectorValue}, nil
}

func (f *fakeEmbeddingProvider) GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	call := len(f.batchSizes) + 1
	if f.failAtCall > 0 && call == f.failAtCall {
		return nil, errors.New("embedding backend unavailable")
	}
	f.batchSizes = append(f.batchSizes, len(texts))

	count := len(texts)
	if f.shortByOne {
		count--
	}
	vectors := make([][]float32, count)
	for i := range vectors {
		vectors[i] = []float32{f.vectorValue}
	}
	return vectors, nil
}

type fakeEmbeddingRepo struct {
	upsertBatches [][]string // product ids per batch
	failAtBatch   int        // 1-based batch index, 0 disables
}

func (f *fakeEmbeddingRepo) UpsertBulk(ctx context.Context, embeddings []*entity.ProductEmbedding) error {
	if f.failAtBatch > 0 && len(f.upsertBatches)+1 == f.failAtBatch {
		f.upsertBatches = append(f.upsertBatches, nil)
		return errors.New("db down")
	}
	ids := make([]string, len(embeddings))
	for i, e := range embeddings {
		ids[i] = e.ProductId
	}
	f.upsertBatches = append(f.upsertBatches, ids)
	return nil
}

func (f *fakeEmbeddingRepo) CountByShop(ctx context.Context, shopDomain string) (int64, error) {
	return 0, nil
}

func (f *fakeEmbeddingRepo) DeleteByShop(ctx context.Context, shopDomain string) error {
	return nil
}

func (f *fakeEmbeddingRepo) SearchSimilar(ctx context.Context, embedding []float32, limit int, shopDomain string) ([]*entity.ProductEmbedding, error) {
	return nil, nil
}

func makeProducts(n int) []shopify.Product {
	products := make([]shopify.Product, n)
	for i := range products {
		category := "Shoes"
		if i%2 == 1 {
			category = "Shirts"
		}
		products[i] = shopify.Product{
			Id:          fmt.Sprintf("gid://shopify/Product/%d", i),
			Title:       fmt.Sprintf("Product %d", i),
			ProductType: category,
			Variants:    []shopify.Variant{{Price: "10.00"}},
		}
	}
	return products
}

func newTestIndexer(repo *fakeEmbeddingRepo, provider *fakeEmbeddingProvider) IIndexerService {
	return NewIndexerService(repo, provider, store.NewCategoryStore(nil))
}

func TestIngestBatching(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	provider := &fakeEmbeddingProvider{}
	indexer := newTestIndexer(repo, provider)

	report, err := indexer.Ingest(context.Background(), "shop.test", makeProducts(120))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(provider.batchSizes, []int{50, 50, 20}) {
		t.Errorf("embedding batches = %v, want [50 50 20]", provider.batchSizes)
	}
	if len(repo.upsertBatches) != 3 {
		t.Errorf("expected 3 upsert batches, got %d", len(repo.upsertBatches))
	}
	if report.Indexed != 120 {
		t.Errorf("Indexed = %d, want 120", report.Indexed)
	}
	if report.FailedBatches != 0 {
		t.Errorf("FailedBatches = %d, want 0", report.FailedBatches)
	}
	if !reflect.DeepEqual(report.Categories, []string{"Shirts", "Shoes"}) {
		t.Errorf("Categories = %v, want [Shirts Shoes]", report.Categories)
	}
}

func TestIngestEmbeddingFailureAbortsBeforeUpsert(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	provider := &fakeEmbeddingProvider{failAtCall: 2}
	indexer := newTestIndexer(repo, provider)

	_, err := indexer.Ingest(context.Background(), "shop.test", makeProducts(120))
	if err == nil {
		t.Fatal("expected error when an embedding batch fails")
	}
	if len(repo.upsertBatches) != 0 {
		t.Errorf("nothing may be written after an embedding failure, got %d batches", len(repo.upsertBatches))
	}
}

func TestIngestMisalignedEmbeddingsIsFatal(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	provider := &fakeEmbeddingProvider{shortByOne: true}
	indexer := newTestIndexer(repo, provider)

	_, err := indexer.Ingest(context.Background(), "shop.test", makeProducts(10))
	if !errors.Is(err, ErrEmbeddingMisaligned) {
		t.Fatalf("expected ErrEmbeddingMisaligned, got %v", err)
	}
	if len(repo.upsertBatches) != 0 {
		t.Errorf("misaligned vectors must never be written, got %d batches", len(repo.upsertBatches))
	}
}

func TestIngestContinuesPastFailedUpsertBatch(t *testing.T) {
	repo := &fakeEmbeddingRepo{failAtBatch: 2}
	provider := &fakeEmbeddingProvider{}
	indexer := newTestIndexer(repo, provider)

	report, err := indexer.Ingest(context.Background(), "shop.test", makeProducts(120))
	if err != nil {
		t.Fatalf("a failed batch must not fail the run: %v", err)
	}

	if report.Indexed != 70 {
		t.Errorf("Indexed = %d, want 70 (batches 1 and 3)", report.Indexed)
	}
	if report.FailedBatches != 1 {
		t.Errorf("FailedBatches = %d, want 1", report.FailedBatches)
	}
	if len(repo.upsertBatches) != 3 {
		t.Errorf("all 3 batches must be attempted, got %d", len(repo.upsertBatches))
	}
}

func TestIngestEmptyCatalog(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	provider := &fakeEmbeddingProvider{}
	indexer := newTestIndexer(repo, provider)

	report, err := indexer.Ingest(context.Background(), "shop.test", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Indexed != 0 || len(provider.batchSizes) != 0 || len(repo.upsertBatches) != 0 {
		t.Errorf("empty catalog must be a no-op, report %+v", report)
	}
}
