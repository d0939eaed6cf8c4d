package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"shop-agent-be/internal/entity"
	"shop-agent-be/internal/repository/contract"
	"shop-agent-be/pkg/catalog"
	"shop-agent-be/pkg/embedding"
	"shop-agent-be/pkg/shopify"
	"shop-agent-be/pkg/store"

	"github.com/google/uuid"
)

// ingestBatchSize bounds both embedding calls and upsert statements. It
// matches the embedding provider's texts-per-call ceiling.
const ingestBatchSize = 50

// ErrEmbeddingMisaligned means the provider returned a different number of
// vectors than texts sent. Nothing gets written when this happens because any
// pairing of vectors to products would be a guess.
var ErrEmbeddingMisaligned = errors.New("embedding count does not match product count")

// IngestReport summarizes one catalog ingestion.
type IngestReport struct {
	Indexed       int
	FailedBatches int
	Categories    []string
}

type IIndexerService interface {
	Ingest(ctx context.Context, shopDomain string, products []shopify.Product) (*IngestReport, error)
}

type indexerService struct {
	repo              contract.ProductEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
	categoryStore     *store.CategoryStore
}

func NewIndexerService(
	repo contract.ProductEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
	categoryStore *store.CategoryStore,
) IIndexerService {
	return &indexerService{
		repo:              repo,
		embeddingProvider: embeddingProvider,
		categoryStore:     categoryStore,
	}
}

func (s *indexerService) Ingest(ctx context.Context, shopDomain string, products []shopify.Product) (*IngestReport, error) {
	report := &IngestReport{
		Categories: catalog.ExtractCategories(products),
	}

	// Categories are auxiliary: a store failure must not block indexing.
	if err := s.categoryStore.Save(ctx, shopDomain, report.Categories); err != nil {
		log.Printf("[WARN] Failed to persist categories for %s: %v", shopDomain, err)
	}

	if len(products) == 0 {
		log.Printf("[INFO] Nothing to index for %s", shopDomain)
		return report, nil
	}

	documents := make([]string, len(products))
	for i := range products {
		documents[i] = catalog.BuildContext(&products[i])
	}

	vectors, err := s.embedAll(ctx, documents)
	if err != nil {
		return report, err
	}

	if len(vectors) != len(products) {
		return report, fmt.Errorf("%w: %d vectors for %d products", ErrEmbeddingMisaligned, len(vectors), len(products))
	}

	embeddings := make([]*entity.ProductEmbedding, len(products))
	now := time.Now()
	for i := range products {
		embeddings[i] = &entity.ProductEmbedding{
			Id:             uuid.New(),
			ProductId:      products[i].Id,
			ShopDomain:     shopDomain,
			Document:       documents[i],
			EmbeddingValue: vectors[i],
			Metadata:       catalog.BuildMetadata(&products[i]),
			CreatedAt:      now,
		}
	}

	// A failed batch loses only its own products. The rest of the catalog
	// still lands.
	for start := 0; start < len(embeddings); start += ingestBatchSize {
		end := start + ingestBatchSize
		if end > len(embeddings) {
			end = len(embeddings)
		}

		batch := embeddings[start:end]
		if err := s.repo.UpsertBulk(ctx, batch); err != nil {
			log.Printf("[ERROR] Upsert failed for batch %d-%d of %s: %v", start, end, shopDomain, err)
			report.FailedBatches++
			continue
		}
		report.Indexed += len(batch)
	}

	log.Printf("[INFO] Indexed %d/%d products for %s (%d failed batches, %d categories)",
		report.Indexed, len(products), shopDomain, report.FailedBatches, len(report.Categories))
	return report, nil
}

// embedAll runs the documents through the provider in order, one batch at a
// time. Any transport failure aborts the whole ingestion: partial vectors
// cannot be safely paired with products.
func (s *indexerService) embedAll(ctx context.Context, documents []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(documents))

	for start := 0; start < len(documents); start += ingestBatchSize {
		end := start + ingestBatchSize
		if end > len(documents) {
			end = len(documents)
		}

		batchVectors, err := s.embeddingProvider.GenerateBatch(ctx, documents[start:end], embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("embedding batch %d-%d failed: %w", start, end, err)
		}
		vectors = append(vectors, batchVectors...)
	}

	return vectors, nil
}
