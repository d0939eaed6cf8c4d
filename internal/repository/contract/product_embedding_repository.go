package contract

import (
	"context"

	"shop-agent-be/internal/entity"
)

type ProductEmbeddingRepository interface {
	// UpsertBulk writes one batch, inserting new products and overwriting
	// rows that share a product id.
	UpsertBulk(ctx context.Context, embeddings []*entity.ProductEmbedding) error
	CountByShop(ctx context.Context, shopDomain string) (int64, error)
	DeleteByShop(ctx context.Context, shopDomain string) error
	// SearchSimilar ranks the shop's products by cosine distance to the
	// query vector.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, shopDomain string) ([]*entity.ProductEmbedding, error)
}
