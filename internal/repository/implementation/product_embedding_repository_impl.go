package implementation

import (
	"context"

	"shop-agent-be/internal/entity"
	"shop-agent-be/internal/mapper"
	"shop-agent-be/internal/model"
	"shop-agent-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductEmbeddingMapper
}

func NewProductEmbeddingRepository(db *gorm.DB) contract.ProductEmbeddingRepository {
	return &ProductEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductEmbeddingMapper(),
	}
}

func (r *ProductEmbeddingRepositoryImpl) UpsertBulk(ctx context.Context, embeddings []*entity.ProductEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	models := make([]*model.ProductEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}

	// Re-syncing the same catalog must overwrite, not duplicate.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"shop_domain", "document", "embedding_value", "metadata", "updated_at",
			}),
		}).
		Create(models).Error
	if err != nil {
		return err
	}

	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ProductEmbeddingRepositoryImpl) CountByShop(ctx context.Context, shopDomain string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductEmbedding{}).
		Where("shop_domain = ?", shopDomain).
		Count(&count).Error
	return count, err
}

func (r *ProductEmbeddingRepositoryImpl) DeleteByShop(ctx context.Context, shopDomain string) error {
	return r.db.WithContext(ctx).
		Where("shop_domain = ?", shopDomain).
		Delete(&model.ProductEmbedding{}).Error
}

func (r *ProductEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, shopDomain string) ([]*entity.ProductEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.ProductEmbedding

	// Using pgvector cosine distance: embedding_value <=> vector
	err := r.db.WithContext(ctx).
		Where("shop_domain = ?", shopDomain).
		Order(gorm.Expr("embedding_value <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.ProductEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
