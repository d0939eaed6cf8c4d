package main

import (
	"log"

	"shop-agent-be/internal/config"
	"shop-agent-be/internal/model"
	"shop-agent-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	log.Println("Running migrations...")
	if err := db.AutoMigrate(&model.ProductEmbedding{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// AutoMigrate cannot express the ANN index, create it directly.
	indexStmt := `CREATE INDEX IF NOT EXISTS idx_product_embeddings_embedding
		ON product_embeddings USING hnsw (embedding_value vector_cosine_ops)`
	if err := db.Exec(indexStmt).Error; err != nil {
		log.Printf("[WARN] Could not create vector index: %v", err)
	}

	log.Println("✅ Migrations complete")
}
