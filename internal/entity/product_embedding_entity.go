package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductEmbedding is one indexed catalog product: the text that was
// embedded, its vector, and the metadata the chat widget needs to render a
// result card.
type ProductEmbedding struct {
	Id             uuid.UUID
	ProductId      string
	ShopDomain     string
	Document       string
	EmbeddingValue []float32
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
