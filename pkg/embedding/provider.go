package embedding

import "context"

// Task types, following the Gemini embedding API vocabulary.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// EmbeddingProvider defines the interface for generating text embeddings.
// GenerateBatch is order-preserving: vector i belongs to texts[i]. The 50
// texts/call provider ceiling is enforced by callers, not here.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
	GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error)
}
