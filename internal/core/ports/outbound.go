package ports

import (
	"context"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

// Embedder converts query text into a vector in the passage store's space.
// The embedding model is fixed per deployment; it must match the model that
// produced the stored passage vectors.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// PassageStore performs similarity search over the precomputed passage index.
// An empty result is a valid outcome, distinct from a store failure.
type PassageStore interface {
	Search(ctx context.Context, queryVector []float32, limit int, filter domain.PassageFilter) ([]domain.Passage, error)
}

// AnswerGenerator creates the final user-facing answer from the assembled
// citation context.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question, contextText string) (string, error)
}
