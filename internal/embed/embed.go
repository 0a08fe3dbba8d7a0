// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed resolves insight text to embedding vectors through an
// external provider, with batching, caching, and partial-failure handling.
package embed

import (
	"context"
	"math"
)

// Embedder generates vector embeddings for a batch of texts. When the error
// is nil the result has the same length as the input, with result[i]
// corresponding to texts[i]. The engine is agnostic to provider and
// dimensionality as long as both are consistent within a run.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// CosineSimilarity computes the normalized dot product of two vectors.
// Returns 1.0 for identical direction, 0.0 for orthogonal vectors, and 0.0
// when lengths differ or either vector is zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
