package services

import (
	"context"
	"fmt"
	"math"
)

// MatchScorer computes the semantic relevance between a job description and a
// candidate's text, on a 0-100 scale.
type MatchScorer interface {
	Score(ctx context.Context, jobText, candidateText string) (float64, error)
	ScoreVectors(jobVec, candidateVec []float32) float64
}

type matchScorer struct {
	embedder Embedder
}

// NewMatchScorer builds a scorer around an injected embedding capability. The
// capability is expected to be the shared process-wide instance.
func NewMatchScorer(embedder Embedder) MatchScorer {
	return &matchScorer{embedder: embedder}
}

// Score implements MatchScorer.
func (m *matchScorer) Score(ctx context.Context, jobText, candidateText string) (float64, error) {
	jobVec, err := m.embedder.Embed(ctx, jobText)
	if err != nil {
		return 0, fmt.Errorf("failed to embed job description: %w", err)
	}

	candidateVec, err := m.embedder.Embed(ctx, candidateText)
	if err != nil {
		return 0, fmt.Errorf("failed to embed candidate text: %w", err)
	}

	return m.ScoreVectors(jobVec, candidateVec), nil
}

// ScoreVectors implements MatchScorer. Cosine similarity rescaled from [-1,1]
// to [0,100], rounded to 2 decimals.
func (m *matchScorer) ScoreVectors(jobVec, candidateVec []float32) float64 {
	return round2((cosineSimilarity(jobVec, candidateVec) + 1) * 50)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
