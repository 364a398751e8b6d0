package services

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// Embedder is the text-encoding capability: a pure function from text to a
// fixed-size dense vector. Implementations must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Texts longer than this are chunked and mean-pooled instead of truncated.
const maxEmbedChars = 8000

type geminiEmbedder struct {
	client  *genai.Client
	model   string
	chunker TextChunker
}

func NewGeminiEmbedder(apiKey, model string) (Embedder, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiEmbedder{
		client:  client,
		model:   model,
		chunker: NewTextChunker(),
	}, nil
}

var (
	sharedEmbedderOnce sync.Once
	sharedEmbedder     Embedder
	sharedEmbedderErr  error
)

// SharedEmbedder returns the process-wide embedding client, created lazily on
// first use. The client holds loaded model access and is read-only afterwards,
// so every scorer in the process reuses the same instance.
func SharedEmbedder(apiKey, model string) (Embedder, error) {
	sharedEmbedderOnce.Do(func() {
		sharedEmbedder, sharedEmbedderErr = NewGeminiEmbedder(apiKey, model)
	})
	return sharedEmbedder, sharedEmbedderErr
}

// Embed implements Embedder.
func (g *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if len(text) <= maxEmbedChars {
		return g.embedOne(ctx, text)
	}

	chunks := g.chunker.ChunkText(text, maxEmbedChars, 200)
	if len(chunks) == 0 {
		return g.embedOne(ctx, text[:maxEmbedChars])
	}

	return g.embedPooled(ctx, chunks)
}

func (g *geminiEmbedder) embedOne(ctx context.Context, text string) ([]float32, error) {
	result, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// embedPooled embeds every chunk and mean-pools the vectors. Cosine scoring is
// scale-invariant, so the mean is not renormalized.
func (g *geminiEmbedder) embedPooled(ctx context.Context, chunks []string) ([]float32, error) {
	var pooled []float64

	for _, chunk := range chunks {
		vec, err := g.embedOne(ctx, chunk)
		if err != nil {
			return nil, err
		}
		if pooled == nil {
			pooled = make([]float64, len(vec))
		}
		if len(vec) != len(pooled) {
			return nil, fmt.Errorf("inconsistent embedding size: got %d, want %d", len(vec), len(pooled))
		}
		for i, v := range vec {
			pooled[i] += float64(v)
		}
	}

	out := make([]float32, len(pooled))
	for i, v := range pooled {
		out[i] = float32(v / float64(len(chunks)))
	}

	return out, nil
}
