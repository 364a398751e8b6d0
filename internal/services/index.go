package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// ResumeIndex stores embeddings of screened resumes for similarity search
// across later queries.
type ResumeIndex interface {
	InitCollection() error
	IndexResume(ctx context.Context, name string, text string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]ResumeMatch, error)
}

type ResumeMatch struct {
	ID      string
	Name    string
	Score   float32
	Snippet string
}

const snippetLength = 200

type resumeIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewResumeIndex(urlStr, apiKey, collectionName string) (ResumeIndex, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &resumeIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // Gemini text-embedding-004 size
	}, nil
}

// InitCollection implements ResumeIndex.
func (r *resumeIndex) InitCollection() error {
	ctx := context.Background()

	exists, err := r.client.CollectionExists(ctx, r.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = r.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: r.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     r.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", r.collectionName)
	return nil
}

// IndexResume implements ResumeIndex. The embedding is the one already
// computed for scoring, so indexing costs no extra encode call.
func (r *resumeIndex) IndexResume(ctx context.Context, name string, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_id": pointID.String(),
			"name":   name,
			"text":   text,
		}),
	}

	_, err := r.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: r.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements ResumeIndex.
func (r *resumeIndex) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]ResumeMatch, error) {
	searchResult, err := r.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: r.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var matches []ResumeMatch
	for _, point := range searchResult {
		payload := point.Payload

		match := ResumeMatch{
			Score: point.Score,
		}

		if docID, ok := payload["doc_id"]; ok {
			if val, ok := docID.GetKind().(*qdrant.Value_StringValue); ok {
				match.ID = val.StringValue
			}
		}

		if name, ok := payload["name"]; ok {
			if val, ok := name.GetKind().(*qdrant.Value_StringValue); ok {
				match.Name = val.StringValue
			}
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				match.Snippet = snippetOf(val.StringValue)
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

func snippetOf(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLength {
		return text
	}
	return string(runes[:snippetLength]) + "…"
}
