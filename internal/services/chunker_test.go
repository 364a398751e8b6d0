package services

import (
	"strings"
	"testing"
)

func TestChunkTextShortTextIsSingleChunk(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("short paragraph", 1000, 200)
	if len(chunks) != 1 || chunks[0] != "short paragraph" {
		t.Fatalf("unexpected chunks: %v", chunks)
	}
}

func TestChunkTextSplitsLongText(t *testing.T) {
	chunker := NewTextChunker()

	var paragraphs []string
	for i := 0; i < 20; i++ {
		paragraphs = append(paragraphs, strings.Repeat("resume content words ", 10))
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := chunker.ChunkText(text, 500, 100)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 500+100 {
			t.Fatalf("chunk %d too large: %d bytes", i, len(chunk))
		}
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	if chunks := chunker.ChunkText("", 1000, 200); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %v", chunks)
	}
}
