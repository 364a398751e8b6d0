package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"alfredoptarigan/resume-screener/internal/models"
)

func newTestScreener(embedder Embedder, concurrency int) ScreenerService {
	return NewScreenerService(
		NewTextExtractor(nil),
		NewFieldExtractor(),
		embedder,
		NewMatchScorer(embedder),
		NewCompositeRanker(),
		nil,
		concurrency,
	)
}

const testJobDescription = "Looking for a backend engineer with Python and databases"

func strongCandidate(t *testing.T) models.Resume {
	return models.Resume{
		Name:   "jane_doe",
		Format: models.FormatDOCX,
		Data: makeDocx(t,
			"Backend engineer with strong Python and databases background",
			"5+ years of experience in backend systems",
			"Email: jane.doe@example.co.in",
			"Call me at +91 98765 43210 today",
		),
	}
}

func weakCandidate(t *testing.T) models.Resume {
	return models.Resume{
		Name:   "john_smith",
		Format: models.FormatDOCX,
		Data: makeDocx(t,
			"Professional gardener",
			"Flowers and landscaping portfolio",
		),
	}
}

func TestScreenRanksStrongCandidateFirst(t *testing.T) {
	screener := newTestScreener(newFakeEmbedder(), 1)

	results, err := screener.Screen(context.Background(), testJobDescription, []models.Resume{
		weakCandidate(t),
		strongCandidate(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Name != "jane_doe" || results[0].Rank != 1 {
		t.Fatalf("expected jane_doe at rank 1, got %q at rank %d", results[0].Name, results[0].Rank)
	}
	if results[0].FinalScore <= results[1].FinalScore {
		t.Fatalf("expected strictly higher final score: %v vs %v", results[0].FinalScore, results[1].FinalScore)
	}
}

func TestScreenExtractsProfileFields(t *testing.T) {
	screener := newTestScreener(newFakeEmbedder(), 1)

	results, err := screener.Screen(context.Background(), testJobDescription, []models.Resume{
		strongCandidate(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := results[0]
	if got.Experience != "5 years" {
		t.Fatalf("unexpected experience: %q", got.Experience)
	}
	if got.Email != "jane.doe@example.co.in" {
		t.Fatalf("unexpected email: %q", got.Email)
	}
	if got.Contact != "9876543210" {
		t.Fatalf("unexpected contact: %q", got.Contact)
	}
	if got.MatchScore < 0 || got.MatchScore > 100 {
		t.Fatalf("match score out of range: %v", got.MatchScore)
	}
}

func TestScreenFinalScoreFormulaHolds(t *testing.T) {
	screener := newTestScreener(newFakeEmbedder(), 1)

	results, err := screener.Screen(context.Background(), testJobDescription, []models.Resume{
		strongCandidate(t),
		weakCandidate(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ranker := NewCompositeRanker()
	for _, r := range results {
		want := ranker.FinalScore(r.MatchScore, r.Experience)
		if r.FinalScore != want {
			t.Fatalf("final score %v does not match formula result %v for %q", r.FinalScore, want, r.Name)
		}
	}
}

func TestScreenSkipsWhitespaceOnlyCandidate(t *testing.T) {
	screener := newTestScreener(newFakeEmbedder(), 1)

	blank := models.Resume{
		Name:   "blank",
		Format: models.FormatDOCX,
		Data:   makeDocx(t, "   ", "\t"),
	}

	results, err := screener.Screen(context.Background(), testJobDescription, []models.Resume{
		strongCandidate(t),
		blank,
		weakCandidate(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(results))
	}
	for i, r := range results {
		if r.Name == "blank" {
			t.Fatalf("blank candidate should be excluded")
		}
		// Ranks stay densely 1..N over survivors.
		if r.Rank != i+1 {
			t.Fatalf("expected dense rank %d, got %d", i+1, r.Rank)
		}
	}
}

func TestScreenEmptyJobDescription(t *testing.T) {
	screener := newTestScreener(newFakeEmbedder(), 1)

	_, err := screener.Screen(context.Background(), "   ", []models.Resume{strongCandidate(t)})
	if !errors.Is(err, ErrInsufficientInput) {
		t.Fatalf("expected ErrInsufficientInput, got %v", err)
	}
}

func TestScreenNoResumes(t *testing.T) {
	screener := newTestScreener(newFakeEmbedder(), 1)

	_, err := screener.Screen(context.Background(), testJobDescription, nil)
	if !errors.Is(err, ErrInsufficientInput) {
		t.Fatalf("expected ErrInsufficientInput, got %v", err)
	}
}

func TestScreenAllUnreadable(t *testing.T) {
	screener := newTestScreener(newFakeEmbedder(), 1)

	_, err := screener.Screen(context.Background(), testJobDescription, []models.Resume{
		{Name: "broken", Format: models.FormatPDF, Data: []byte("not a pdf")},
		{Name: "wrong", Format: models.FormatUnsupported, Data: []byte("plain text")},
	})
	if !errors.Is(err, ErrNoReadableCandidates) {
		t.Fatalf("expected ErrNoReadableCandidates, got %v", err)
	}
}

// poisonEmbedder fails only on texts containing the trigger, so one
// candidate's failure can be isolated from the rest of the batch.
type poisonEmbedder struct {
	inner   Embedder
	trigger string
}

func (p poisonEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.Contains(text, p.trigger) {
		return nil, fmt.Errorf("encoder rejected input")
	}
	return p.inner.Embed(ctx, text)
}

func TestScreenIsolatesPerCandidateFailures(t *testing.T) {
	embedder := poisonEmbedder{inner: newFakeEmbedder(), trigger: "gardener"}
	screener := newTestScreener(embedder, 1)

	results, err := screener.Screen(context.Background(), testJobDescription, []models.Resume{
		weakCandidate(t), // embedding fails, must be skipped
		strongCandidate(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 || results[0].Name != "jane_doe" {
		t.Fatalf("expected only jane_doe to survive, got %+v", results)
	}
}

func TestScreenJobDescriptionEmbedFailureIsFatal(t *testing.T) {
	screener := newTestScreener(failingEmbedder{}, 1)

	_, err := screener.Screen(context.Background(), testJobDescription, []models.Resume{strongCandidate(t)})
	if err == nil {
		t.Fatalf("expected error when the job description cannot be embedded")
	}
}

func TestScreenConcurrencyPreservesOrdering(t *testing.T) {
	// Two identical resumes tie on score; their relative input order must
	// survive regardless of worker count.
	twin := func(name string) models.Resume {
		return models.Resume{
			Name:   name,
			Format: models.FormatDOCX,
			Data: makeDocx(t,
				"Backend engineer with Python",
				"3 years of experience in databases",
			),
		}
	}

	input := []models.Resume{
		twin("twin_a"),
		strongCandidate(t),
		twin("twin_b"),
		weakCandidate(t),
	}

	sequential := newTestScreener(newFakeEmbedder(), 1)
	parallel := newTestScreener(newFakeEmbedder(), 4)

	want, err := sequential.Screen(context.Background(), testJobDescription, input)
	if err != nil {
		t.Fatalf("sequential screen failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		got, err := parallel.Screen(context.Background(), testJobDescription, input)
		if err != nil {
			t.Fatalf("parallel screen failed: %v", err)
		}

		if len(got) != len(want) {
			t.Fatalf("expected %d results, got %d", len(want), len(got))
		}
		for j := range want {
			if got[j].Name != want[j].Name || got[j].Rank != want[j].Rank {
				t.Fatalf("run %d: order diverged at %d: %q vs %q", i, j, got[j].Name, want[j].Name)
			}
		}
	}

	if want[len(want)-1].Rank != len(want) {
		t.Fatalf("expected dense ranks up to %d, got %d", len(want), want[len(want)-1].Rank)
	}
}
