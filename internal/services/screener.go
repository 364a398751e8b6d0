package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"alfredoptarigan/resume-screener/internal/models"
)

var (
	// ErrInsufficientInput means the job description or the candidate set is
	// missing; the pipeline does not run at all.
	ErrInsufficientInput = errors.New("job description and at least one resume are required")

	// ErrNoReadableCandidates means every candidate was skipped, distinct from
	// missing input.
	ErrNoReadableCandidates = errors.New("no readable resumes found")
)

// ScreenerService runs the full pipeline: extract text, derive fields, score
// relevance, compose the final score, and rank.
type ScreenerService interface {
	Screen(ctx context.Context, jobText string, resumes []models.Resume) ([]models.ScoredCandidate, error)
}

type screenerService struct {
	extractor   TextExtractor
	fields      FieldExtractor
	embedder    Embedder
	scorer      MatchScorer
	ranker      CompositeRanker
	index       ResumeIndex // optional, nil when indexing is disabled
	concurrency int
}

func NewScreenerService(
	extractor TextExtractor,
	fields FieldExtractor,
	embedder Embedder,
	scorer MatchScorer,
	ranker CompositeRanker,
	index ResumeIndex,
	concurrency int,
) ScreenerService {
	if concurrency < 1 {
		concurrency = 1
	}

	return &screenerService{
		extractor:   extractor,
		fields:      fields,
		embedder:    embedder,
		scorer:      scorer,
		ranker:      ranker,
		index:       index,
		concurrency: concurrency,
	}
}

// screenedResume is the per-candidate outcome, collected by input index so the
// final ordering never depends on completion order.
type screenedResume struct {
	candidate models.ScoredCandidate
	embedding []float32
	text      string
	ok        bool
}

// Screen implements ScreenerService.
func (s *screenerService) Screen(ctx context.Context, jobText string, resumes []models.Resume) ([]models.ScoredCandidate, error) {
	if strings.TrimSpace(jobText) == "" || len(resumes) == 0 {
		return nil, ErrInsufficientInput
	}

	// The job description is embedded once per batch and shared by every
	// candidate's score.
	jobVec, err := s.embedder.Embed(ctx, jobText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	results := make([]screenedResume, len(resumes))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.screenOne(ctx, jobVec, resumes[i])
			}
		}()
	}
	for i := range resumes {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var scored []models.ScoredCandidate
	for i, result := range results {
		if !result.ok {
			continue
		}
		scored = append(scored, result.candidate)

		if s.index != nil {
			if err := s.index.IndexResume(ctx, resumes[i].Name, result.text, result.embedding); err != nil {
				log.Printf("⚠️  Failed to index resume %q: %v\n", resumes[i].Name, err)
			}
		}
	}

	if len(scored) == 0 {
		return nil, ErrNoReadableCandidates
	}

	return s.ranker.Rank(scored), nil
}

// screenOne processes a single candidate. Any failure here skips the candidate
// and never aborts the batch.
func (s *screenerService) screenOne(ctx context.Context, jobVec []float32, resume models.Resume) screenedResume {
	text := s.extractor.Extract(ctx, resume.Format, resume.Data)
	if strings.TrimSpace(text) == "" {
		log.Printf("⚠️  Skipping %q: no readable text\n", resume.Name)
		return screenedResume{}
	}

	profile := s.fields.ProfileOf(text)

	candidateVec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		log.Printf("⚠️  Skipping %q: %v\n", resume.Name, err)
		return screenedResume{}
	}

	matchScore := s.scorer.ScoreVectors(jobVec, candidateVec)

	return screenedResume{
		candidate: models.ScoredCandidate{
			Name:       resume.Name,
			Experience: profile.Experience,
			Email:      profile.Email,
			Contact:    profile.Phone,
			MatchScore: matchScore,
			FinalScore: s.ranker.FinalScore(matchScore, profile.Experience),
		},
		embedding: candidateVec,
		text:      text,
		ok:        true,
	}
}
